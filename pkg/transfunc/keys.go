package transfunc

import (
	"fmt"
	"image/color"
	"sort"
	"sync"

	"github.com/chewxy/math32"

	"voreencurves/pkg/spline"
	"voreencurves/pkg/vec"
)

// AlphaMode controls how key opacities reach the lookup table
type AlphaMode int

const (
	UseAlpha AlphaMode = iota
	OneAlpha
	ZeroAlpha
)

// Interpolation selects how colors are blended between keys
type Interpolation int

const (
	// Linear blends the right color of one key into the left color of the
	// next.
	Linear Interpolation = iota
	// CatmullRom passes a Catmull-Rom spline through the key colors.
	CatmullRom
	// NaturalCubic passes a natural cubic spline through the key colors.
	NaturalCubic
)

// DefaultWidth is the lookup table resolution used by the renderers.
const DefaultWidth = 256

// Keys is a transfer function defined by mapping keys sorted by intensity.
//
// Keys is safe for concurrent use. Keys returned by Key remain owned by the
// transfer function; call Invalidate after modifying one in place.
type Keys struct {
	mu            sync.RWMutex
	keys          []*MappingKey
	lower, upper  float32
	gamma         float32
	alphaMode     AlphaMode
	interpolation Interpolation

	// per-channel splines for the spline interpolation modes, built lazily
	channels []channelCurve
	buildErr error
	valid    bool
}

type channelCurve func(t float64) float64

// NewKeys creates the standard transfer function: a ramp from transparent
// black at intensity 0 to opaque white at intensity 1.
func NewKeys() *Keys {
	tf := &Keys{}
	tf.SetToStandard()
	return tf
}

// SetToStandard resets the transfer function to the standard ramp.
func (tf *Keys) SetToStandard() {
	tf.mu.Lock()
	defer tf.mu.Unlock()

	tf.keys = []*MappingKey{
		NewMappingKey(0, color.RGBA{0, 0, 0, 0}),
		NewMappingKey(1, color.RGBA{255, 255, 255, 255}),
	}
	tf.lower, tf.upper = 0, 1
	tf.gamma = 1
	tf.alphaMode = UseAlpha
	tf.interpolation = Linear
	tf.invalidate()
}

// IsStandard reports whether the transfer function is the standard ramp.
func (tf *Keys) IsStandard() bool {
	tf.mu.RLock()
	defer tf.mu.RUnlock()

	if len(tf.keys) != 2 || tf.gamma != 1 || tf.alphaMode != UseAlpha {
		return false
	}
	k0, k1 := tf.keys[0], tf.keys[1]
	return k0.Intensity == 0 && !k0.IsSplit() && k0.ColorL == (color.RGBA{0, 0, 0, 0}) &&
		k1.Intensity == 1 && !k1.IsSplit() && k1.ColorL == (color.RGBA{255, 255, 255, 255})
}

// AddKey inserts a key before the first key with a greater or equal
// intensity.
func (tf *Keys) AddKey(k *MappingKey) {
	tf.mu.Lock()
	defer tf.mu.Unlock()

	i := 0
	for i < len(tf.keys) && k.Intensity > tf.keys[i].Intensity {
		i++
	}
	tf.keys = append(tf.keys, nil)
	copy(tf.keys[i+1:], tf.keys[i:])
	tf.keys[i] = k
	tf.invalidate()
}

// RemoveKey removes k if present and reports whether it was found.
func (tf *Keys) RemoveKey(k *MappingKey) bool {
	tf.mu.Lock()
	defer tf.mu.Unlock()

	for i, key := range tf.keys {
		if key == k {
			tf.keys = append(tf.keys[:i], tf.keys[i+1:]...)
			tf.invalidate()
			return true
		}
	}
	return false
}

// ClearKeys removes all keys.
func (tf *Keys) ClearKeys() {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	tf.keys = nil
	tf.invalidate()
}

// Invalidate re-sorts the keys after one was modified in place.
func (tf *Keys) Invalidate() {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	sort.SliceStable(tf.keys, func(i, j int) bool {
		return tf.keys[i].Intensity < tf.keys[j].Intensity
	})
	tf.invalidate()
}

// NumKeys returns the number of keys.
func (tf *Keys) NumKeys() int {
	tf.mu.RLock()
	defer tf.mu.RUnlock()
	return len(tf.keys)
}

// Key returns the i-th key in intensity order.
func (tf *Keys) Key(i int) *MappingKey {
	tf.mu.RLock()
	defer tf.mu.RUnlock()
	return tf.keys[i]
}

// SetThresholds sets the intensity window outside which the lookup table is
// fully transparent.
func (tf *Keys) SetThresholds(lower, upper float32) {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	tf.lower, tf.upper = lower, upper
}

// Thresholds returns the lower and upper threshold.
func (tf *Keys) Thresholds() (float32, float32) {
	tf.mu.RLock()
	defer tf.mu.RUnlock()
	return tf.lower, tf.upper
}

// SetGamma sets the exponent applied to intensities before mapping.
func (tf *Keys) SetGamma(g float32) {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	tf.gamma = g
}

func (tf *Keys) Gamma() float32 {
	tf.mu.RLock()
	defer tf.mu.RUnlock()
	return tf.gamma
}

func (tf *Keys) SetAlphaMode(m AlphaMode) {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	tf.alphaMode = m
}

func (tf *Keys) AlphaMode() AlphaMode {
	tf.mu.RLock()
	defer tf.mu.RUnlock()
	return tf.alphaMode
}

// SetInterpolation selects the blending between keys.
func (tf *Keys) SetInterpolation(mode Interpolation) {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	tf.interpolation = mode
	tf.invalidate()
}

func (tf *Keys) Interpolation() Interpolation {
	tf.mu.RLock()
	defer tf.mu.RUnlock()
	return tf.interpolation
}

// MakeRamp rescales the key intensities to [0, 1] and sets each key's
// opacity to its new intensity. Keys that all share one intensity are left
// unchanged.
func (tf *Keys) MakeRamp() {
	tf.mu.Lock()
	defer tf.mu.Unlock()

	if len(tf.keys) < 2 {
		return
	}
	lo := tf.keys[0].Intensity
	width := tf.keys[len(tf.keys)-1].Intensity - lo
	if width == 0 {
		return
	}
	for _, k := range tf.keys {
		v := (k.Intensity - lo) / width
		k.Intensity = v
		k.SetAlphaL(v)
		k.SetAlphaR(v)
	}
	tf.invalidate()
}

// Validate reports whether the keys can be blended with the selected
// interpolation. Spline modes need strictly increasing intensities; when
// they are not, MappingForValue falls back to linear blending.
func (tf *Keys) Validate() error {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	tf.ensureCurves()
	return tf.buildErr
}

// MappingForValue returns the color for an intensity in [0, 1]. Values
// outside that range are clamped.
func (tf *Keys) MappingForValue(value float32) color.RGBA {
	tf.mu.Lock()
	tf.ensureCurves()
	tf.mu.Unlock()

	tf.mu.RLock()
	defer tf.mu.RUnlock()
	return tf.mappingForValue(value)
}

func (tf *Keys) mappingForValue(value float32) color.RGBA {
	if len(tf.keys) == 0 {
		return color.RGBA{}
	}

	value = math32.Min(math32.Max(value, 0), 1)
	if tf.gamma != 1 {
		value = math32.Pow(value, tf.gamma)
	}

	var c color.RGBA
	if tf.interpolation != Linear && tf.channels != nil {
		c = tf.splineMapping(value)
	} else {
		c = tf.linearMapping(value)
	}

	switch tf.alphaMode {
	case OneAlpha:
		c.A = 255
	case ZeroAlpha:
		c.A = 0
	}
	return c
}

func (tf *Keys) linearMapping(value float32) color.RGBA {
	i := 0
	for i < len(tf.keys) && value > tf.keys[i].Intensity {
		i++
	}

	switch {
	case i == 0:
		return tf.keys[0].ColorL
	case i == len(tf.keys):
		return tf.keys[i-1].ColorR
	}

	left, right := tf.keys[i-1], tf.keys[i]
	fraction := (value - left.Intensity) / (right.Intensity - left.Intensity)
	from, to := left.ColorR, right.ColorL
	return color.RGBA{
		R: blend(from.R, to.R, fraction),
		G: blend(from.G, to.G, fraction),
		B: blend(from.B, to.B, fraction),
		A: blend(from.A, to.A, fraction),
	}
}

// blend moves from a towards b, truncating the step towards zero.
func blend(a, b uint8, fraction float32) uint8 {
	step := int(float32(int(b)-int(a)) * fraction)
	return uint8(int(a) + step)
}

func (tf *Keys) splineMapping(value float32) color.RGBA {
	first, last := tf.keys[0], tf.keys[len(tf.keys)-1]
	if value <= first.Intensity {
		return first.ColorL
	}
	if value >= last.Intensity {
		return last.ColorR
	}

	t := float64((value - first.Intensity) / (last.Intensity - first.Intensity))
	return color.RGBA{
		R: toByte(float32(tf.channels[0](t))),
		G: toByte(float32(tf.channels[1](t))),
		B: toByte(float32(tf.channels[2](t))),
		A: toByte(float32(tf.channels[3](t))),
	}
}

// ensureCurves builds the per-channel splines. Callers hold the write lock.
func (tf *Keys) ensureCurves() {
	if tf.valid {
		return
	}
	tf.valid = true
	tf.channels, tf.buildErr = nil, nil

	if tf.interpolation == Linear || len(tf.keys) < 2 {
		return
	}

	// Spline inputs start at x = 0 so that t in [0, 1] spans the keys.
	base := float64(tf.keys[0].Intensity)
	channels := make([]channelCurve, 4)
	for ch := range channels {
		pts := make([]vec.Vec2, len(tf.keys))
		for i, k := range tf.keys {
			pts[i] = vec.V2(float64(k.Intensity)-base, float64(channel(k.ColorL, ch)))
		}

		switch tf.interpolation {
		case NaturalCubic:
			s, err := spline.NewNaturalCubic(pts)
			if err != nil {
				tf.buildErr = fmt.Errorf("natural cubic interpolation: %w", err)
				return
			}
			channels[ch] = s.Value
		case CatmullRom:
			for i := 1; i < len(pts); i++ {
				if pts[i].X == pts[i-1].X {
					tf.buildErr = fmt.Errorf("catmull-rom interpolation: %w: keys %d and %d share intensity %g",
						spline.ErrInvalidArgument, i-1, i, pts[i].X+base)
					return
				}
			}
			s, err := spline.NewCatmullRom(pts)
			if err != nil {
				tf.buildErr = fmt.Errorf("catmull-rom interpolation: %w", err)
				return
			}
			channels[ch] = s.Value
		default:
			tf.buildErr = fmt.Errorf("unknown interpolation mode %d", tf.interpolation)
			return
		}
	}
	tf.channels = channels
}

func channel(c color.RGBA, i int) uint8 {
	switch i {
	case 0:
		return c.R
	case 1:
		return c.G
	case 2:
		return c.B
	default:
		return c.A
	}
}

// toByte rounds v and clamps it to [0, 255].
func toByte(v float32) uint8 {
	return uint8(math32.Min(math32.Max(math32.Round(v), 0), 255))
}

// LookupTable renders the transfer function into width RGBA texels. Texel x
// maps intensity x/width; texels outside the thresholds are transparent.
func (tf *Keys) LookupTable(width int) []color.RGBA {
	tf.mu.Lock()
	tf.ensureCurves()
	tf.mu.Unlock()

	tf.mu.RLock()
	defer tf.mu.RUnlock()

	table := make([]color.RGBA, width)
	frontEnd := int(math32.Round(tf.lower * float32(width)))
	backStart := int(math32.Round(tf.upper * float32(width)))
	frontEnd = min(max(frontEnd, 0), width)
	backStart = min(max(backStart, 0), width)

	for x := frontEnd; x < backStart; x++ {
		table[x] = tf.mappingForValue(float32(x) / float32(width))
	}
	return table
}

// Equal reports whether both transfer functions map every intensity alike.
func (tf *Keys) Equal(o *Keys) bool {
	if tf == o {
		return true
	}
	// Compare private copies so that only one lock is held at a time.
	a, b := tf.Clone(), o.Clone()

	if a.lower != b.lower || a.upper != b.upper || a.gamma != b.gamma ||
		a.alphaMode != b.alphaMode || a.interpolation != b.interpolation ||
		len(a.keys) != len(b.keys) {
		return false
	}
	for i := range a.keys {
		if !a.keys[i].Equal(b.keys[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the transfer function.
func (tf *Keys) Clone() *Keys {
	tf.mu.RLock()
	defer tf.mu.RUnlock()

	c := &Keys{
		keys:          make([]*MappingKey, len(tf.keys)),
		lower:         tf.lower,
		upper:         tf.upper,
		gamma:         tf.gamma,
		alphaMode:     tf.alphaMode,
		interpolation: tf.interpolation,
	}
	for i, k := range tf.keys {
		c.keys[i] = k.Clone()
	}
	return c
}

// invalidate drops the cached channel splines. Callers hold the write lock.
func (tf *Keys) invalidate() {
	tf.valid = false
	tf.channels = nil
	tf.buildErr = nil
}

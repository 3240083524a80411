package transfunc

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// KeyDocument is the serialized form of a MappingKey. Colors are stored as
// [r, g, b, a] byte quadruples.
type KeyDocument struct {
	Intensity float32  `yaml:"intensity" toml:"intensity"`
	ColorL    [4]uint8 `yaml:"colorL" toml:"colorL"`
	ColorR    [4]uint8 `yaml:"colorR,omitempty" toml:"colorR,omitempty"`
	Split     bool     `yaml:"split,omitempty" toml:"split,omitempty"`
}

// Document is the serialized form of a transfer function.
type Document struct {
	Width         int           `yaml:"width" toml:"width"`
	Gamma         float32       `yaml:"gamma" toml:"gamma"`
	Thresholds    [2]float32    `yaml:"thresholds" toml:"thresholds"`
	AlphaMode     string        `yaml:"alphaMode" toml:"alphaMode"`
	Interpolation string        `yaml:"interpolation" toml:"interpolation"`
	Keys          []KeyDocument `yaml:"keys" toml:"keys"`
}

var alphaModeNames = map[AlphaMode]string{
	UseAlpha:  "use",
	OneAlpha:  "one",
	ZeroAlpha: "zero",
}

var interpolationNames = map[Interpolation]string{
	Linear:       "linear",
	CatmullRom:   "catmull-rom",
	NaturalCubic: "natural-cubic",
}

func (m AlphaMode) String() string {
	if s, ok := alphaModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("AlphaMode(%d)", int(m))
}

func (m Interpolation) String() string {
	if s, ok := interpolationNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Interpolation(%d)", int(m))
}

// ParseAlphaMode parses "use", "one" or "zero". An empty string selects
// UseAlpha.
func ParseAlphaMode(s string) (AlphaMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return UseAlpha, nil
	}
	for m, name := range alphaModeNames {
		if name == s {
			return m, nil
		}
	}
	return UseAlpha, fmt.Errorf("unknown alpha mode %q", s)
}

// ParseInterpolation parses "linear", "catmull-rom" or "natural-cubic". An
// empty string selects Linear.
func ParseInterpolation(s string) (Interpolation, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if s == "" {
		return Linear, nil
	}
	for m, name := range interpolationNames {
		if name == s {
			return m, nil
		}
	}
	return Linear, fmt.Errorf("unknown interpolation %q", s)
}

// DefaultDocument describes the standard transfer function.
func DefaultDocument() Document {
	return NewKeys().Document(DefaultWidth)
}

// Document captures the transfer function in serializable form.
func (tf *Keys) Document(width int) Document {
	tf.mu.RLock()
	defer tf.mu.RUnlock()

	doc := Document{
		Width:         width,
		Gamma:         tf.gamma,
		Thresholds:    [2]float32{tf.lower, tf.upper},
		AlphaMode:     tf.alphaMode.String(),
		Interpolation: tf.interpolation.String(),
		Keys:          make([]KeyDocument, len(tf.keys)),
	}
	for i, k := range tf.keys {
		kd := KeyDocument{Intensity: k.Intensity, ColorL: rgba(k.ColorL)}
		if k.IsSplit() {
			kd.ColorR = rgba(k.ColorR)
			kd.Split = true
		}
		doc.Keys[i] = kd
	}
	return doc
}

// FromDocument builds a transfer function. A document without keys yields
// the standard key set; a zero gamma or an empty threshold window is
// replaced by the standard value.
func FromDocument(doc Document) (*Keys, error) {
	alpha, err := ParseAlphaMode(doc.AlphaMode)
	if err != nil {
		return nil, err
	}
	interp, err := ParseInterpolation(doc.Interpolation)
	if err != nil {
		return nil, err
	}

	tf := NewKeys()
	if len(doc.Keys) > 0 {
		tf.ClearKeys()
		for i, kd := range doc.Keys {
			if kd.Intensity < 0 || kd.Intensity > 1 {
				return nil, fmt.Errorf("key %d: intensity %g outside [0, 1]", i, kd.Intensity)
			}
			if kd.Split {
				tf.AddKey(NewSplitKey(kd.Intensity, fromRGBA(kd.ColorL), fromRGBA(kd.ColorR)))
			} else {
				tf.AddKey(NewMappingKey(kd.Intensity, fromRGBA(kd.ColorL)))
			}
		}
	}

	if doc.Gamma != 0 {
		tf.SetGamma(doc.Gamma)
	}
	if doc.Thresholds[0] < doc.Thresholds[1] {
		tf.SetThresholds(doc.Thresholds[0], doc.Thresholds[1])
	}
	tf.SetAlphaMode(alpha)
	tf.SetInterpolation(interp)
	return tf, nil
}

// Save writes the transfer function as YAML.
func (tf *Keys) Save(w io.Writer, width int) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tf.Document(width)); err != nil {
		return fmt.Errorf("error encoding transfer function: %w", err)
	}
	return enc.Close()
}

// Load reads a YAML transfer function and returns it with the stored lookup
// table width.
func Load(r io.Reader) (*Keys, int, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, 0, fmt.Errorf("error decoding transfer function: %w", err)
	}
	tf, err := FromDocument(doc)
	if err != nil {
		return nil, 0, err
	}
	width := doc.Width
	if width <= 0 {
		width = DefaultWidth
	}
	return tf, width, nil
}

func rgba(c color.RGBA) [4]uint8 { return [4]uint8{c.R, c.G, c.B, c.A} }

func fromRGBA(v [4]uint8) color.RGBA { return color.RGBA{R: v[0], G: v[1], B: v[2], A: v[3]} }

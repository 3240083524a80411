// Package transfunc implements one-dimensional transfer functions defined by
// mapping keys: intensities with attached colors, blended between keys and
// rendered into RGBA lookup tables for volume rendering.
package transfunc

import (
	"image/color"
)

// MappingKey attaches a color to an intensity. A split key has different
// colors on its left and right side, producing a hard edge in the
// transfer function.
type MappingKey struct {
	Intensity float32
	ColorL    color.RGBA
	ColorR    color.RGBA
	split     bool
}

// NewMappingKey creates an unsplit key.
func NewMappingKey(intensity float32, c color.RGBA) *MappingKey {
	return &MappingKey{Intensity: intensity, ColorL: c, ColorR: c}
}

// NewSplitKey creates a key with distinct left and right colors.
func NewSplitKey(intensity float32, left, right color.RGBA) *MappingKey {
	return &MappingKey{Intensity: intensity, ColorL: left, ColorR: right, split: true}
}

// IsSplit reports whether the key has distinct left and right colors.
func (k *MappingKey) IsSplit() bool { return k.split }

// SetSplit splits or joins the key. Joining keeps the left color when
// useLeft is set, the right one otherwise.
func (k *MappingKey) SetSplit(split, useLeft bool) {
	if k.split == split {
		return
	}
	if !split {
		if useLeft {
			k.ColorR = k.ColorL
		} else {
			k.ColorL = k.ColorR
		}
	}
	k.split = split
}

// SetColorL sets the left color, and the right one too if not split.
func (k *MappingKey) SetColorL(c color.RGBA) {
	k.ColorL = c
	if !k.split {
		k.ColorR = c
	}
}

// SetColorR sets the right color, and the left one too if not split.
func (k *MappingKey) SetColorR(c color.RGBA) {
	k.ColorR = c
	if !k.split {
		k.ColorL = c
	}
}

// SetAlphaL sets the left opacity from a value in [0, 1].
func (k *MappingKey) SetAlphaL(a float32) {
	k.ColorL.A = toByte(a * 255)
	if !k.split {
		k.ColorR.A = k.ColorL.A
	}
}

// SetAlphaR sets the right opacity from a value in [0, 1].
func (k *MappingKey) SetAlphaR(a float32) {
	k.ColorR.A = toByte(a * 255)
	if !k.split {
		k.ColorL.A = k.ColorR.A
	}
}

// AlphaL returns the left opacity in [0, 1].
func (k *MappingKey) AlphaL() float32 { return float32(k.ColorL.A) / 255 }

// AlphaR returns the right opacity in [0, 1].
func (k *MappingKey) AlphaR() float32 { return float32(k.ColorR.A) / 255 }

// Clone returns an independent copy of the key.
func (k *MappingKey) Clone() *MappingKey {
	c := *k
	return &c
}

// Equal reports whether both keys describe the same mapping.
func (k *MappingKey) Equal(o *MappingKey) bool {
	return k.Intensity == o.Intensity && k.split == o.split &&
		k.ColorL == o.ColorL && k.ColorR == o.ColorR
}

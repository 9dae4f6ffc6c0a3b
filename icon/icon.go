// Package icon renders status symbols in the variant chosen by icons.variant:
// emoji, nerd-font glyphs, plain words, kaomoji or unicode squares.
package icon

import (
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/key"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants lists the accepted icons.variant values.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Variant returns the configured variant, or plain when the setting is not recognised.
func Variant() string {
	v := viper.GetString(key.IconsVariant)
	if lo.Contains(AvailableVariants(), v) {
		return v
	}
	return plain
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) in(variant string) string {
	switch variant {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return d.plain
	}
}

// Get returns the symbol for i in the configured variant. Unknown icons render as "".
func Get(i Icon) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.in(Variant())
}

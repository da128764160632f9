// Package icon renders status symbols in the variant chosen by icons.variant.
package icon

import (
	"github.com/cinelink/cinelink/key"
	"github.com/spf13/viper"
)

const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants returns every supported icons.variant value.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

// Icon identifies a symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Link
	Lock
)

type iconDef struct {
	emoji string
	nerd  string
	plain string
}

var icons = map[Icon]*iconDef{
	Success: {emoji: "✅", nerd: "\uf00c", plain: "✓"},
	Fail:    {emoji: "💀", nerd: "\uf00d", plain: "✖"},
	Link:    {emoji: "🔗", nerd: "\uf0c1", plain: "→"},
	Lock:    {emoji: "🔒", nerd: "\uf023", plain: "*"},
}

func (d *iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

// Get returns i rendered in the configured variant, or "" for an unknown variant.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.get()
}

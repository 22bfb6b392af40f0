package ui

import (
	"slices"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is the tint used when config names none, or one that does not exist
const DefaultTheme = "dracula"

// Themes is the set of built-in bubbletint tints with one of them selected.
// Selection lasts for the session; nothing is written back to config.
type Themes struct {
	registry *tint.Registry
}

// NewThemes selects the configured tint, or DefaultTheme when name is
// empty or unknown.
func NewThemes(name string) *Themes {
	tints := tint.DefaultTints()
	fallback := tints[0]
	if i := slices.IndexFunc(tints, func(t tint.Tint) bool { return t.ID() == DefaultTheme }); i >= 0 {
		fallback = tints[i]
	}

	th := &Themes{registry: tint.NewRegistry(fallback, tints...)}
	if name != "" {
		th.Select(name)
	}
	return th
}

// Select switches to the tint with the given id. Unknown ids leave the
// selection unchanged and report false.
func (th *Themes) Select(id string) bool {
	return th.registry.SetTintID(id)
}

// Cycle moves forward through the tints for a positive step and backward
// for a negative one. It returns the new id.
func (th *Themes) Cycle(step int) string {
	for ; step > 0; step-- {
		th.registry.NextTint()
	}
	for ; step < 0; step++ {
		th.registry.PreviousTint()
	}
	return th.registry.ID()
}

// Current returns the selected tint id, as written in config.
func (th *Themes) Current() string {
	return th.registry.ID()
}

// DisplayName is the human-readable name shown in the status bar.
func (th *Themes) DisplayName() string {
	return th.registry.DisplayName()
}

// IDs lists every tint id in sorted order.
func (th *Themes) IDs() []string {
	ids := th.registry.TintIDs()
	slices.Sort(ids)
	return ids
}

// Styles renders the worklog styles in the selected tint's colors.
func (th *Themes) Styles() Styles {
	return NewStylesFromRegistry(th.registry)
}

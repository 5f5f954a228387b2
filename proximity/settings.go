package proximity

import (
	"github.com/nearview/location-insights/entities"
)

// Settings is the fully-enumerated engine configuration. It is resolved
// once per pipeline run from the loosely-typed DisplaySettings bag, so the
// individual components never have to re-check optional fields.
type Settings struct {
	Excluded            map[string]bool
	HiddenGroups        map[string]struct{}
	Filter              entities.PoiFilter
	DefaultActiveGroups []string
	HasDefaultActive    bool
	Theme               string
	ShowLocation        bool
	IgnoreVisibility    bool
}

// ResolveSettings fills in the defined default for every absent field.
// A nil input yields settings under which nothing is hidden.
func ResolveSettings(raw *entities.DisplaySettings) Settings {
	st := Settings{
		Excluded:     make(map[string]bool),
		HiddenGroups: make(map[string]struct{}),
		Filter:       entities.PoiFilter{Type: entities.PoiFilterNone},
		Theme:        entities.ThemeStandard,
		ShowLocation: true,
	}

	if raw == nil {
		return st
	}

	for _, v := range raw.EntityVisibility {
		st.Excluded[v.ID] = v.Excluded
	}

	for _, name := range raw.HiddenGroups {
		st.HiddenGroups[name] = struct{}{}
	}

	if raw.PoiFilter != nil {
		switch raw.PoiFilter.Type {
		case entities.PoiFilterByAmount, entities.PoiFilterByDistance:
			st.Filter = *raw.PoiFilter
		}
	}

	if raw.DefaultActiveGroups != nil {
		st.DefaultActiveGroups = append([]string(nil), raw.DefaultActiveGroups...)
		st.HasDefaultActive = true
	}

	if raw.Theme == entities.ThemeDense {
		st.Theme = entities.ThemeDense
	}

	if raw.ShowLocation != nil {
		st.ShowLocation = *raw.ShowLocation
	}

	return st
}

// Hidden reports whether an entity with the given id and category should be
// dropped from the output. It is pure and side-effect-free.
func (s Settings) Hidden(id, category string) bool {
	if s.IgnoreVisibility {
		return false
	}

	if s.Excluded[id] {
		return true
	}

	return s.HiddenCategory(category)
}

// HiddenCategory reports whether a whole category is hidden. Preferred
// locations are checked only at this level since they have no stable
// per-item id across rebuilds.
func (s Settings) HiddenCategory(category string) bool {
	if s.IgnoreVisibility {
		return false
	}

	_, ok := s.HiddenGroups[category]

	return ok
}

package entities

// TransportMode is one of the independently computed reachability modes.
type TransportMode string

const (
	ModeWalk    TransportMode = "walk"
	ModeBicycle TransportMode = "bicycle"
	ModeCar     TransportMode = "car"
)

// Modes lists all transport modes in their canonical processing order.
// Keeping the order fixed keeps entity merging deterministic.
var Modes = []TransportMode{ModeWalk, ModeBicycle, ModeCar}

func (m TransportMode) Valid() bool {
	switch m {
	case ModeWalk, ModeBicycle, ModeCar:
		return true
	default:
		return false
	}
}

// Reserved category tags for entities that come from user-curated sources
// rather than from the reachability search.
const (
	CategoryPreferredLocation = "preferredLocation"
	CategoryRealEstateListing = "realEstateListing"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RealEstateInfo carries listing-specific attributes through the pipeline
// so that exporters and the map renderer can show them alongside POIs.
type RealEstateInfo struct {
	LocationIndices map[string]float64 `json:"location_indices,omitempty"`
	Characteristics map[string]string  `json:"characteristics,omitempty"`
	CostStructure   map[string]string  `json:"cost_structure,omitempty"`
	ListingType     string             `json:"listing_type,omitempty"`
}

// Entity is the unified representation of any displayable point, regardless
// of whether it came from the reachability search or a curated list.
type Entity struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	DistanceMeters float64         `json:"distance_in_meters"`
	Coordinates    Coordinates     `json:"coordinates"`
	Address        string          `json:"address"`
	ByFoot         bool            `json:"by_foot"`
	ByBicycle      bool            `json:"by_bicycle"`
	ByCar          bool            `json:"by_car"`
	RealEstate     *RealEstateInfo `json:"real_estate,omitempty"`
	ExternalURL    string          `json:"external_url,omitempty"`
	Selected       bool            `json:"selected"`
}

// ReachableBy reports whether the entity is reachable by the given mode.
func (e *Entity) ReachableBy(m TransportMode) bool {
	switch m {
	case ModeWalk:
		return e.ByFoot
	case ModeBicycle:
		return e.ByBicycle
	case ModeCar:
		return e.ByCar
	default:
		return false
	}
}

// Group is a named bucket of entities sharing one category tag.
// Items of search-derived groups are ascending by distance; curated groups
// preserve their source list order.
type Group struct {
	Category       string   `json:"category"`
	Title          string   `json:"title"`
	Active         bool     `json:"active"`
	Classification string   `json:"classification,omitempty"`
	Items          []Entity `json:"items"`
}

// SourceEntity is the descriptor attached to a raw search record. Some
// upstream providers fill Name, others Label.
type SourceEntity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// DisplayName returns the best available display name.
func (s *SourceEntity) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}

	return s.Label
}

// LocationOfInterest is one raw record of a per-mode reachability result.
type LocationOfInterest struct {
	Entity         SourceEntity `json:"entity"`
	DistanceMeters float64      `json:"distanceInMeters"`
	Coordinates    *Coordinates `json:"coordinates"`
	Address        string       `json:"address"`
}

// ModeResult is the reachability search output for a single transport mode.
type ModeResult struct {
	LocationsOfInterest []LocationOfInterest `json:"locationsOfInterest"`
}

// CenterOfInterest is the search origin; curated entities synthesize their
// distance from its coordinates.
type CenterOfInterest struct {
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

// SearchResponse is the already-computed reachability search result the
// engine consumes. Computing it (isochrones, routing) is out of scope here.
type SearchResponse struct {
	CenterOfInterest CenterOfInterest              `json:"centerOfInterest"`
	Results          map[TransportMode]*ModeResult `json:"results"`
}

// PreferredLocation is a user-entered location. It carries no stable
// identifier across rebuilds.
type PreferredLocation struct {
	Title       string       `json:"title"`
	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Listing is a user-curated real-estate listing.
type Listing struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Coordinates     *Coordinates       `json:"coordinates,omitempty"`
	Address         string             `json:"address"`
	LocationIndices map[string]float64 `json:"locationIndices,omitempty"`
	Characteristics map[string]string  `json:"characteristics,omitempty"`
	CostStructure   map[string]string  `json:"costStructure,omitempty"`
	Type            string             `json:"type"`
	ExternalURL     string             `json:"externalUrl,omitempty"`
}

// Display themes.
const (
	ThemeStandard = "standard"
	ThemeDense    = "dense"
)

// EntityVisibility is a per-entity exclusion entry.
type EntityVisibility struct {
	ID       string `json:"id"`
	Excluded bool   `json:"excluded"`
}

// POI reduction filter kinds.
const (
	PoiFilterNone       = "none"
	PoiFilterByAmount   = "byAmount"
	PoiFilterByDistance = "byDistance"
)

// PoiFilter optionally caps each group either by item count or by maximum
// distance in meters.
type PoiFilter struct {
	Type  string  `json:"type"`
	Value float64 `json:"value,omitempty"`
}

// DisplaySettings is the externally supplied, loosely-typed configuration
// bag. Absent fields mean "use the default"; the engine resolves it once
// into a fully-enumerated value before doing any work.
type DisplaySettings struct {
	EntityVisibility    []EntityVisibility `json:"entityVisibility,omitempty"`
	HiddenGroups        []string           `json:"hiddenGroups,omitempty"`
	PoiFilter           *PoiFilter         `json:"poiFilter,omitempty"`
	DefaultActiveGroups []string           `json:"defaultActiveGroups,omitempty"`
	Theme               string             `json:"theme,omitempty"`
	ShowLocation        *bool              `json:"showLocation,omitempty"`
}

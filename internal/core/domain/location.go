package domain

import "sort"

// PlaceholderURL is selected for any identifier outside the catalogue.
const PlaceholderURL = "#"

// BrowsingContext names where a navigation should be displayed.
type BrowsingContext string

// TargetBlank is a new top-level browsing context (a new tab or window).
const TargetBlank BrowsingContext = "_blank"

// Location is a named entry in the map catalogue.
type Location struct {
	// ID is the identifier users pass to select the location.
	ID string

	// URL is the map URL opened for the location.
	URL string
}

// catalogue is fixed for the lifetime of the process.
var catalogue = map[string]string{
	"Location1": "https://maps.app.goo.gl/6o65TRq424uW2HdP8",
	"Location2": "https://www.google.com/maps?q=location2",
	"Location3": "https://www.google.com/maps?q=location3",
}

// LookupLocation returns the map URL for id and whether id is known.
// Matching is exact; unknown identifiers yield PlaceholderURL.
func LookupLocation(id string) (string, bool) {
	if u, ok := catalogue[id]; ok {
		return u, true
	}
	return PlaceholderURL, false
}

// Locations returns the catalogue ordered by identifier.
func Locations() []Location {
	out := make([]Location, 0, len(catalogue))
	for id, u := range catalogue {
		out = append(out, Location{ID: id, URL: u})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IsPlaceholder reports whether url is the no-op placeholder.
func IsPlaceholder(url string) bool {
	return url == PlaceholderURL
}

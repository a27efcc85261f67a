package web

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ecobin-cli/internal/logger"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>EcoBin-X Locations</title>
</head>
<body>
<h1>EcoBin-X Locations</h1>
<ul>
{{- range . }}
<li><a href="/locations/{{ .ID }}" target="{{ $.Target }}" rel="noopener">{{ .ID }}</a></li>
{{- end }}
</ul>
</body>
</html>
`))

// Handlers serves the location endpoints.
type Handlers struct {
	locations driving.LocationService
}

// NewHandlers creates handlers backed by locations.
func NewHandlers(locations driving.LocationService) *Handlers {
	return &Handlers{locations: locations}
}

type indexPage []domain.Location

// Target is the browsing context every link opens in.
func (indexPage) Target() string {
	return string(domain.TargetBlank)
}

// Index renders the catalogue as links that open in a new tab.
func (h *Handlers) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, indexPage(h.locations.List())); err != nil {
		logger.Warn("rendering index: %v", err)
	}
}

// Redirect sends the browser to the map URL for the identifier.
// The placeholder resolves to the index page itself.
func (h *Handlers) Redirect(w http.ResponseWriter, req *http.Request) {
	target := h.locations.Resolve(chi.URLParam(req, "locationID"))
	if domain.IsPlaceholder(target) {
		target = "/"
	}
	http.Redirect(w, req, target, http.StatusFound)
}

type locationResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Known bool   `json:"known"`
}

// ResolveJSON returns the resolution of one identifier.
func (h *Handlers) ResolveJSON(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "locationID")
	u := h.locations.Resolve(id)

	writeJSON(w, http.StatusOK, locationResponse{ID: id, URL: u, Known: !domain.IsPlaceholder(u)})
}

// ListJSON returns the catalogue.
func (h *Handlers) ListJSON(w http.ResponseWriter, _ *http.Request) {
	locations := h.locations.List()

	resp := make([]locationResponse, len(locations))
	for i, loc := range locations {
		resp[i] = locationResponse{ID: loc.ID, URL: loc.URL, Known: true}
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encoding response: %v", err)
	}
}

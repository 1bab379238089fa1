package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/couchcryptid/hazard-zone-service/internal/domain"
	"github.com/couchcryptid/hazard-zone-service/internal/query"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

type matchResponse struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	RiskLevel   domain.RiskLevel `json:"risk_level"`
	Source      string           `json:"source"`
	Point       domain.GeoPoint  `json:"point"`
}

type queryResponse struct {
	Matches        []matchResponse `json:"matches"`
	Count          int             `json:"count"`
	DatasetVersion string          `json:"dataset_version"`
}

type listResponse struct {
	Zones []domain.HazardZone `json:"zones"`
	Count int                 `json:"count"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	point, opts, err := s.parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.querier.QueryPoint(r.Context(), point, opts)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}

	out := queryResponse{
		Matches:        make([]matchResponse, len(res.Matches)),
		Count:          len(res.Matches),
		DatasetVersion: res.DatasetVersion,
	}
	for i, m := range res.Matches {
		out.Matches[i] = matchResponse{
			Name:        m.Zone.Name,
			Description: m.Zone.Description,
			RiskLevel:   m.Zone.RiskLevel,
			Source:      m.Zone.Source,
			Point:       m.Point,
		}
	}
	sharedobs.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	level := domain.RiskUnspecified
	if v := r.URL.Query().Get("risk_level"); v != "" {
		parsed, err := domain.ParseRiskLevel(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid risk_level %q", v))
			return
		}
		level = parsed
	}

	zones, err := s.querier.Zones(level)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	if zones == nil {
		zones = []domain.HazardZone{}
	}
	sharedobs.WriteJSON(w, http.StatusOK, listResponse{Zones: zones, Count: len(zones)})
}

func (s *Server) handleZone(w http.ResponseWriter, r *http.Request) {
	z, err := s.querier.Zone(r.PathValue("name"))
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, z)
}

// parseQuery reads lat, lon, min_risk and limit from the query string.
func (s *Server) parseQuery(r *http.Request) (domain.GeoPoint, query.Options, error) {
	q := r.URL.Query()

	lat, err := parseFloatParam(q.Get("lat"), "lat")
	if err != nil {
		return domain.GeoPoint{}, query.Options{}, err
	}
	lon, err := parseFloatParam(q.Get("lon"), "lon")
	if err != nil {
		return domain.GeoPoint{}, query.Options{}, err
	}

	opts := query.Options{Limit: s.maxLimit}
	if v := q.Get("min_risk"); v != "" {
		level, err := domain.ParseRiskLevel(v)
		if err != nil {
			return domain.GeoPoint{}, query.Options{}, fmt.Errorf("invalid min_risk %q: want low, moderate or high", v)
		}
		opts.MinRiskLevel = level
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > s.maxLimit {
			return domain.GeoPoint{}, query.Options{}, fmt.Errorf("invalid limit %q: want 1..%d", v, s.maxLimit)
		}
		opts.Limit = n
	}

	return domain.GeoPoint{Lat: lat, Lon: lon}, opts, nil
}

func parseFloatParam(v, name string) (float64, error) {
	if v == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return f, nil
}

func (s *Server) writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinate), errors.Is(err, query.ErrInvalidOptions):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, query.ErrNoDataset):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("hazard query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/geo"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/repository"
)

const indiaGeoJSON = "india_rivers.geojson"

type StateTotals struct {
	TotalRivers  int `json:"totalRivers"`
	WetRivers    int `json:"wetRivers"`
	DryRivers    int `json:"dryRivers"`
	TotalDams    int `json:"totalDams"`
	ActiveDams   int `json:"activeDams"`
	InactiveDams int `json:"inactiveDams"`
}

type StateStats struct {
	State  string      `json:"state"`
	Totals StateTotals `json:"totals"`
}

type RiverTotals struct {
	TotalDams    int `json:"totalDams"`
	ActiveDams   int `json:"activeDams"`
	InactiveDams int `json:"inactiveDams"`
}

type RiverStats struct {
	River  string      `json:"river"`
	Totals RiverTotals `json:"totals"`
}

// GeoService answers the map and dropdown queries of the dashboard.
type GeoService struct {
	repos        *repository.Repos
	overviews    *overviewLoader
	wetThreshold float64
	geoJSONDir   string
}

func (s *GeoService) AllPoints(ctx context.Context) ([]geo.DamPoint, error) {
	dams, err := s.repos.Dams.List(ctx)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list dams: %w", err))
	}
	return geo.PointsFor(dams), nil
}

func (s *GeoService) PointsByState(ctx context.Context, stateID string) ([]geo.DamPoint, error) {
	if _, err := s.repos.States.Get(ctx, stateID); err != nil {
		return nil, storeErr(err, "State not found", "load state")
	}
	dams, err := s.repos.Dams.ListByState(ctx, stateID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list dams by state: %w", err))
	}
	return geo.PointsFor(dams), nil
}

func (s *GeoService) PointsByRiver(ctx context.Context, riverID string) ([]geo.DamPoint, error) {
	if _, err := s.repos.Rivers.Get(ctx, riverID); err != nil {
		return nil, storeErr(err, "River not found", "load river")
	}
	dams, err := s.repos.Dams.ListByRiver(ctx, riverID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list dams by river: %w", err))
	}
	return geo.PointsFor(dams), nil
}

// IsActive classifies a dam from its latest status. No status means inactive.
func IsActive(st *domain.DamStatus) bool {
	if st == nil {
		return false
	}
	if st.IsActive != nil && *st.IsActive {
		return true
	}
	if st.Status == "active" {
		return true
	}
	return st.CurrentWaterLevel != nil && *st.CurrentWaterLevel > 0
}

func (s *GeoService) latest(ctx context.Context, dams []domain.Dam) (map[string]domain.DamStatus, error) {
	ids := make([]string, len(dams))
	for i, d := range dams {
		ids[i] = d.ID
	}
	latest, err := s.repos.Status.LatestForDams(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("load latest statuses: %w", err))
	}
	return latest, nil
}

func countActive(dams []domain.Dam, latest map[string]domain.DamStatus) (active, inactive int) {
	for _, d := range dams {
		st, ok := latest[d.ID]
		if ok && IsActive(&st) {
			active++
		} else {
			inactive++
		}
	}
	return active, inactive
}

func (s *GeoService) StateStats(ctx context.Context, stateID string) (*StateStats, error) {
	state, err := s.repos.States.Get(ctx, stateID)
	if err != nil {
		return nil, storeErr(err, "State not found", "load state")
	}
	dams, err := s.repos.Dams.ListByState(ctx, stateID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list dams by state: %w", err))
	}
	rivers, err := s.repos.Rivers.ListByState(ctx, stateID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list rivers: %w", err))
	}
	latest, err := s.latest(ctx, dams)
	if err != nil {
		return nil, err
	}

	out := &StateStats{State: state.Name}
	out.Totals.TotalDams = len(dams)
	out.Totals.ActiveDams, out.Totals.InactiveDams = countActive(dams, latest)
	out.Totals.TotalRivers = len(rivers)

	wet := make(map[string]bool, len(rivers))
	for _, d := range dams {
		st, ok := latest[d.ID]
		if ok && st.CurrentWaterLevel != nil && *st.CurrentWaterLevel >= s.wetThreshold {
			wet[d.RiverID] = true
		}
	}
	for _, r := range rivers {
		if wet[r.ID] {
			out.Totals.WetRivers++
		} else {
			out.Totals.DryRivers++
		}
	}
	return out, nil
}

func (s *GeoService) RiverStats(ctx context.Context, riverID string) (*RiverStats, error) {
	river, err := s.repos.Rivers.Get(ctx, riverID)
	if err != nil {
		return nil, storeErr(err, "River not found", "load river")
	}
	dams, err := s.repos.Dams.ListByRiver(ctx, riverID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list dams by river: %w", err))
	}
	latest, err := s.latest(ctx, dams)
	if err != nil {
		return nil, err
	}
	out := &RiverStats{River: river.Name}
	out.Totals.TotalDams = len(dams)
	out.Totals.ActiveDams, out.Totals.InactiveDams = countActive(dams, latest)
	return out, nil
}

func (s *GeoService) DamDetails(ctx context.Context, damID string) (*domain.DamOverview, error) {
	dam, err := s.repos.Dams.Get(ctx, damID)
	if err != nil {
		return nil, storeErr(err, "Dam not found", "load dam")
	}
	list, err := s.overviews.load(ctx, []domain.Dam{*dam})
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

// IndiaGeoJSON returns the country-wide river map.
func (s *GeoService) IndiaGeoJSON() ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(s.geoJSONDir, indiaGeoJSON))
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("read india geojson: %w", err))
	}
	return raw, nil
}

// StateGeoJSON returns the state map, falling back to the India map.
func (s *GeoService) StateGeoJSON(ctx context.Context, stateID string) ([]byte, error) {
	state, err := s.repos.States.Get(ctx, stateID)
	if err != nil {
		return nil, storeErr(err, "State not found", "load state")
	}
	raw, err := s.readNamed("states", state.Name)
	if err == nil {
		return raw, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.Internal(fmt.Errorf("read state geojson: %w", err))
	}
	return s.IndiaGeoJSON()
}

// RiverGeoJSON returns the river map, or a one-feature collection naming the
// river when no file exists.
func (s *GeoService) RiverGeoJSON(ctx context.Context, riverID string) ([]byte, error) {
	river, err := s.repos.Rivers.Get(ctx, riverID)
	if err != nil {
		return nil, storeErr(err, "River not found", "load river")
	}
	raw, err := s.readNamed("rivers", river.Name)
	if err == nil {
		return raw, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.Internal(fmt.Errorf("read river geojson: %w", err))
	}
	fc := map[string]any{
		"type": "FeatureCollection",
		"features": []any{map[string]any{
			"type":       "Feature",
			"properties": map[string]string{"name": river.Name},
			"geometry":   nil,
		}},
	}
	out, err := json.Marshal(fc)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("encode river geojson: %w", err))
	}
	return out, nil
}

// readNamed reads <dir>/<kind>/<name>.geojson with whitespace runs in name
// replaced by underscores. Names that would leave the directory are treated
// as missing.
func (s *GeoService) readNamed(kind, name string) ([]byte, error) {
	file := strings.Join(strings.Fields(name), "_") + ".geojson"
	if file == ".geojson" || strings.ContainsAny(file, `/\`) || strings.Contains(file, "..") {
		return nil, fs.ErrNotExist
	}
	return os.ReadFile(filepath.Join(s.geoJSONDir, kind, file))
}

// overviewLoader joins dams with their latest status and usage.
type overviewLoader struct {
	dams   *repository.DamRepo
	status *repository.StatusRepo
	usage  *repository.UsageRepo
}

func (l *overviewLoader) load(ctx context.Context, dams []domain.Dam) ([]domain.DamOverview, error) {
	ids := make([]string, len(dams))
	for i, d := range dams {
		ids[i] = d.ID
	}
	latest, err := l.status.LatestForDams(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("load latest statuses: %w", err))
	}
	usage, err := l.usage.ListByDamIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("load usage: %w", err))
	}

	out := make([]domain.DamOverview, 0, len(dams))
	for _, d := range dams {
		ov := domain.DamOverview{Dam: d}
		if st, ok := latest[d.ID]; ok {
			ov.LatestStatus = &st
		}
		if u, ok := usage[d.ID]; ok {
			ov.Usage = &u
		}
		out = append(out, ov)
	}
	return out, nil
}

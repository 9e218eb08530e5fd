// Package geo turns stored dam locations into map points.
package geo

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

// Point is a [lat, lng] pair, encoded as a two element JSON array.
type Point [2]float64

func (p Point) Lat() float64 { return p[0] }
func (p Point) Lng() float64 { return p[1] }

// ParseCoordinates accepts "lat,lng" (whitespace around either part is ignored)
// or a JSON object with numeric lat and lng. Anything else is rejected.
func ParseCoordinates(c domain.Coordinates) (Point, bool) {
	raw := strings.TrimSpace(string(c))
	if raw == "" {
		return Point{}, false
	}
	if c.IsObject() {
		return parseObject(raw)
	}

	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Point{}, false
	}
	lat, ok := parseNumber(parts[0])
	if !ok {
		return Point{}, false
	}
	lng, ok := parseNumber(parts[1])
	if !ok {
		return Point{}, false
	}
	return Point{lat, lng}, true
}

func parseObject(raw string) (Point, bool) {
	var obj struct {
		Lat *json.Number `json:"lat"`
		Lng *json.Number `json:"lng"`
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil || obj.Lat == nil || obj.Lng == nil {
		return Point{}, false
	}
	lat, ok := parseNumber(obj.Lat.String())
	if !ok {
		return Point{}, false
	}
	lng, ok := parseNumber(obj.Lng.String())
	if !ok {
		return Point{}, false
	}
	return Point{lat, lng}, true
}

// decimal is plain signed decimal notation with an optional exponent.
// ParseFloat alone would also take hex floats, underscores and "Inf".
var decimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimal.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// DamPoint is a dam as drawn on the map. Coordinates is nil when the stored
// location cannot be parsed; such dams are still listed.
type DamPoint struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	State       string `json:"state"`
	River       string `json:"river"`
	Coordinates *Point `json:"coordinates"`
}

func PointFor(d domain.Dam) DamPoint {
	p := DamPoint{ID: d.ID, Name: d.Name, State: d.StateName, River: d.RiverName}
	if pt, ok := ParseCoordinates(d.Coordinates); ok {
		p.Coordinates = &pt
	}
	return p
}

func PointsFor(dams []domain.Dam) []DamPoint {
	out := make([]DamPoint, 0, len(dams))
	for _, d := range dams {
		out = append(out, PointFor(d))
	}
	return out
}

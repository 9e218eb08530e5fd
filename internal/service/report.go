package service

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/goccy/go-json"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

type HistoryReader interface {
	ListHistory(ctx context.Context, damID string, limit int) ([]domain.DamStatusHistory, error)
}

type Order int

const (
	// OldestFirst feeds charts; windows use the status history limits.
	OldestFirst Order = iota
	// NewestFirst feeds the admin event list; windows use the event history limits.
	NewestFirst
)

type ReportSummary struct {
	Count                int       `json:"count"`
	LatestAt             time.Time `json:"latestAt"`
	LevelUnit            string    `json:"levelUnit"`
	AvgCurrentWaterLevel float64   `json:"avgCurrentWaterLevel"`
	AvgInflowRate        float64   `json:"avgInflowRate"`
	AvgOutflowRate       float64   `json:"avgOutflowRate"`
	AvgSpillwayDischarge float64   `json:"avgSpillwayDischarge"`
	MaxLevelObserved     float64   `json:"maxLevelObserved"`
	MinLevelObserved     float64   `json:"minLevelObserved"`
}

type Report struct {
	Summary *ReportSummary            `json:"summary"`
	Items   []domain.DamStatusHistory `json:"items"`
}

type ReportAggregator struct {
	history      HistoryReader
	statusLimits Limits
	eventLimits  Limits
	reportLimits Limits
	store        ReportStore
	now          func() time.Time
}

func NewReportAggregator(history HistoryReader, status, events, report Limits, store ReportStore) *ReportAggregator {
	return &ReportAggregator{
		history:      history,
		statusLimits: status,
		eventLimits:  events,
		reportLimits: report,
		store:        store,
		now:          utcNow,
	}
}

// History returns the most recent rows of the dam in the requested order.
func (a *ReportAggregator) History(ctx context.Context, damID string, limit int, order Order) ([]domain.DamStatusHistory, error) {
	lim := a.eventLimits
	if order == OldestFirst {
		lim = a.statusLimits
	}
	items, err := a.history.ListHistory(ctx, damID, lim.Clamp(limit))
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list status history: %w", err))
	}
	if order == OldestFirst {
		slices.Reverse(items)
	}
	return items, nil
}

func (a *ReportAggregator) Report(ctx context.Context, damID string, limit int) (Report, error) {
	items, err := a.history.ListHistory(ctx, damID, a.reportLimits.Clamp(limit))
	if err != nil {
		return Report{}, apperr.Internal(fmt.Errorf("list status history: %w", err))
	}
	return Summarize(items), nil
}

// Summarize reduces a newest-first window. Averages only count rows where the
// field is present; an empty window has no summary.
func Summarize(items []domain.DamStatusHistory) Report {
	if len(items) == 0 {
		return Report{Items: []domain.DamStatusHistory{}}
	}

	var level, inflow, outflow, spill mean
	minLevel, maxLevel := math.Inf(1), math.Inf(-1)
	for _, it := range items {
		level.add(it.CurrentWaterLevel)
		inflow.add(it.InflowRate)
		outflow.add(it.OutflowRate)
		spill.add(it.SpillwayDischarge)
		if v := it.CurrentWaterLevel; v != nil {
			minLevel = math.Min(minLevel, *v)
			maxLevel = math.Max(maxLevel, *v)
		}
	}
	if level.n == 0 {
		minLevel, maxLevel = 0, 0
	}

	return Report{
		Summary: &ReportSummary{
			Count:                len(items),
			LatestAt:             items[0].CreatedAt,
			LevelUnit:            items[0].LevelUnit,
			AvgCurrentWaterLevel: level.value(),
			AvgInflowRate:        inflow.value(),
			AvgOutflowRate:       outflow.value(),
			AvgSpillwayDischarge: spill.value(),
			MaxLevelObserved:     maxLevel,
			MinLevelObserved:     minLevel,
		},
		Items: items,
	}
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v *float64) {
	if v == nil || math.IsNaN(*v) {
		return
	}
	m.sum += *v
	m.n++
}

func (m mean) value() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}

// ExportReport uploads the report as JSON and returns a download URL.
func (a *ReportAggregator) ExportReport(ctx context.Context, damID string, limit int) (string, error) {
	if a.store == nil {
		return "", apperr.Unavailable("Report export is not configured")
	}
	rep, err := a.Report(ctx, damID, limit)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(rep)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("encode report: %w", err))
	}
	key := fmt.Sprintf("reports/%s/%s.json", damID, a.now().Format("20060102T150405Z"))
	url, err := a.store.UploadReport(ctx, key, body)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("upload report: %w", err))
	}
	return url, nil
}

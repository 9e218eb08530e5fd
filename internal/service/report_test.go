package service

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

func row(level, inflow *float64, at time.Time) domain.DamStatusHistory {
	return domain.DamStatusHistory{DamStatus: domain.DamStatus{
		CurrentWaterLevel: level,
		InflowRate:        inflow,
		LevelUnit:         "m",
		CreatedAt:         at,
	}}
}

func TestSummarizeEmptyWindow(t *testing.T) {
	rep := Summarize(nil)
	assert.Nil(t, rep.Summary)

	out, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":null,"items":[]}`, string(out))
}

func TestSummarizeAveragesOnlyPresentValues(t *testing.T) {
	now := time.Now().UTC()
	items := []domain.DamStatusHistory{
		row(ptr(12.0), nil, now),
		row(nil, ptr(4.0), now.Add(-time.Minute)),
		row(ptr(-2.0), ptr(6.0), now.Add(-2*time.Minute)),
	}

	s := Summarize(items).Summary
	require.NotNil(t, s)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, now, s.LatestAt)
	assert.Equal(t, "m", s.LevelUnit)
	assert.Equal(t, 5.0, s.AvgCurrentWaterLevel)
	assert.Equal(t, 5.0, s.AvgInflowRate)
	assert.Equal(t, 0.0, s.AvgOutflowRate)
	assert.Equal(t, 12.0, s.MaxLevelObserved)
	assert.Equal(t, -2.0, s.MinLevelObserved)
}

func TestSummarizeSinglePresentLevel(t *testing.T) {
	now := time.Now().UTC()
	s := Summarize([]domain.DamStatusHistory{row(ptr(12.0), nil, now), row(nil, nil, now)}).Summary
	require.NotNil(t, s)
	assert.Equal(t, 12.0, s.AvgCurrentWaterLevel)
	assert.Equal(t, 12.0, s.MinLevelObserved)
}

func TestSummarizeWithoutLevels(t *testing.T) {
	s := Summarize([]domain.DamStatusHistory{row(nil, ptr(1.0), time.Now())}).Summary
	require.NotNil(t, s)
	assert.Zero(t, s.MaxLevelObserved)
	assert.Zero(t, s.MinLevelObserved)
}

func TestLimitsClamp(t *testing.T) {
	l := Limits{Default: 50, Max: 1000}
	assert.Equal(t, 50, l.Clamp(0))
	assert.Equal(t, 50, l.Clamp(-3))
	assert.Equal(t, 7, l.Clamp(7))
	assert.Equal(t, 1000, l.Clamp(5000))
}

func TestHistoryOrderAndCap(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, func(o *Options) {
		o.StatusHistory = Limits{Default: 2, Max: 3}
		o.EventHistory = Limits{Default: 1, Max: 2}
	})
	dam := seedTree(t, svcs, "Telangana", "Srisailam").Dams[0]
	for i := 1; i <= 5; i++ {
		_, err := svcs.Status.SetCurrentStatus(ctx, dam.ID, domain.StatusSample{CurrentWaterLevel: ptr(float64(i))})
		require.NoError(t, err)
	}

	items, err := svcs.Reports.History(ctx, dam.ID, 100, OldestFirst)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, 3.0, *items[0].CurrentWaterLevel)
	assert.Equal(t, 5.0, *items[2].CurrentWaterLevel)

	items, err = svcs.Reports.History(ctx, dam.ID, 0, OldestFirst)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svcs.Reports.History(ctx, dam.ID, 100, NewestFirst)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 5.0, *items[0].CurrentWaterLevel)

	items, err = svcs.Reports.History(ctx, "unknown", 10, NewestFirst)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReportOverStoredHistory(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	dam := seedTree(t, svcs, "Bihar", "Kosi").Dams[0]

	rep, err := svcs.Reports.Report(ctx, dam.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, rep.Summary)
	assert.Empty(t, rep.Items)

	for _, lvl := range []float64{10, 20} {
		_, err := svcs.Status.SetCurrentStatus(ctx, dam.ID, domain.StatusSample{CurrentWaterLevel: ptr(lvl)})
		require.NoError(t, err)
	}
	rep, err = svcs.Reports.Report(ctx, dam.ID, 0)
	require.NoError(t, err)
	require.NotNil(t, rep.Summary)
	assert.Equal(t, 2, rep.Summary.Count)
	assert.Equal(t, 15.0, rep.Summary.AvgCurrentWaterLevel)
	assert.Equal(t, 20.0, *rep.Items[0].CurrentWaterLevel)
}

type memReports struct {
	key  string
	body []byte
}

func (m *memReports) UploadReport(_ context.Context, key string, body []byte) (string, error) {
	m.key, m.body = key, body
	return "https://example.invalid/" + key, nil
}

func TestExportReport(t *testing.T) {
	ctx := context.Background()

	svcs := newTestServices(t)
	_, err := svcs.Reports.ExportReport(ctx, "d1", 0)
	assert.True(t, apperr.IsKind(err, apperr.KindUnavailable))

	store := &memReports{}
	svcs = newTestServices(t, func(o *Options) { o.Reports = store })
	url, err := svcs.Reports.ExportReport(ctx, "d1", 0)
	require.NoError(t, err)
	assert.Contains(t, url, "reports/d1/")
	assert.JSONEq(t, `{"summary":null,"items":[]}`, string(store.body))
}

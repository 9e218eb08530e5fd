package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

func TestHierarchyDuplicatesAndRenames(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	tr := seedTree(t, svcs, "Andhra", "Srisailam")

	_, err := svcs.Hierarchy.CreateState(ctx, domain.StateInput{Name: "Andhra"})
	assert.ErrorIs(t, err, apperr.Validation("State already exists"))
	_, err = svcs.Hierarchy.CreateRiver(ctx, domain.RiverInput{Name: "Andhra River", StateID: tr.State.ID})
	assert.ErrorIs(t, err, apperr.Validation("River already exists"))
	_, err = svcs.Hierarchy.CreateRiver(ctx, domain.RiverInput{Name: "X", StateID: "missing"})
	assert.ErrorIs(t, err, apperr.NotFound("State not found"))
	_, err = svcs.Hierarchy.CreateDam(ctx, domain.DamInput{Name: ptr("Srisailam"), RiverID: ptr(tr.River.ID)})
	assert.ErrorIs(t, err, apperr.Validation("Dam already exists"))
	_, err = svcs.Hierarchy.CreateDam(ctx, domain.DamInput{Name: ptr("New"), RiverID: ptr("missing")})
	assert.ErrorIs(t, err, apperr.NotFound("River not found"))
	_, err = svcs.Hierarchy.CreateState(ctx, domain.StateInput{Name: "  "})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	assert.Equal(t, "Andhra", tr.Dams[0].StateName)
	assert.Equal(t, "Andhra River", tr.Dams[0].RiverName)

	_, err = svcs.Hierarchy.RenameState(ctx, tr.State.ID, domain.StateInput{Name: "Andhra Pradesh"})
	require.NoError(t, err)
	_, err = svcs.Hierarchy.RenameRiver(ctx, tr.River.ID, domain.RiverInput{Name: "Krishna"})
	require.NoError(t, err)
	d, err := svcs.Hierarchy.GetDam(ctx, tr.Dams[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Andhra Pradesh", d.StateName)
	assert.Equal(t, "Krishna", d.RiverName)

	_, err = svcs.Hierarchy.RenameState(ctx, "missing", domain.StateInput{Name: "Y"})
	assert.ErrorIs(t, err, apperr.NotFound("State not found"))

	rivers, err := svcs.Hierarchy.ListRivers(ctx, "no-such-state")
	require.NoError(t, err)
	assert.NotNil(t, rivers)
	assert.Empty(t, rivers)
}

func TestSaveCoreDamInfo(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	tr := seedTree(t, svcs, "Assam", "Ranganadi")

	d, created, err := svcs.Hierarchy.SaveCoreDamInfo(ctx, tr.Dams[0].ID, domain.DamInput{
		Operator:   ptr("NEEPCO"),
		MaxStorage: ptr(100.5),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Ranganadi", d.Name)
	assert.Equal(t, "NEEPCO", d.Operator)
	assert.Equal(t, 100.5, *d.MaxStorage)

	d, created, err = svcs.Hierarchy.SaveCoreDamInfo(ctx, "core-1", domain.DamInput{Name: ptr("Kopili")})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "core-1", d.ID)

	_, _, err = svcs.Hierarchy.SaveCoreDamInfo(ctx, "core-2", domain.DamInput{})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

type recordingAlerter struct{ sent []domain.FloodRisk }

func (a *recordingAlerter) SendFloodAlert(_ context.Context, _ domain.Dam, s domain.Safety) error {
	a.sent = append(a.sent, s.FloodRiskLevel)
	return nil
}

func TestSafetyLifecycleAndFloodAlert(t *testing.T) {
	ctx := context.Background()
	alerter := &recordingAlerter{}
	svcs := newTestServices(t, func(o *Options) { o.Alerter = alerter })
	dam := seedTree(t, svcs, "Uttarakhand", "Tehri").Dams[0]

	_, err := svcs.Safety.GetSafety(ctx, dam.ID)
	assert.ErrorIs(t, err, apperr.NotFound("No safety info found"))

	rec, err := svcs.Safety.CreateSafety(ctx, dam.ID, domain.SafetyInput{EarthquakeZone: ptr("IV")})
	require.NoError(t, err)
	assert.Equal(t, domain.FloodRiskGreen, rec.FloodRiskLevel)

	_, err = svcs.Safety.CreateSafety(ctx, dam.ID, domain.SafetyInput{})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	_, err = svcs.Safety.CreateSafety(ctx, "missing", domain.SafetyInput{})
	assert.ErrorIs(t, err, apperr.NotFound("Dam not found"))

	rec, err = svcs.Safety.UpsertSafety(ctx, dam.ID, domain.SafetyInput{
		FloodRiskLevel:   ptr("Red"),
		StructuralHealth: &domain.StructuralHealth{Cracks: "minor"},
	})
	require.NoError(t, err)
	assert.Equal(t, "IV", rec.EarthquakeZone)
	assert.Equal(t, "minor", rec.StructuralHealth.Val.Cracks)

	// Staying Red does not alert again.
	_, err = svcs.Safety.UpsertSafety(ctx, dam.ID, domain.SafetyInput{SeepageReport: ptr("dry")})
	require.NoError(t, err)
	assert.Equal(t, []domain.FloodRisk{domain.FloodRiskRed}, alerter.sent)

	got, err := svcs.Safety.GetSafety(ctx, dam.ID)
	require.NoError(t, err)
	assert.Equal(t, "dry", got.SeepageReport)
	assert.Equal(t, "minor", got.StructuralHealth.Val.Cracks)

	_, err = svcs.Safety.UpsertSafety(ctx, dam.ID, domain.SafetyInput{FloodRiskLevel: ptr("Purple")})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestSensors(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	dam := seedTree(t, svcs, "Himachal", "Bhakra").Dams[0]

	sn, err := svcs.Sensors.Create(ctx, domain.SensorInput{DamID: ptr(dam.ID), SensorID: ptr("LVL-1"), Type: ptr("level")})
	require.NoError(t, err)
	assert.Equal(t, "active", sn.Status)
	assert.Equal(t, "good", sn.BatteryStatus)

	_, err = svcs.Sensors.Create(ctx, domain.SensorInput{DamID: ptr(dam.ID), SensorID: ptr("LVL-1"), Type: ptr("flow")})
	assert.ErrorIs(t, err, apperr.Validation("Sensor ID already exists"))

	sn, err = svcs.Sensors.Update(ctx, sn.ID, domain.SensorInput{BatteryStatus: ptr("low"), LastReading: ptr(4.2)})
	require.NoError(t, err)
	assert.Equal(t, "low", sn.BatteryStatus)

	list, err := svcs.Sensors.List(ctx, dam.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 4.2, list[0].LastReading)

	require.NoError(t, svcs.Sensors.Delete(ctx, sn.ID))
	assert.ErrorIs(t, svcs.Sensors.Delete(ctx, sn.ID), apperr.NotFound("Sensor not found"))
	_, err = svcs.Sensors.Update(ctx, sn.ID, domain.SensorInput{})
	assert.ErrorIs(t, err, apperr.NotFound("Sensor not found"))
}

func TestSupportingInfo(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	dam := seedTree(t, svcs, "Jharkhand", "Maithon").Dams[0]

	_, err := svcs.SupportingInfo.Create(ctx, dam.ID, domain.SupportingInfoInput{Title: ptr("Only title")})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	first, err := svcs.SupportingInfo.Create(ctx, dam.ID, domain.SupportingInfoInput{
		Type: ptr("publicSpot"), Title: ptr("Viewpoint"), Description: ptr("North bank"),
	})
	require.NoError(t, err)
	second, err := svcs.SupportingInfo.Create(ctx, dam.ID, domain.SupportingInfoInput{
		Type: ptr("prohibitedRegion"), Title: ptr("Spillway"), Description: ptr("Keep out"), DangerLevel: ptr("high"),
	})
	require.NoError(t, err)

	list, err := svcs.SupportingInfo.ListByDam(ctx, dam.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	upd, err := svcs.SupportingInfo.Update(ctx, first.ID, domain.SupportingInfoInput{Location: ptr("Gate 3")})
	require.NoError(t, err)
	assert.Equal(t, "Viewpoint", upd.Title)
	assert.Equal(t, "Gate 3", upd.Location)

	require.NoError(t, svcs.SupportingInfo.Delete(ctx, first.ID))
	assert.ErrorIs(t, svcs.SupportingInfo.Delete(ctx, first.ID), apperr.NotFound("Info not found"))
}

func TestWaterUsageAndTotals(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	tr := seedTree(t, svcs, "Rajasthan", "Rana Pratap", "Jawahar")

	_, err := svcs.Usage.TotalsByState(ctx, "Rajasthan")
	assert.ErrorIs(t, err, apperr.NotFound("No usage found"))

	u1, err := svcs.Usage.Create(ctx, domain.WaterUsageInput{DamID: ptr(tr.Dams[0].ID), Irrigation: ptr(10.0), Drinking: ptr(1.0)})
	require.NoError(t, err)
	_, err = svcs.Usage.Create(ctx, domain.WaterUsageInput{DamID: ptr(tr.Dams[1].ID), Irrigation: ptr(5.0), Hydropower: ptr(7.0)})
	require.NoError(t, err)
	_, err = svcs.Usage.Create(ctx, domain.WaterUsageInput{DamID: ptr(tr.Dams[0].ID)})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	totals, err := svcs.Usage.TotalsByState(ctx, "Rajasthan")
	require.NoError(t, err)
	assert.Equal(t, domain.UsageTotals{Irrigation: 15, Drinking: 1, Hydropower: 7}, *totals)

	totals, err = svcs.Usage.TotalsByRiver(ctx, tr.River.ID)
	require.NoError(t, err)
	assert.Equal(t, 15.0, totals.Irrigation)
	_, err = svcs.Usage.TotalsByRiver(ctx, "missing")
	assert.ErrorIs(t, err, apperr.NotFound("River not found"))

	u1, err = svcs.Usage.Update(ctx, u1.ID, domain.WaterUsageInput{Drinking: ptr(2.5)})
	require.NoError(t, err)
	assert.Equal(t, 10.0, u1.Irrigation)
	assert.Equal(t, 2.5, u1.Drinking)

	got, err := svcs.Usage.GetByDam(ctx, tr.Dams[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2.5, got.Drinking)

	require.NoError(t, svcs.Usage.Delete(ctx, u1.ID))
	assert.ErrorIs(t, svcs.Usage.Delete(ctx, u1.ID), apperr.NotFound("Usage data not found"))
	_, err = svcs.Usage.GetByDam(ctx, tr.Dams[0].ID)
	assert.ErrorIs(t, err, apperr.NotFound("No usage data for this dam"))
}

func TestFeatures(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)

	f, err := svcs.Features.Create(ctx, "admin-1", domain.FeatureInput{Name: ptr("Reports"), Category: ptr("Admin & Reports")})
	require.NoError(t, err)
	assert.Equal(t, "Active", f.Status)
	assert.Equal(t, "admin-1", f.CreatedBy)

	_, err = svcs.Features.Create(ctx, "admin-1", domain.FeatureInput{Name: ptr("X"), Category: ptr("Other")})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	f, err = svcs.Features.Update(ctx, f.ID, domain.FeatureInput{Status: ptr("Disabled"), AdminOnly: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "Disabled", f.Status)
	assert.True(t, f.AdminOnly)

	list, err := svcs.Features.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svcs.Features.Delete(ctx, f.ID))
	assert.ErrorIs(t, svcs.Features.Delete(ctx, f.ID), apperr.NotFound("Feature not found"))
}

func TestIngestFromMQTT(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	dam := seedTree(t, svcs, "Madhya Pradesh", "Indira Sagar").Dams[0]

	id, ok := DamIDFromTopic("dams/" + dam.ID + "/status")
	require.True(t, ok)
	assert.Equal(t, dam.ID, id)
	for _, bad := range []string{"dams//status", "dams/x", "meters/x/status", "dams/x/status/extra"} {
		_, ok := DamIDFromTopic(bad)
		assert.False(t, ok, bad)
	}

	st, err := svcs.Ingest.FromMQTT(ctx, "dams/"+dam.ID+"/status", []byte(`{"currentWaterLevel": 18.5, "sensorId": "LVL-7"}`))
	require.NoError(t, err)
	assert.Equal(t, 18.5, *st.CurrentWaterLevel)
	assert.Equal(t, "sensor", st.Source)
	assert.Equal(t, "LVL-7", st.SensorID)

	_, err = svcs.Ingest.FromMQTT(ctx, "dams/"+dam.ID+"/status", []byte(`{not json`))
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	_, err = svcs.Ingest.FromMQTT(ctx, "dams/missing/status", []byte(`{"currentWaterLevel": 1}`))
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

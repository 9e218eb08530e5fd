package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/metrics"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/repository"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/validation"
)

// StatusStore persists the current reading per dam and its history.
type StatusStore interface {
	GetCurrent(ctx context.Context, damID string) (*domain.DamStatus, error)
	UpsertCurrent(ctx context.Context, st *domain.DamStatus) error
	AppendHistory(ctx context.Context, h *domain.DamStatusHistory) error
	ListHistory(ctx context.Context, damID string, limit int) ([]domain.DamStatusHistory, error)
}

type DamGetter interface {
	Get(ctx context.Context, id string) (*domain.Dam, error)
}

// StatusRecorder writes dam readings. The current row and the history row are
// written one after the other without a transaction. SetCurrentStatus writes
// current first, RecordSample appends history first.
type StatusRecorder struct {
	store    StatusStore
	dams     DamGetter
	archiver Archiver
	now      func() time.Time
}

func NewStatusRecorder(store StatusStore, dams DamGetter, archiver Archiver) *StatusRecorder {
	return &StatusRecorder{store: store, dams: dams, archiver: archiver, now: utcNow}
}

func newStatus(damID string) *domain.DamStatus {
	return &domain.DamStatus{
		DamID:       damID,
		LevelUnit:   "m",
		Source:      "manual",
		PowerStatus: "ok",
		GateStatus:  domain.Gates{},
	}
}

// applySample copies every present field of s onto st.
func applySample(st *domain.DamStatus, s domain.StatusSample) {
	if s.CurrentWaterLevel != nil {
		st.CurrentWaterLevel = s.CurrentWaterLevel
	}
	setIf(&st.LevelUnit, s.LevelUnit)
	if s.MaxLevel != nil {
		st.MaxLevel = s.MaxLevel
	}
	if s.MinLevel != nil {
		st.MinLevel = s.MinLevel
	}
	if s.InflowRate != nil {
		st.InflowRate = s.InflowRate
	}
	if s.OutflowRate != nil {
		st.OutflowRate = s.OutflowRate
	}
	if s.SpillwayDischarge != nil {
		st.SpillwayDischarge = s.SpillwayDischarge
	}
	if s.GateStatus != nil {
		st.GateStatus = domain.Gates(s.GateStatus)
	}
	setIf(&st.Source, s.Source)
	setIf(&st.SensorID, s.SensorID)
	setIf(&st.PowerStatus, s.PowerStatus)
	if s.IsActive != nil {
		st.IsActive = s.IsActive
	}
	setIf(&st.Status, s.Status)
}

func (r *StatusRecorder) requireDam(ctx context.Context, damID string) (*domain.Dam, error) {
	dam, err := r.dams.Get(ctx, damID)
	return dam, storeErr(err, "Dam not found", "load dam")
}

func validateSample(s *domain.StatusSample, requireLevel bool) error {
	if err := validation.Struct(s); err != nil {
		return err
	}
	if requireLevel && s.CurrentWaterLevel == nil {
		return apperr.Validation("currentWaterLevel is required")
	}
	return nil
}

// RecordSample appends one reading to the history log and projects it onto
// the current row unless that row already holds a newer sync time.
func (r *StatusRecorder) RecordSample(ctx context.Context, damID string, s domain.StatusSample) (*domain.DamStatusHistory, error) {
	if _, err := r.requireDam(ctx, damID); err != nil {
		return nil, err
	}
	if err := validateSample(&s, true); err != nil {
		return nil, err
	}

	st := newStatus(damID)
	applySample(st, s)
	ts := r.now()
	st.LastSyncAt = &ts
	if s.LastSyncAt != nil {
		lastSync := s.LastSyncAt.UTC()
		st.LastSyncAt = &lastSync
	}
	st.CreatedAt, st.UpdatedAt = ts, ts

	h := &domain.DamStatusHistory{DamStatus: *st}
	if err := r.store.AppendHistory(ctx, h); err != nil {
		metrics.StatusWriteErrors.WithLabelValues("history").Inc()
		return nil, apperr.Internal(fmt.Errorf("record sample: %w", err))
	}
	metrics.StatusSamplesRecorded.Inc()
	r.archive(ctx, *h)

	if err := r.project(ctx, damID, s, *st.LastSyncAt); err != nil {
		metrics.StatusWriteErrors.WithLabelValues("current").Inc()
		log.Error().Err(err).Str("dam_id", damID).Msg("sample appended but current status not updated")
		return nil, apperr.Internal(fmt.Errorf("record sample: %w", err))
	}
	return h, nil
}

// project merges s into the current row when syncedAt is not older than the
// row's own sync time. A dam without a current row gets one from s alone.
func (r *StatusRecorder) project(ctx context.Context, damID string, s domain.StatusSample, syncedAt time.Time) error {
	cur, err := r.store.GetCurrent(ctx, damID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		cur = newStatus(damID)
	case err != nil:
		return fmt.Errorf("load current status: %w", err)
	case cur.LastSyncAt != nil && cur.LastSyncAt.After(syncedAt):
		return nil
	}
	cur.Dam = nil
	applySample(cur, s)
	cur.LastSyncAt = &syncedAt
	return r.store.UpsertCurrent(ctx, cur)
}

// SetCurrentStatus merges s into the current row of the dam, creating it with
// defaults when absent, then appends a copy of the result to history.
func (r *StatusRecorder) SetCurrentStatus(ctx context.Context, damID string, s domain.StatusSample) (*domain.DamStatus, error) {
	dam, err := r.requireDam(ctx, damID)
	if err != nil {
		return nil, err
	}

	cur, err := r.store.GetCurrent(ctx, damID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		if err := validateSample(&s, true); err != nil {
			return nil, err
		}
		cur = newStatus(damID)
	case err != nil:
		return nil, apperr.Internal(fmt.Errorf("load current status: %w", err))
	default:
		if err := validateSample(&s, false); err != nil {
			return nil, err
		}
	}

	applySample(cur, s)
	ts := r.now()
	cur.LastSyncAt = &ts

	if err := r.store.UpsertCurrent(ctx, cur); err != nil {
		metrics.StatusWriteErrors.WithLabelValues("current").Inc()
		return nil, apperr.Internal(fmt.Errorf("set current status: %w", err))
	}

	h := &domain.DamStatusHistory{DamStatus: *cur}
	h.Dam = nil
	h.CreatedAt, h.UpdatedAt = cur.UpdatedAt, cur.UpdatedAt
	if err := r.store.AppendHistory(ctx, h); err != nil {
		metrics.StatusWriteErrors.WithLabelValues("history").Inc()
		log.Error().Err(err).Str("dam_id", damID).Msg("current status written but history append failed")
		return nil, apperr.Internal(fmt.Errorf("append status history: %w", err))
	}
	metrics.StatusUpserts.Inc()
	r.archive(ctx, *h)

	cur.Dam = dam
	return cur, nil
}

// LatestStatus returns the current row with its dam attached.
func (r *StatusRecorder) LatestStatus(ctx context.Context, damID string) (*domain.DamStatus, error) {
	cur, err := r.store.GetCurrent(ctx, damID)
	if err != nil {
		return nil, storeErr(err, "No current status found", "load current status")
	}
	dam, err := r.dams.Get(ctx, damID)
	switch {
	case err == nil:
		cur.Dam = dam
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperr.Internal(fmt.Errorf("load dam: %w", err))
	}
	return cur, nil
}

func (r *StatusRecorder) archive(ctx context.Context, h domain.DamStatusHistory) {
	if r.archiver == nil {
		return
	}
	if err := r.archiver.Archive(ctx, h); err != nil {
		metrics.StatusWriteErrors.WithLabelValues("archive").Inc()
		log.Warn().Err(err).Str("dam_id", h.DamID).Str("history_id", h.ID).Msg("archive status history")
	}
}

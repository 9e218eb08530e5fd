package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/metrics"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/repository"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/validation"
)

type SafetyService struct {
	safety  *repository.SafetyRepo
	dams    *repository.DamRepo
	alerter Alerter
}

func applySafety(s *domain.Safety, in domain.SafetyInput) {
	if in.FloodRiskLevel != nil {
		s.FloodRiskLevel = domain.FloodRisk(*in.FloodRiskLevel)
	}
	setIf(&s.SeepageReport, in.SeepageReport)
	setIf(&s.StructuralHealth.Val, in.StructuralHealth)
	setIf(&s.EarthquakeZone, in.EarthquakeZone)
	setIf(&s.Maintenance.Val, in.Maintenance)
	setIf(&s.EmergencyContact.Val, in.EmergencyContact)
}

func (s *SafetyService) CreateSafety(ctx context.Context, damID string, in domain.SafetyInput) (*domain.Safety, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	dam, err := s.dams.Get(ctx, damID)
	if err != nil {
		return nil, storeErr(err, "Dam not found", "load dam")
	}
	rec := &domain.Safety{DamID: damID, FloodRiskLevel: domain.FloodRiskGreen}
	applySafety(rec, in)
	if err := s.safety.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("Safety info already exists for this dam")
		}
		return nil, apperr.Internal(fmt.Errorf("create safety: %w", err))
	}
	s.alertOnRed(ctx, dam, "", rec)
	return rec, nil
}

func (s *SafetyService) GetSafety(ctx context.Context, damID string) (*domain.Safety, error) {
	rec, err := s.safety.GetByDam(ctx, damID)
	return rec, storeErr(err, "No safety info found", "load safety")
}

// UpsertSafety merges the present fields into the dam's record, creating it
// when absent.
func (s *SafetyService) UpsertSafety(ctx context.Context, damID string, in domain.SafetyInput) (*domain.Safety, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	rec, err := s.safety.GetByDam(ctx, damID)
	if errors.Is(err, repository.ErrNotFound) {
		return s.CreateSafety(ctx, damID, in)
	}
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("load safety: %w", err))
	}
	dam, err := s.dams.Get(ctx, damID)
	if err != nil {
		return nil, storeErr(err, "Dam not found", "load dam")
	}

	prev := rec.FloodRiskLevel
	applySafety(rec, in)
	if err := s.safety.Update(ctx, rec); err != nil {
		return nil, storeErr(err, "No safety info found", "update safety")
	}
	s.alertOnRed(ctx, dam, prev, rec)
	return rec, nil
}

func (s *SafetyService) alertOnRed(ctx context.Context, dam *domain.Dam, prev domain.FloodRisk, rec *domain.Safety) {
	if s.alerter == nil || rec.FloodRiskLevel != domain.FloodRiskRed || prev == domain.FloodRiskRed {
		return
	}
	if err := s.alerter.SendFloodAlert(ctx, *dam, *rec); err != nil {
		log.Warn().Err(err).Str("dam_id", dam.ID).Msg("send flood alert")
		return
	}
	metrics.FloodAlertsSent.Inc()
}

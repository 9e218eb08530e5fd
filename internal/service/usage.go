package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/repository"
)

type UsageService struct {
	usage  *repository.UsageRepo
	dams   *repository.DamRepo
	rivers *repository.RiverRepo
}

func applyUsage(u *domain.WaterUsage, in domain.WaterUsageInput) {
	setIf(&u.DamID, in.DamID)
	setIf(&u.Irrigation, in.Irrigation)
	setIf(&u.Drinking, in.Drinking)
	setIf(&u.Industrial, in.Industrial)
	setIf(&u.Hydropower, in.Hydropower)
	setIf(&u.EvaporationLoss, in.EvaporationLoss)
	setIf(&u.EnvironmentalFlow, in.EnvironmentalFlow)
	setIf(&u.FarmingSupport, in.FarmingSupport)
}

func (s *UsageService) Create(ctx context.Context, in domain.WaterUsageInput) (*domain.WaterUsage, error) {
	if deref(in.DamID) == "" {
		return nil, apperr.Validation("damId is required")
	}
	if _, err := s.dams.Get(ctx, *in.DamID); err != nil {
		return nil, storeErr(err, "Dam not found", "load dam")
	}
	u := &domain.WaterUsage{}
	applyUsage(u, in)
	if err := s.usage.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("Usage data already exists for this dam")
		}
		return nil, apperr.Internal(fmt.Errorf("create usage: %w", err))
	}
	return u, nil
}

func (s *UsageService) List(ctx context.Context) ([]domain.WaterUsage, error) {
	out, err := s.usage.List(ctx)
	return out, storeErr(err, "", "list usage")
}

func (s *UsageService) GetByDam(ctx context.Context, damID string) (*domain.WaterUsage, error) {
	u, err := s.usage.GetByDam(ctx, damID)
	return u, storeErr(err, "No usage data for this dam", "load usage")
}

func (s *UsageService) Update(ctx context.Context, id string, in domain.WaterUsageInput) (*domain.WaterUsage, error) {
	u, err := s.usage.Get(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Usage data not found", "load usage")
	}
	if in.DamID != nil && *in.DamID != u.DamID {
		if _, err := s.dams.Get(ctx, *in.DamID); err != nil {
			return nil, storeErr(err, "Dam not found", "load dam")
		}
	}
	applyUsage(u, in)
	if err := s.usage.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("Usage data already exists for this dam")
		}
		return nil, storeErr(err, "Usage data not found", "update usage")
	}
	return u, nil
}

func (s *UsageService) Delete(ctx context.Context, id string) error {
	return storeErr(s.usage.Delete(ctx, id), "Usage data not found", "delete usage")
}

func totals(rows []domain.WaterUsage) (*domain.UsageTotals, error) {
	if len(rows) == 0 {
		return nil, apperr.NotFound("No usage found")
	}
	t := &domain.UsageTotals{}
	for _, u := range rows {
		t.Add(u)
	}
	return t, nil
}

// TotalsByState sums usage over dams whose state name matches.
func (s *UsageService) TotalsByState(ctx context.Context, stateName string) (*domain.UsageTotals, error) {
	rows, err := s.usage.ListByStateName(ctx, stateName)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list usage by state: %w", err))
	}
	return totals(rows)
}

func (s *UsageService) TotalsByRiver(ctx context.Context, riverID string) (*domain.UsageTotals, error) {
	if _, err := s.rivers.Get(ctx, riverID); err != nil {
		return nil, storeErr(err, "River not found", "load river")
	}
	rows, err := s.usage.ListByRiver(ctx, riverID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list usage by river: %w", err))
	}
	return totals(rows)
}

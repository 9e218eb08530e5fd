package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/repository"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/validation"
)

type FeatureService struct {
	features *repository.FeatureRepo
}

func applyFeature(f *domain.Feature, in domain.FeatureInput) {
	if in.Name != nil {
		f.Name = strings.TrimSpace(*in.Name)
	}
	setIf(&f.Description, in.Description)
	setIf(&f.Category, in.Category)
	setIf(&f.Status, in.Status)
	setIf(&f.AdminOnly, in.AdminOnly)
}

func (s *FeatureService) List(ctx context.Context) ([]domain.Feature, error) {
	out, err := s.features.List(ctx)
	return out, storeErr(err, "", "list features")
}

// Create stores a feature attributed to createdBy.
func (s *FeatureService) Create(ctx context.Context, createdBy string, in domain.FeatureInput) (*domain.Feature, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	f := &domain.Feature{Status: "Active", CreatedBy: createdBy}
	applyFeature(f, in)
	if f.Name == "" || f.Category == "" {
		return nil, apperr.Validation("name and category are required")
	}
	if err := s.features.Create(ctx, f); err != nil {
		return nil, apperr.Internal(fmt.Errorf("create feature: %w", err))
	}
	return f, nil
}

func (s *FeatureService) Update(ctx context.Context, id string, in domain.FeatureInput) (*domain.Feature, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	f, err := s.features.Get(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Feature not found", "load feature")
	}
	applyFeature(f, in)
	if f.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	if err := s.features.Update(ctx, f); err != nil {
		return nil, storeErr(err, "Feature not found", "update feature")
	}
	return f, nil
}

func (s *FeatureService) Delete(ctx context.Context, id string) error {
	return storeErr(s.features.Delete(ctx, id), "Feature not found", "delete feature")
}

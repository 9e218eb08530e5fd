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

type SupportingInfoService struct {
	info *repository.SupportingInfoRepo
	dams *repository.DamRepo
}

func applyInfo(s *domain.SupportingInfo, in domain.SupportingInfoInput) {
	setIf(&s.Type, in.Type)
	setIf(&s.Title, in.Title)
	setIf(&s.Description, in.Description)
	setIf(&s.Location, in.Location)
	setIf(&s.DangerLevel, in.DangerLevel)
}

func requireInfoText(s *domain.SupportingInfo) error {
	if strings.TrimSpace(s.Title) == "" || strings.TrimSpace(s.Description) == "" {
		return apperr.Validation("title and description are required")
	}
	return nil
}

func (s *SupportingInfoService) Create(ctx context.Context, damID string, in domain.SupportingInfoInput) (*domain.SupportingInfo, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	if _, err := s.dams.Get(ctx, damID); err != nil {
		return nil, storeErr(err, "Dam not found", "load dam")
	}
	rec := &domain.SupportingInfo{DamID: damID, Type: "guideline"}
	applyInfo(rec, in)
	if err := requireInfoText(rec); err != nil {
		return nil, err
	}
	if err := s.info.Create(ctx, rec); err != nil {
		return nil, apperr.Internal(fmt.Errorf("create supporting info: %w", err))
	}
	return rec, nil
}

func (s *SupportingInfoService) ListByDam(ctx context.Context, damID string) ([]domain.SupportingInfo, error) {
	out, err := s.info.ListByDam(ctx, damID)
	return out, storeErr(err, "", "list supporting info")
}

func (s *SupportingInfoService) Update(ctx context.Context, id string, in domain.SupportingInfoInput) (*domain.SupportingInfo, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	rec, err := s.info.Get(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Info not found", "load supporting info")
	}
	applyInfo(rec, in)
	if err := requireInfoText(rec); err != nil {
		return nil, err
	}
	if err := s.info.Update(ctx, rec); err != nil {
		return nil, storeErr(err, "Info not found", "update supporting info")
	}
	return rec, nil
}

func (s *SupportingInfoService) Delete(ctx context.Context, id string) error {
	return storeErr(s.info.Delete(ctx, id), "Info not found", "delete supporting info")
}

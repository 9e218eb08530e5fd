package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/repository"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/validation"
)

type SensorService struct {
	sensors *repository.SensorRepo
	dams    *repository.DamRepo
}

func applySensor(s *domain.Sensor, in domain.SensorInput) {
	setIf(&s.DamID, in.DamID)
	setIf(&s.SensorID, in.SensorID)
	setIf(&s.Type, in.Type)
	setIf(&s.Status, in.Status)
	setIf(&s.BatteryStatus, in.BatteryStatus)
	if in.LastSync != nil {
		s.LastSync = in.LastSync.UTC()
	}
	setIf(&s.LastReading, in.LastReading)
	setIf(&s.Unit, in.Unit)
}

func (s *SensorService) Create(ctx context.Context, in domain.SensorInput) (*domain.Sensor, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	if deref(in.DamID) == "" || strings.TrimSpace(deref(in.SensorID)) == "" || deref(in.Type) == "" {
		return nil, apperr.Validation("damId, sensorId and type are required")
	}
	if _, err := s.dams.Get(ctx, *in.DamID); err != nil {
		return nil, storeErr(err, "Dam not found", "load dam")
	}
	sn := &domain.Sensor{Status: "active", BatteryStatus: "good", LastSync: utcNow()}
	applySensor(sn, in)
	if err := s.sensors.Create(ctx, sn); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("Sensor ID already exists")
		}
		return nil, apperr.Internal(fmt.Errorf("create sensor: %w", err))
	}
	return sn, nil
}

// List returns every sensor, or those of one dam when damID is set.
func (s *SensorService) List(ctx context.Context, damID string) ([]domain.Sensor, error) {
	out, err := s.sensors.List(ctx, damID)
	return out, storeErr(err, "", "list sensors")
}

func (s *SensorService) Update(ctx context.Context, id string, in domain.SensorInput) (*domain.Sensor, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	sn, err := s.sensors.Get(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Sensor not found", "load sensor")
	}
	if in.DamID != nil && *in.DamID != sn.DamID {
		if _, err := s.dams.Get(ctx, *in.DamID); err != nil {
			return nil, storeErr(err, "Dam not found", "load dam")
		}
	}
	applySensor(sn, in)
	if err := s.sensors.Update(ctx, sn); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("Sensor ID already exists")
		}
		return nil, storeErr(err, "Sensor not found", "update sensor")
	}
	return sn, nil
}

func (s *SensorService) Delete(ctx context.Context, id string) error {
	return storeErr(s.sensors.Delete(ctx, id), "Sensor not found", "delete sensor")
}

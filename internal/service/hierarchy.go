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

// HierarchyService manages the state, river and dam tree.
type HierarchyService struct {
	repos *repository.Repos
}

func (s *HierarchyService) CreateState(ctx context.Context, in domain.StateInput) (*domain.State, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	st := &domain.State{Name: in.Name}
	if err := s.repos.States.Create(ctx, st); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("State already exists")
		}
		return nil, apperr.Internal(fmt.Errorf("create state: %w", err))
	}
	return st, nil
}

func (s *HierarchyService) ListStates(ctx context.Context) ([]domain.State, error) {
	out, err := s.repos.States.List(ctx)
	return out, storeErr(err, "", "list states")
}

// RenameState renames the state and refreshes the cached name on its dams.
func (s *HierarchyService) RenameState(ctx context.Context, id string, in domain.StateInput) (*domain.State, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	if err := s.repos.States.Rename(ctx, id, in.Name); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("State already exists")
		}
		return nil, storeErr(err, "State not found", "rename state")
	}
	if err := s.repos.Dams.RenameState(ctx, id, in.Name); err != nil {
		return nil, apperr.Internal(fmt.Errorf("refresh dam state names: %w", err))
	}
	st, err := s.repos.States.Get(ctx, id)
	return st, storeErr(err, "State not found", "load state")
}

func (s *HierarchyService) CreateRiver(ctx context.Context, in domain.RiverInput) (*domain.River, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	if in.StateID == "" {
		return nil, apperr.Validation("stateId is required")
	}
	if _, err := s.repos.States.Get(ctx, in.StateID); err != nil {
		return nil, storeErr(err, "State not found", "load state")
	}
	rv := &domain.River{Name: in.Name, StateID: in.StateID}
	if err := s.repos.Rivers.Create(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("River already exists")
		}
		return nil, apperr.Internal(fmt.Errorf("create river: %w", err))
	}
	return rv, nil
}

// ListRivers returns the rivers of a state by name. An unknown state simply
// has no rivers.
func (s *HierarchyService) ListRivers(ctx context.Context, stateID string) ([]domain.River, error) {
	out, err := s.repos.Rivers.ListByState(ctx, stateID)
	return out, storeErr(err, "", "list rivers")
}

// RenameRiver renames the river and refreshes the cached name on its dams.
func (s *HierarchyService) RenameRiver(ctx context.Context, id string, in domain.RiverInput) (*domain.River, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	if err := s.repos.Rivers.Rename(ctx, id, in.Name); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("River already exists")
		}
		return nil, storeErr(err, "River not found", "rename river")
	}
	if err := s.repos.Dams.RenameRiver(ctx, id, in.Name); err != nil {
		return nil, apperr.Internal(fmt.Errorf("refresh dam river names: %w", err))
	}
	rv, err := s.repos.Rivers.Get(ctx, id)
	return rv, storeErr(err, "River not found", "load river")
}

// applyDamInput copies present fields onto d. The river, when given, must
// exist; state and cached names follow it.
func (s *HierarchyService) applyDamInput(ctx context.Context, d *domain.Dam, in domain.DamInput) error {
	if in.Name != nil {
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.RiverID != nil && *in.RiverID != d.RiverID {
		if *in.RiverID == "" {
			d.RiverID, d.RiverName, d.StateID, d.StateName = "", "", "", ""
		} else {
			river, err := s.repos.Rivers.Get(ctx, *in.RiverID)
			if err != nil {
				return storeErr(err, "River not found", "load river")
			}
			state, err := s.repos.States.Get(ctx, river.StateID)
			if err != nil {
				return storeErr(err, "State not found", "load state")
			}
			d.RiverID, d.RiverName = river.ID, river.Name
			d.StateID, d.StateName = state.ID, state.Name
		}
	}
	setIf(&d.Coordinates, in.Coordinates)
	setIf(&d.DamType, in.DamType)
	setIf(&d.ConstructionYear, in.ConstructionYear)
	setIf(&d.Operator, in.Operator)
	if in.MaxStorage != nil {
		d.MaxStorage = in.MaxStorage
	}
	if in.LiveStorage != nil {
		d.LiveStorage = in.LiveStorage
	}
	if in.DeadStorage != nil {
		d.DeadStorage = in.DeadStorage
	}
	setIf(&d.CatchmentArea, in.CatchmentArea)
	setIf(&d.SurfaceArea, in.SurfaceArea)
	setIf(&d.Height, in.Height)
	setIf(&d.Length, in.Length)
	if d.Name == "" {
		return apperr.Validation("name is required")
	}
	return nil
}

func (s *HierarchyService) CreateDam(ctx context.Context, in domain.DamInput) (*domain.Dam, error) {
	if deref(in.RiverID) == "" {
		return nil, apperr.Validation("riverId is required")
	}
	return s.createDam(ctx, "", in)
}

func (s *HierarchyService) createDam(ctx context.Context, id string, in domain.DamInput) (*domain.Dam, error) {
	d := &domain.Dam{ID: id}
	if err := s.applyDamInput(ctx, d, in); err != nil {
		return nil, err
	}
	if err := s.repos.Dams.Create(ctx, d); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("Dam already exists")
		}
		return nil, apperr.Internal(fmt.Errorf("create dam: %w", err))
	}
	return d, nil
}

func (s *HierarchyService) ListDams(ctx context.Context, riverID string) ([]domain.Dam, error) {
	out, err := s.repos.Dams.ListByRiver(ctx, riverID)
	return out, storeErr(err, "", "list dams")
}

func (s *HierarchyService) GetDam(ctx context.Context, id string) (*domain.Dam, error) {
	d, err := s.repos.Dams.Get(ctx, id)
	return d, storeErr(err, "Dam not found", "load dam")
}

// SaveCoreDamInfo patches the dam with the given id, or creates it under that
// id when it does not exist. created reports which happened.
func (s *HierarchyService) SaveCoreDamInfo(ctx context.Context, id string, in domain.DamInput) (d *domain.Dam, created bool, err error) {
	d, err = s.repos.Dams.Get(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		d, err = s.createDam(ctx, id, in)
		return d, err == nil, err
	case err != nil:
		return nil, false, apperr.Internal(fmt.Errorf("load dam: %w", err))
	}

	if err := s.applyDamInput(ctx, d, in); err != nil {
		return nil, false, err
	}
	if err := s.repos.Dams.Update(ctx, d); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, false, apperr.Validation("Dam already exists")
		}
		return nil, false, storeErr(err, "Dam not found", "update dam")
	}
	return d, false, nil
}

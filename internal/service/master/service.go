package master

import (
	"context"
	"fmt"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/master/unit"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/validator"
)

type MasterService interface {
	ListUnits(ctx context.Context) ([]unit.UnitResponse, error)
	GetUnit(ctx context.Context, id string) (unit.UnitResponse, error)
}

type masterServiceImpl struct {
	unitRepo unit.UnitRepository
}

func NewMasterService(unitRepo unit.UnitRepository) MasterService {
	return &masterServiceImpl{unitRepo: unitRepo}
}

func (s *masterServiceImpl) ListUnits(ctx context.Context) ([]unit.UnitResponse, error) {
	units, err := s.unitRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}

	resp := make([]unit.UnitResponse, 0, len(units))
	for _, u := range units {
		resp = append(resp, toUnitResponse(u))
	}
	return resp, nil
}

func (s *masterServiceImpl) GetUnit(ctx context.Context, id string) (unit.UnitResponse, error) {
	if !validator.IsValidUUID(id) {
		return unit.UnitResponse{}, unit.ErrUnitNotFound
	}

	u, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return unit.UnitResponse{}, err
	}
	return toUnitResponse(u), nil
}

func toUnitResponse(u unit.Unit) unit.UnitResponse {
	return unit.UnitResponse{ID: u.ID, Name: u.Name, EmployeeCount: u.EmployeeCount}
}

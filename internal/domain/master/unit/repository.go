package unit

import "context"

type UnitRepository interface {
	List(ctx context.Context) ([]Unit, error)
	GetByID(ctx context.Context, id string) (Unit, error)
}

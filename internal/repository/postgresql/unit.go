package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/master/unit"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/database"
)

type unitRepositoryImpl struct {
	db *database.DB
}

func NewUnitRepository(db *database.DB) unit.UnitRepository {
	return &unitRepositoryImpl{db: db}
}

// List implements unit.UnitRepository. Units come back ordered by name with
// the number of active employees in each.
func (r *unitRepositoryImpl) List(ctx context.Context) ([]unit.Unit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.name, COUNT(e.id) FILTER (WHERE e.active)
		FROM units u
		LEFT JOIN employees e ON e.unit_id = u.id
		GROUP BY u.id, u.name
		ORDER BY u.name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	defer rows.Close()

	var units []unit.Unit
	for rows.Next() {
		var u unit.Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.EmployeeCount); err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, u)
	}

	return units, rows.Err()
}

// GetByID implements unit.UnitRepository.
func (r *unitRepositoryImpl) GetByID(ctx context.Context, id string) (unit.Unit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.name, (SELECT COUNT(*) FROM employees e WHERE e.unit_id = u.id AND e.active)
		FROM units u
		WHERE u.id = $1
	`

	var u unit.Unit
	err := q.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.EmployeeCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return unit.Unit{}, unit.ErrUnitNotFound
		}
		return unit.Unit{}, fmt.Errorf("failed to get unit: %w", err)
	}
	return u, nil
}

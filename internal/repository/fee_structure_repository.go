package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/fees"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/model"
)

// FeeStructureRepository handles fee structure data access. The class_name
// unique constraint is the source of duplicate-class conflicts.
type FeeStructureRepository struct {
	pool *pgxpool.Pool
}

// NewFeeStructureRepository creates a new FeeStructureRepository.
func NewFeeStructureRepository(pool *pgxpool.Pool) *FeeStructureRepository {
	return &FeeStructureRepository{pool: pool}
}

const feeStructureColumns = `id, class_name, tuition, annual, total_fee, q1, q2, q3, q4, services, notes, created_at, updated_at`

func scanFeeStructure(row pgxRow, f *model.FeeStructure) error {
	var services []byte
	err := row.Scan(&f.ID, &f.ClassName, &f.Tuition, &f.Annual, &f.TotalFee,
		&f.Q1, &f.Q2, &f.Q3, &f.Q4, &services, &f.Notes, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return err
	}
	if len(services) > 0 {
		if err := json.Unmarshal(services, &f.Services); err != nil {
			return err
		}
	}
	if f.Services == nil {
		f.Services = []fees.ServiceComponent{}
	}
	return nil
}

// Create inserts a new fee structure. A duplicate class_name surfaces as a
// unique-violation error from the driver.
func (r *FeeStructureRepository) Create(ctx context.Context, f *model.FeeStructure) error {
	services, err := json.Marshal(f.Services)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO fee_structures (class_name, tuition, annual, total_fee, q1, q2, q3, q4, services, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		f.ClassName, f.Tuition, f.Annual, f.TotalFee, f.Q1, f.Q2, f.Q3, f.Q4, services, f.Notes,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

// Update overwrites the structure for a class. Last writer wins; the store's
// row lock serializes concurrent updates. Returns pgx.ErrNoRows if the class
// has no structure.
func (r *FeeStructureRepository) Update(ctx context.Context, f *model.FeeStructure) error {
	services, err := json.Marshal(f.Services)
	if err != nil {
		return err
	}
	err = r.pool.QueryRow(ctx,
		`UPDATE fee_structures
		 SET tuition = $2, annual = $3, total_fee = $4, q1 = $5, q2 = $6, q3 = $7, q4 = $8,
		     services = $9, notes = $10, updated_at = NOW()
		 WHERE class_name = $1
		 RETURNING id, created_at, updated_at`,
		f.ClassName, f.Tuition, f.Annual, f.TotalFee, f.Q1, f.Q2, f.Q3, f.Q4, services, f.Notes,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	return err
}

// GetByClassName retrieves the fee structure for a class.
func (r *FeeStructureRepository) GetByClassName(ctx context.Context, className string) (*model.FeeStructure, error) {
	f := &model.FeeStructure{}
	err := scanFeeStructure(r.pool.QueryRow(ctx,
		`SELECT `+feeStructureColumns+` FROM fee_structures WHERE class_name = $1`, className), f)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// List retrieves all fee structures ordered by class name.
func (r *FeeStructureRepository) List(ctx context.Context) ([]model.FeeStructure, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+feeStructureColumns+` FROM fee_structures ORDER BY class_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var structures []model.FeeStructure
	for rows.Next() {
		var f model.FeeStructure
		if err := scanFeeStructure(rows, &f); err != nil {
			return nil, err
		}
		structures = append(structures, f)
	}
	return structures, rows.Err()
}

// Delete removes a class's fee structure. Returns pgx.ErrNoRows if absent.
func (r *FeeStructureRepository) Delete(ctx context.Context, className string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM fee_structures WHERE class_name = $1`, className)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/model"
)

// SectionExtraFeeRepository handles section extra fee data access.
type SectionExtraFeeRepository struct {
	pool *pgxpool.Pool
}

// NewSectionExtraFeeRepository creates a new SectionExtraFeeRepository.
func NewSectionExtraFeeRepository(pool *pgxpool.Pool) *SectionExtraFeeRepository {
	return &SectionExtraFeeRepository{pool: pool}
}

const sectionFeeColumns = `id, class_name, section, service_name, amount, q1, q2, q3, q4, is_active, created_by, created_at, updated_at`

func scanSectionFee(row pgxRow, s *model.SectionExtraFee) error {
	return row.Scan(&s.ID, &s.ClassName, &s.Section, &s.ServiceName, &s.Amount,
		&s.Q1, &s.Q2, &s.Q3, &s.Q4, &s.IsActive, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a new section extra fee. The (class_name, section,
// service_name) unique constraint rejects duplicate services for a section.
func (r *SectionExtraFeeRepository) Create(ctx context.Context, s *model.SectionExtraFee) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO section_extra_fees (class_name, section, service_name, amount, q1, q2, q3, q4, is_active, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		s.ClassName, s.Section, s.ServiceName, s.Amount, s.Q1, s.Q2, s.Q3, s.Q4, s.IsActive, s.CreatedBy,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update overwrites a section extra fee by id.
func (r *SectionExtraFeeRepository) Update(ctx context.Context, s *model.SectionExtraFee) error {
	return r.pool.QueryRow(ctx,
		`UPDATE section_extra_fees
		 SET class_name = $2, section = $3, service_name = $4, amount = $5,
		     q1 = $6, q2 = $7, q3 = $8, q4 = $9, is_active = $10, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_by, created_at, updated_at`,
		s.ID, s.ClassName, s.Section, s.ServiceName, s.Amount, s.Q1, s.Q2, s.Q3, s.Q4, s.IsActive,
	).Scan(&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a section extra fee.
func (r *SectionExtraFeeRepository) GetByID(ctx context.Context, id int) (*model.SectionExtraFee, error) {
	s := &model.SectionExtraFee{}
	err := scanSectionFee(r.pool.QueryRow(ctx,
		`SELECT `+sectionFeeColumns+` FROM section_extra_fees WHERE id = $1`, id), s)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListActiveByClass retrieves all active extra fees for a class, any section.
func (r *SectionExtraFeeRepository) ListActiveByClass(ctx context.Context, className string) ([]model.SectionExtraFee, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sectionFeeColumns+` FROM section_extra_fees
		 WHERE class_name = $1 AND is_active
		 ORDER BY section, service_name`, className,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSectionFees(rows)
}

// List retrieves all section extra fees, optionally narrowed by class/section.
func (r *SectionExtraFeeRepository) List(ctx context.Context, className, section string) ([]model.SectionExtraFee, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sectionFeeColumns+` FROM section_extra_fees
		 WHERE ($1 = '' OR class_name = $1) AND ($2 = '' OR section = $2)
		 ORDER BY class_name, section, service_name`, className, section,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSectionFees(rows)
}

func collectSectionFees(rows pgx.Rows) ([]model.SectionExtraFee, error) {
	var out []model.SectionExtraFee
	for rows.Next() {
		var s model.SectionExtraFee
		if err := scanSectionFee(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a section extra fee by id. Returns pgx.ErrNoRows if absent.
func (r *SectionExtraFeeRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM section_extra_fees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

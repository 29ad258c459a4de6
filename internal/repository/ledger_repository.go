package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/fees"
)

// LedgerRepository reads the payment ledger. Payments are written by the
// external payment flow; the core only reduces them into per-student,
// per-quarter paid totals for the class-wise aggregate.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// Ledgers returns one row per student with their paid sum for each quarter.
// Empty className/section match everything. Students with no payments still
// appear (LEFT JOIN) with zero paid amounts — they are exactly the pending or
// overdue ones.
func (r *LedgerRepository) Ledgers(ctx context.Context, className, section string) ([]fees.StudentLedger, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.name, s.class_name, s.section,
		        COALESCE(SUM(p.amount) FILTER (WHERE p.quarter = 1), 0),
		        COALESCE(SUM(p.amount) FILTER (WHERE p.quarter = 2), 0),
		        COALESCE(SUM(p.amount) FILTER (WHERE p.quarter = 3), 0),
		        COALESCE(SUM(p.amount) FILTER (WHERE p.quarter = 4), 0)
		 FROM students s
		 LEFT JOIN fee_payments p ON p.student_id = s.id
		 WHERE ($1 = '' OR s.class_name = $1) AND ($2 = '' OR s.section = $2)
		 GROUP BY s.id, s.name, s.class_name, s.section
		 ORDER BY s.class_name, s.section, s.name`, className, section,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ledgers []fees.StudentLedger
	for rows.Next() {
		var l fees.StudentLedger
		if err := rows.Scan(&l.StudentID, &l.Name, &l.ClassName, &l.Section,
			&l.Paid[0], &l.Paid[1], &l.Paid[2], &l.Paid[3]); err != nil {
			return nil, err
		}
		ledgers = append(ledgers, l)
	}
	return ledgers, rows.Err()
}

package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/fees"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/model"
)

// FeeStructureStore is the fee structure persistence surface.
type FeeStructureStore interface {
	Create(ctx context.Context, f *model.FeeStructure) error
	Update(ctx context.Context, f *model.FeeStructure) error
	GetByClassName(ctx context.Context, className string) (*model.FeeStructure, error)
	List(ctx context.Context) ([]model.FeeStructure, error)
	Delete(ctx context.Context, className string) error
}

// SectionFeeStore is the section extra fee persistence surface.
type SectionFeeStore interface {
	Create(ctx context.Context, s *model.SectionExtraFee) error
	Update(ctx context.Context, s *model.SectionExtraFee) error
	GetByID(ctx context.Context, id int) (*model.SectionExtraFee, error)
	ListActiveByClass(ctx context.Context, className string) ([]model.SectionExtraFee, error)
	List(ctx context.Context, className, section string) ([]model.SectionExtraFee, error)
	Delete(ctx context.Context, id int) error
}

// LedgerStore reads per-student paid totals from the payment ledger.
type LedgerStore interface {
	Ledgers(ctx context.Context, className, section string) ([]fees.StudentLedger, error)
}

// FeeService owns fee structure authoring, section extra fees, the quarter
// split utility, and the class-wise payment aggregate.
type FeeService struct {
	structures FeeStructureStore
	sections   SectionFeeStore
	ledgers    LedgerStore
	dueDates   [4]time.Time
	now        func() time.Time
	log        zerolog.Logger
}

// NewFeeService creates a new FeeService. dueDates are the academic year's
// quarter due dates from configuration; a zero date means that quarter never
// turns overdue.
func NewFeeService(
	structures FeeStructureStore,
	sections SectionFeeStore,
	ledgers LedgerStore,
	dueDates [4]time.Time,
	log zerolog.Logger,
) *FeeService {
	return &FeeService{
		structures: structures,
		sections:   sections,
		ledgers:    ledgers,
		dueDates:   dueDates,
		now:        time.Now,
		log:        log.With().Str("component", "fee_service").Logger(),
	}
}

// buildStructure derives the total from the components and resolves the
// quarterly split: explicit quarters must reconcile with the total to within
// one paisa, otherwise an equal distribution is computed.
func buildStructure(req *model.FeeStructureRequest) (*model.FeeStructure, error) {
	components := fees.ComponentSet{
		Tuition:  req.Tuition,
		Annual:   req.Annual,
		Services: req.Services,
	}
	total := components.TotalFee()

	var q fees.Quarters
	if req.Quarters != nil {
		q = req.Quarters.Quarters()
		if !fees.WithinSmallestUnit(q.Sum(), total) {
			return nil, ErrInconsistentQuarters
		}
	} else {
		var err error
		q, err = fees.Distribute(total, fees.EqualPolicy())
		if err != nil {
			return nil, err
		}
	}

	services := req.Services
	if services == nil {
		services = []fees.ServiceComponent{}
	}

	return &model.FeeStructure{
		ClassName: req.ClassName,
		Tuition:   req.Tuition,
		Annual:    req.Annual,
		TotalFee:  total,
		Q1:        q[0],
		Q2:        q[1],
		Q3:        q[2],
		Q4:        q[3],
		Services:  services,
		Notes:     req.Notes,
	}, nil
}

// CreateStructure creates a class's fee structure. Each class holds at most
// one structure.
func (s *FeeService) CreateStructure(ctx context.Context, req *model.FeeStructureRequest) (*model.FeeStructure, error) {
	f, err := buildStructure(req)
	if err != nil {
		return nil, err
	}
	if err := s.structures.Create(ctx, f); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateClass
		}
		return nil, err
	}
	s.log.Info().Str("class", f.ClassName).Str("total_fee", f.TotalFee.String()).Msg("Fee structure created")
	return f, nil
}

// UpdateStructure replaces a class's fee structure. Last writer wins.
func (s *FeeService) UpdateStructure(ctx context.Context, req *model.FeeStructureRequest) (*model.FeeStructure, error) {
	f, err := buildStructure(req)
	if err != nil {
		return nil, err
	}
	if err := s.structures.Update(ctx, f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStructureNotFound
		}
		return nil, err
	}
	s.log.Info().Str("class", f.ClassName).Msg("Fee structure updated")
	return f, nil
}

// GetStructure retrieves a class's fee structure.
func (s *FeeService) GetStructure(ctx context.Context, className string) (*model.FeeStructure, error) {
	f, err := s.structures.GetByClassName(ctx, className)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStructureNotFound
		}
		return nil, err
	}
	return f, nil
}

// ListStructures returns all fee structures ordered by class name.
func (s *FeeService) ListStructures(ctx context.Context) ([]model.FeeStructure, error) {
	structures, err := s.structures.List(ctx)
	if err != nil {
		return nil, err
	}
	if structures == nil {
		structures = []model.FeeStructure{}
	}
	return structures, nil
}

// DeleteStructure removes a class's fee structure.
func (s *FeeService) DeleteStructure(ctx context.Context, className string) error {
	if err := s.structures.Delete(ctx, className); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrStructureNotFound
		}
		return err
	}
	s.log.Info().Str("class", className).Msg("Fee structure deleted")
	return nil
}

// CalculateQuarters splits a total into four installments without persisting
// anything. The four parts always sum exactly to the input.
func (s *FeeService) CalculateQuarters(req *model.CalculateQuartersRequest) (*model.CalculateQuartersResponse, error) {
	policy := fees.EqualPolicy()
	if req.DistributionType == string(fees.DistributionCustom) {
		if req.CustomDistribution == nil {
			return nil, fees.ErrInvalidDistribution
		}
		policy = fees.CustomPolicy(
			req.CustomDistribution.Q1,
			req.CustomDistribution.Q2,
			req.CustomDistribution.Q3,
			req.CustomDistribution.Q4,
		)
	}

	q, err := fees.Distribute(req.TotalAmount, policy)
	if err != nil {
		return nil, err
	}
	return &model.CalculateQuartersResponse{
		Q1:    q[0],
		Q2:    q[1],
		Q3:    q[2],
		Q4:    q[3],
		Total: q.Sum(),
	}, nil
}

// buildSectionFee resolves a section extra fee's quarterly split the same way
// structures do: explicit quarters must reconcile with the amount, otherwise
// split equally.
func buildSectionFee(req *model.SectionExtraFeeRequest, createdBy int) (*model.SectionExtraFee, error) {
	var q fees.Quarters
	if req.Quarters != nil {
		q = req.Quarters.Quarters()
		if !fees.WithinSmallestUnit(q.Sum(), req.Amount) {
			return nil, ErrInconsistentQuarters
		}
	} else {
		var err error
		q, err = fees.Distribute(req.Amount, fees.EqualPolicy())
		if err != nil {
			return nil, err
		}
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return &model.SectionExtraFee{
		ClassName:   req.ClassName,
		Section:     req.Section,
		ServiceName: req.ServiceName,
		Amount:      req.Amount,
		Q1:          q[0],
		Q2:          q[1],
		Q3:          q[2],
		Q4:          q[3],
		IsActive:    active,
		CreatedBy:   createdBy,
	}, nil
}

// CreateSectionFee adds an extra fee for one section of a class. A section
// carries at most one fee per service name.
func (s *FeeService) CreateSectionFee(ctx context.Context, req *model.SectionExtraFeeRequest, createdBy int) (*model.SectionExtraFee, error) {
	fee, err := buildSectionFee(req, createdBy)
	if err != nil {
		return nil, err
	}
	if err := s.sections.Create(ctx, fee); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSectionFee
		}
		return nil, err
	}
	s.log.Info().Str("class", fee.ClassName).Str("section", fee.Section).Str("service", fee.ServiceName).Msg("Section extra fee created")
	return fee, nil
}

// UpdateSectionFee replaces a section extra fee by id.
func (s *FeeService) UpdateSectionFee(ctx context.Context, id int, req *model.SectionExtraFeeRequest) (*model.SectionExtraFee, error) {
	fee, err := buildSectionFee(req, 0)
	if err != nil {
		return nil, err
	}
	fee.ID = id
	if err := s.sections.Update(ctx, fee); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSectionFeeNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSectionFee
		}
		return nil, err
	}
	return fee, nil
}

// GetSectionFee retrieves a section extra fee by id.
func (s *FeeService) GetSectionFee(ctx context.Context, id int) (*model.SectionExtraFee, error) {
	fee, err := s.sections.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSectionFeeNotFound
		}
		return nil, err
	}
	return fee, nil
}

// ListSectionFees returns section extra fees, optionally narrowed by class
// and section.
func (s *FeeService) ListSectionFees(ctx context.Context, className, section string) ([]model.SectionExtraFee, error) {
	out, err := s.sections.List(ctx, className, section)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.SectionExtraFee{}
	}
	return out, nil
}

// DeleteSectionFee removes a section extra fee by id.
func (s *FeeService) DeleteSectionFee(ctx context.Context, id int) error {
	if err := s.sections.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSectionFeeNotFound
		}
		return err
	}
	return nil
}

// sectionKey identifies one (class, section) group in the aggregate.
type sectionKey struct {
	class   string
	section string
}

// ClassWisePayments reduces the payment ledger into per-section aggregates.
// Each student's owed amount is the class structure's quarters plus every
// active extra fee for their section. The aggregate is recomputed on each
// call; nothing derived is stored.
func (s *FeeService) ClassWisePayments(ctx context.Context, filter model.ClassWisePaymentsFilter) ([]fees.SectionAggregate, error) {
	ledgers, err := s.ledgers.Ledgers(ctx, filter.ClassName, filter.Section)
	if err != nil {
		return nil, err
	}

	groups := make(map[sectionKey][]fees.StudentLedger)
	for _, l := range ledgers {
		k := sectionKey{class: l.ClassName, section: l.Section}
		groups[k] = append(groups[k], l)
	}

	structureQuarters := make(map[string]fees.Quarters)
	extrasBySection := make(map[sectionKey]fees.Quarters)
	for k := range groups {
		if _, ok := structureQuarters[k.class]; ok {
			continue
		}

		var owed fees.Quarters
		structure, err := s.structures.GetByClassName(ctx, k.class)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return nil, err
			}
			// No structure yet: the class owes nothing beyond section extras.
		} else {
			owed = structure.Quarters()
		}
		structureQuarters[k.class] = owed

		extras, err := s.sections.ListActiveByClass(ctx, k.class)
		if err != nil {
			return nil, err
		}
		for _, e := range extras {
			ek := sectionKey{class: e.ClassName, section: e.Section}
			extrasBySection[ek] = extrasBySection[ek].Add(e.Quarters())
		}
	}

	now := s.now()
	aggregates := make([]fees.SectionAggregate, 0, len(groups))
	for k, group := range groups {
		owed := structureQuarters[k.class].Add(extrasBySection[k])
		agg := fees.AggregateSection(k.class, k.section, owed, s.dueDates, group, now)
		aggregates = append(aggregates, applyFilter(agg, filter))
	}

	sort.Slice(aggregates, func(i, j int) bool {
		if aggregates[i].ClassName != aggregates[j].ClassName {
			return aggregates[i].ClassName < aggregates[j].ClassName
		}
		return aggregates[i].Section < aggregates[j].Section
	})
	return aggregates, nil
}

// applyFilter narrows an aggregate's quarter breakdown per the request. The
// section-level totals always reflect all four quarters; filtering only trims
// the breakdown list.
func applyFilter(agg fees.SectionAggregate, filter model.ClassWisePaymentsFilter) fees.SectionAggregate {
	if filter.Quarter == 0 && filter.Status == "" {
		return agg
	}

	kept := make([]fees.QuarterBreakdown, 0, len(agg.Quarters))
	for _, qb := range agg.Quarters {
		if filter.Quarter != 0 && qb.Quarter != filter.Quarter {
			continue
		}
		if filter.Status != "" && !quarterHasStatus(qb, filter.Status) {
			continue
		}
		kept = append(kept, qb)
	}
	agg.Quarters = kept
	return agg
}

func quarterHasStatus(qb fees.QuarterBreakdown, status fees.PaymentStatus) bool {
	switch status {
	case fees.StatusPaid:
		return qb.PaidStudents > 0
	case fees.StatusPending:
		return qb.PendingStudents > 0
	case fees.StatusOverdue:
		return qb.OverdueStudents > 0
	}
	return true
}

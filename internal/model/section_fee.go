package model

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/fees"
)

// SectionExtraFee is an additional, section-scoped fee layered on top of the
// class-level structure. Additive only — it never replaces the class fee.
type SectionExtraFee struct {
	ID          int             `json:"id"`
	ClassName   string          `json:"class_name"`
	Section     string          `json:"section"`
	ServiceName string          `json:"service_name"`
	Amount      decimal.Decimal `json:"amount"`
	Q1          decimal.Decimal `json:"q1"`
	Q2          decimal.Decimal `json:"q2"`
	Q3          decimal.Decimal `json:"q3"`
	Q4          decimal.Decimal `json:"q4"`
	IsActive    bool            `json:"is_active"`
	CreatedBy   int             `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Quarters returns the extra fee's installments as a fees.Quarters.
func (s *SectionExtraFee) Quarters() fees.Quarters {
	return fees.Quarters{s.Q1, s.Q2, s.Q3, s.Q4}
}

// SectionExtraFeeRequest is the payload for creating or updating a section
// extra fee. Quarters default to an equal split of Amount when omitted.
type SectionExtraFeeRequest struct {
	ClassName   string          `json:"class_name" binding:"required,min=1,max=100"`
	Section     string          `json:"section" binding:"required,min=1,max=20"`
	ServiceName string          `json:"service_name" binding:"required,min=1,max=100"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Quarters    *QuartersInput  `json:"quarters" binding:"omitempty"`
	IsActive    *bool           `json:"is_active" binding:"omitempty"`
}

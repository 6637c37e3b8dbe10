package payroll

import (
	"context"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/attendance"
)

// MappingRepository - interface for attendance_payroll_mappings table.
type MappingRepository interface {
	Create(ctx context.Context, mapping DayTypeMapping) (DayTypeMapping, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]DayTypeMapping, error)
	GetByStatus(ctx context.Context, companyID string, status attendance.DayStatus) (DayTypeMapping, error)
	Update(ctx context.Context, mapping DayTypeMapping) error
}

// SummaryRepository - interface for payroll_summaries table.
type SummaryRepository interface {
	// Upsert replaces the summary for (employee, period): regeneration is a
	// full recompute, not incremental.
	Upsert(ctx context.Context, summary Summary) (Summary, error)
	GetByCompanyForPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]Summary, error)
	DeleteForPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) error
}

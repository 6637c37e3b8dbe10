package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/kelolahr/hrms-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/require"
)

type stubClosureRepo struct {
	leave.ClosureRepository
	closed bool
}

func (s stubClosureRepo) RangeOverlapsClosure(_ context.Context, _ string, _, _ time.Time) (bool, error) {
	return s.closed, nil
}

func TestGenerateSummaries_ClosedPeriodRejected(t *testing.T) {
	svc := &PayrollServiceImpl{closures: stubClosureRepo{closed: true}}

	_, err := svc.GenerateSummaries(context.Background(), payroll.GenerateSummaryRequest{
		CompanyID:   "co-1",
		PeriodStart: "2026-01-01",
		PeriodEnd:   "2026-01-31",
	})
	require.ErrorIs(t, err, leave.ErrPeriodClosed)
}

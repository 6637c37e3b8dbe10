package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/require"
)

type stubClosureRepo struct {
	leave.ClosureRepository
	closed bool
}

func (s stubClosureRepo) IsClosed(_ context.Context, _ string, _ time.Time) (bool, error) {
	return s.closed, nil
}

// Days inside a closed period are immutable: punches, classification and
// regularisation submissions are all rejected before touching storage.

func TestClassifyDay_ClosedPeriodRejected(t *testing.T) {
	svc := &AttendanceServiceImpl{closures: stubClosureRepo{closed: true}}

	_, err := svc.ClassifyDay(context.Background(), "emp-1", "co-1",
		time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, leave.ErrPeriodClosed)
}

func TestRecordPunch_ClosedPeriodRejected(t *testing.T) {
	svc := &AttendanceServiceImpl{closures: stubClosureRepo{closed: true}}

	_, err := svc.RecordPunch(context.Background(), attendance.RecordPunchRequest{
		EmployeeID: "emp-1",
		CompanyID:  "co-1",
		PunchedAt:  "2026-01-15T09:00:00Z",
		Type:       "in",
		Source:     "web",
	})
	require.ErrorIs(t, err, leave.ErrPeriodClosed)
}

func TestCreateRegularisation_ClosedPeriodRejected(t *testing.T) {
	svc := &AttendanceServiceImpl{closures: stubClosureRepo{closed: true}}

	_, err := svc.CreateRegularisation(context.Background(), attendance.CreateRegularisationRequest{
		EmployeeID:  "emp-1",
		CompanyID:   "co-1",
		Date:        "2026-01-15",
		ProposedIn:  "2026-01-15T09:00:00Z",
		ProposedOut: "2026-01-15T18:00:00Z",
		Reason:      "missed punch out",
	})
	require.ErrorIs(t, err, leave.ErrPeriodClosed)
}

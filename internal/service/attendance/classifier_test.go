package attendance

import (
	"testing"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

// 09:00-18:00, 15 min grace, half day under 4h, full day 8h, Sat+Sun off.
var testSchedule = attendance.WorkSchedule{
	ID:                   "sch-1",
	StartMinutes:         9 * 60,
	EndMinutes:           18 * 60,
	GraceMinutes:         15,
	HalfDayThresholdMins: 240,
	FullDayMinutes:       480,
	WeeklyOffDays:        []time.Weekday{time.Saturday, time.Sunday},
}

func punch(t time.Time, kind attendance.PunchType) attendance.Punch {
	return attendance.Punch{EmployeeID: "emp-1", PunchedAt: t, Type: kind}
}

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, time.UTC)
}

func TestClassify_Present(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // Monday
	got := Classify(DayInput{
		EmployeeID: "emp-1",
		Date:       day,
		Schedule:   testSchedule,
		Punches: []attendance.Punch{
			punch(at(day, 9, 0), attendance.PunchIn),
			punch(at(day, 18, 0), attendance.PunchOut),
		},
	})

	assert.Equal(t, attendance.StatusPresent, got.Status)
	assert.False(t, got.IsLate)
	assert.Equal(t, 540, got.WorkedMinutes)
	assert.Equal(t, 60, got.OvertimeMinutes)
}

func TestClassify_LateWithinGraceIsNotLate(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got := Classify(DayInput{
		Date:     day,
		Schedule: testSchedule,
		Punches: []attendance.Punch{
			punch(at(day, 9, 14), attendance.PunchIn),
			punch(at(day, 18, 0), attendance.PunchOut),
		},
	})
	assert.False(t, got.IsLate)

	got = Classify(DayInput{
		Date:     day,
		Schedule: testSchedule,
		Punches: []attendance.Punch{
			punch(at(day, 9, 30), attendance.PunchIn),
			punch(at(day, 18, 0), attendance.PunchOut),
		},
	})
	assert.True(t, got.IsLate)
	assert.Equal(t, 30, got.LateMinutes)
}

func TestClassify_HalfDayThreshold(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got := Classify(DayInput{
		Date:     day,
		Schedule: testSchedule,
		Punches: []attendance.Punch{
			punch(at(day, 9, 0), attendance.PunchIn),
			punch(at(day, 12, 0), attendance.PunchOut), // 180 min, under the 240 threshold
		},
	})
	assert.Equal(t, attendance.StatusHalfDay, got.Status)

	got = Classify(DayInput{
		Date:     day,
		Schedule: testSchedule,
		Punches: []attendance.Punch{
			punch(at(day, 9, 0), attendance.PunchIn),
			punch(at(day, 13, 0), attendance.PunchOut), // exactly 240 min
		},
	})
	assert.Equal(t, attendance.StatusPresent, got.Status)
}

func TestClassify_DecisionOrder(t *testing.T) {
	day := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC) // Saturday

	// Approved leave wins over everything.
	got := Classify(DayInput{
		Date:            day,
		Schedule:        testSchedule,
		OnApprovedLeave: true,
		IsHoliday:       true,
	})
	assert.Equal(t, attendance.StatusLeave, got.Status)

	// Holiday wins over weekly off.
	got = Classify(DayInput{Date: day, Schedule: testSchedule, IsHoliday: true})
	assert.Equal(t, attendance.StatusHoliday, got.Status)

	// Weekly off without punches.
	got = Classify(DayInput{Date: day, Schedule: testSchedule})
	assert.Equal(t, attendance.StatusWeeklyOff, got.Status)

	// Weekly off with punches is a worked day.
	got = Classify(DayInput{
		Date:     day,
		Schedule: testSchedule,
		Punches: []attendance.Punch{
			punch(at(day, 9, 0), attendance.PunchIn),
			punch(at(day, 18, 0), attendance.PunchOut),
		},
	})
	assert.Equal(t, attendance.StatusPresent, got.Status)
}

func TestClassify_AbsentWithoutPunches(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got := Classify(DayInput{Date: day, Schedule: testSchedule})
	assert.Equal(t, attendance.StatusAbsent, got.Status)
}

func TestClassify_OverrideOnWorkedDay(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	wfh := attendance.OverrideWorkFromHome
	got := Classify(DayInput{
		Date:     day,
		Schedule: testSchedule,
		Override: &wfh,
		Punches: []attendance.Punch{
			punch(at(day, 9, 0), attendance.PunchIn),
			punch(at(day, 18, 0), attendance.PunchOut),
		},
	})
	assert.Equal(t, attendance.StatusWorkFromHome, got.Status)

	// The override does not rescue a half day.
	got = Classify(DayInput{
		Date:     day,
		Schedule: testSchedule,
		Override: &wfh,
		Punches: []attendance.Punch{
			punch(at(day, 9, 0), attendance.PunchIn),
			punch(at(day, 11, 0), attendance.PunchOut),
		},
	})
	assert.Equal(t, attendance.StatusHalfDay, got.Status)
}

func TestClassify_RegularisationReplacesPunches(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	reg := attendance.RegularisationRequest{
		ProposedIn:  at(day, 9, 0),
		ProposedOut: at(day, 18, 0),
	}
	got := Classify(DayInput{
		Date:           day,
		Schedule:       testSchedule,
		Regularisation: &reg,
		Punches: []attendance.Punch{
			punch(at(day, 13, 0), attendance.PunchIn), // forgot the morning punch
		},
	})

	assert.Equal(t, attendance.StatusPresent, got.Status)
	assert.True(t, got.IsRegularised)
	assert.Equal(t, 540, got.WorkedMinutes)
	assert.False(t, got.IsLate)
}

func TestClassify_MultiplePunchesUseFirstInLastOut(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got := Classify(DayInput{
		Date:     day,
		Schedule: testSchedule,
		Punches: []attendance.Punch{
			punch(at(day, 13, 0), attendance.PunchIn),
			punch(at(day, 9, 0), attendance.PunchIn),
			punch(at(day, 12, 0), attendance.PunchOut),
			punch(at(day, 18, 0), attendance.PunchOut),
		},
	})

	assert.Equal(t, at(day, 9, 0), *got.FirstIn)
	assert.Equal(t, at(day, 18, 0), *got.LastOut)
	assert.Equal(t, 540, got.WorkedMinutes)
}

func TestClassify_InWithoutOutHasZeroWorkedMinutes(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got := Classify(DayInput{
		Date:     day,
		Schedule: testSchedule,
		Punches:  []attendance.Punch{punch(at(day, 9, 0), attendance.PunchIn)},
	})

	assert.Equal(t, attendance.StatusHalfDay, got.Status)
	assert.Equal(t, 0, got.WorkedMinutes)
	assert.Nil(t, got.LastOut)
}

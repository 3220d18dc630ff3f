package scheduling

import (
	"errors"
	"testing"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInstance() *domain.ShiftInstance {
	return &domain.ShiftInstance{
		ID:             1,
		LocationID:     10,
		Date:           date(2024, 6, 3),
		StartTime:      "09:00:00",
		EndTime:        "13:00:00",
		Position:       "收银",
		RequiredNumber: 2,
	}
}

func TestValidateAssignmentAccepts(t *testing.T) {
	err := ValidateAssignment(testInstance(), NewAvailabilityGuard(nil), nil, 0)

	assert.NoError(t, err)
}

func TestValidateAssignmentRejectsUnavailableEmployee(t *testing.T) {
	guard := NewAvailabilityGuard([]*domain.EmployeeAvailability{
		{ID: 1, EmployeeID: 1, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 5), Kind: domain.AvailabilityKindUnavailable},
	})

	err := ValidateAssignment(testInstance(), guard, nil, 0)

	var rejection *AssignmentRejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, ReasonUnavailable, rejection.Reason)
}

func TestValidateAssignmentRejectsOverlappingShift(t *testing.T) {
	existing := []*domain.ShiftInstance{
		{ID: 42, LocationID: 10, Date: date(2024, 6, 3), StartTime: "12:00:00", EndTime: "16:00:00"},
	}

	err := ValidateAssignment(testInstance(), NewAvailabilityGuard(nil), existing, 0)

	var rejection *AssignmentRejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, ReasonOverlappingAssignment, rejection.Reason)
	assert.Equal(t, int64(42), rejection.ConflictingInstanceID)
}

func TestValidateAssignmentRejectsBoundarySharingShift(t *testing.T) {
	// 09:00-13:00 和 13:00-17:00 仅共享边界时刻，按闭区间算重叠
	existing := []*domain.ShiftInstance{
		{ID: 43, LocationID: 10, Date: date(2024, 6, 3), StartTime: "13:00:00", EndTime: "17:00:00"},
	}

	err := ValidateAssignment(testInstance(), NewAvailabilityGuard(nil), existing, 0)

	var rejection *AssignmentRejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, ReasonOverlappingAssignment, rejection.Reason)
}

func TestValidateAssignmentAllowsShiftOnOtherDate(t *testing.T) {
	// 不同日期的班次即使时间段相同也不算冲突
	existing := []*domain.ShiftInstance{
		{ID: 44, LocationID: 10, Date: date(2024, 6, 4), StartTime: "09:00:00", EndTime: "13:00:00"},
	}

	err := ValidateAssignment(testInstance(), NewAvailabilityGuard(nil), existing, 0)

	assert.NoError(t, err)
}

func TestValidateAssignmentRejectsFullShift(t *testing.T) {
	// 已确认人数等于所需人数时拒绝
	err := ValidateAssignment(testInstance(), NewAvailabilityGuard(nil), nil, 2)

	var rejection *AssignmentRejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, ReasonShiftFull, rejection.Reason)
}

func TestValidateAssignmentAcceptsLastOpenSlot(t *testing.T) {
	// 已确认人数为所需人数减一时接受
	err := ValidateAssignment(testInstance(), NewAvailabilityGuard(nil), nil, 1)

	assert.NoError(t, err)
}

func TestValidateAssignmentChecksAvailabilityFirst(t *testing.T) {
	guard := NewAvailabilityGuard([]*domain.EmployeeAvailability{
		{ID: 1, EmployeeID: 1, StartDate: date(2024, 6, 3), EndDate: date(2024, 6, 3), Kind: domain.AvailabilityKindUnavailable},
	})
	existing := []*domain.ShiftInstance{
		{ID: 42, LocationID: 10, Date: date(2024, 6, 3), StartTime: "12:00:00", EndTime: "16:00:00"},
	}

	// 检查按顺序短路，可用性在时间冲突之前
	err := ValidateAssignment(testInstance(), guard, existing, 2)

	var rejection *AssignmentRejectionError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, ReasonUnavailable, rejection.Reason)
}

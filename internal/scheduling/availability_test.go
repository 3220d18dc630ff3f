package scheduling

import (
	"errors"
	"testing"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckNoOverlapRejectsOverlappingRange(t *testing.T) {
	guard := NewAvailabilityGuard([]*domain.EmployeeAvailability{
		{ID: 1, EmployeeID: 1, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 5), Kind: domain.AvailabilityKindAvailable},
	})

	err := guard.CheckNoOverlap(date(2024, 6, 3), date(2024, 6, 8), 0)

	var conflict *OverlapConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []int64{1}, conflict.ConflictingIDs)
}

func TestCheckNoOverlapCollectsAllConflicts(t *testing.T) {
	guard := NewAvailabilityGuard([]*domain.EmployeeAvailability{
		{ID: 3, EmployeeID: 1, StartDate: date(2024, 6, 10), EndDate: date(2024, 6, 15), Kind: domain.AvailabilityKindUnavailable},
		{ID: 1, EmployeeID: 1, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 5), Kind: domain.AvailabilityKindAvailable},
		{ID: 2, EmployeeID: 1, StartDate: date(2024, 6, 20), EndDate: date(2024, 6, 25), Kind: domain.AvailabilityKindAvailable},
	})

	// 和前两条记录都冲突，必须一次性返回全部冲突 id（升序）
	err := guard.CheckNoOverlap(date(2024, 6, 4), date(2024, 6, 12), 0)

	var conflict *OverlapConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []int64{1, 3}, conflict.ConflictingIDs)
}

func TestCheckNoOverlapAllowsAdjacentRanges(t *testing.T) {
	guard := NewAvailabilityGuard([]*domain.EmployeeAvailability{
		{ID: 1, EmployeeID: 1, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 5), Kind: domain.AvailabilityKindAvailable},
	})

	// [1,5] 和 [6,10] 不共享任何一天，不算重叠
	assert.NoError(t, guard.CheckNoOverlap(date(2024, 6, 6), date(2024, 6, 10), 0))
}

func TestCheckNoOverlapExcludesOwnRecordOnUpdate(t *testing.T) {
	guard := NewAvailabilityGuard([]*domain.EmployeeAvailability{
		{ID: 1, EmployeeID: 1, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 5), Kind: domain.AvailabilityKindAvailable},
	})

	// 更新记录 1 自身的区间时不和自己冲突
	assert.NoError(t, guard.CheckNoOverlap(date(2024, 6, 2), date(2024, 6, 7), 1))
}

func TestIsAvailableWithNoRecords(t *testing.T) {
	guard := NewAvailabilityGuard(nil)

	// 没有登记不等于有限制
	assert.True(t, guard.IsAvailable(date(2024, 6, 3)))
}

func TestIsAvailableUnavailableRecordCoversDate(t *testing.T) {
	guard := NewAvailabilityGuard([]*domain.EmployeeAvailability{
		{ID: 1, EmployeeID: 1, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 5), Kind: domain.AvailabilityKindUnavailable},
	})

	assert.False(t, guard.IsAvailable(date(2024, 6, 3)))
	assert.True(t, guard.IsAvailable(date(2024, 6, 6)))
}

func TestIsAvailableRestrictedByAvailableRecords(t *testing.T) {
	guard := NewAvailabilityGuard([]*domain.EmployeeAvailability{
		{ID: 1, EmployeeID: 1, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 5), Kind: domain.AvailabilityKindAvailable},
	})

	// 登记过可用区间后，只有被覆盖的日期才算可用
	assert.True(t, guard.IsAvailable(date(2024, 6, 3)))
	assert.False(t, guard.IsAvailable(date(2024, 6, 10)))
}

func TestIsAvailableMixedKinds(t *testing.T) {
	guard := NewAvailabilityGuard([]*domain.EmployeeAvailability{
		{ID: 1, EmployeeID: 1, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 9), Kind: domain.AvailabilityKindAvailable},
		{ID: 2, EmployeeID: 1, StartDate: date(2024, 6, 10), EndDate: date(2024, 6, 12), Kind: domain.AvailabilityKindUnavailable},
	})

	assert.True(t, guard.IsAvailable(date(2024, 6, 3)))
	assert.False(t, guard.IsAvailable(date(2024, 6, 11)))
	// 既不在可用区间内也不在不可用区间内，但登记过可用区间，视为不可用
	assert.False(t, guard.IsAvailable(date(2024, 6, 20)))
}

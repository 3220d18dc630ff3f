package scheduling

import (
	"testing"
	"time"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestResolveLocationBlackout(t *testing.T) {
	blackoutDate := date(2024, 6, 3)
	resolver := NewCalendarExceptionResolver(
		[]*domain.BlackoutDay{
			{ID: 1, CompanyID: 1, LocationID: int64Ptr(10), Date: blackoutDate},
		},
		nil,
	)

	assert.True(t, resolver.Resolve(10, 1, blackoutDate).Closed)
	// 其它门店和其它日期不受影响
	assert.False(t, resolver.Resolve(11, 1, blackoutDate).Closed)
	assert.False(t, resolver.Resolve(10, 1, date(2024, 6, 4)).Closed)
}

func TestResolveCompanyBlackoutClosesAllLocations(t *testing.T) {
	blackoutDate := date(2024, 6, 3)
	resolver := NewCalendarExceptionResolver(
		[]*domain.BlackoutDay{
			{ID: 1, CompanyID: 1, AppliesToCompany: true, Date: blackoutDate},
		},
		nil,
	)

	// 没有门店级停业记录的门店也会被公司级停业日关闭
	assert.True(t, resolver.Resolve(10, 1, blackoutDate).Closed)
	assert.True(t, resolver.Resolve(11, 1, blackoutDate).Closed)
	// 其它公司的门店不受影响
	assert.False(t, resolver.Resolve(20, 2, blackoutDate).Closed)
}

func TestResolveSpecialOpeningHoursClosure(t *testing.T) {
	closedDate := date(2024, 6, 3)
	resolver := NewCalendarExceptionResolver(
		nil,
		[]*domain.SpecialOpeningHours{
			{ID: 1, LocationID: 10, Date: closedDate, IsClosed: true},
		},
	)

	assert.True(t, resolver.Resolve(10, 1, closedDate).Closed)
}

func TestResolveSpecialOpeningHoursOverride(t *testing.T) {
	overrideDate := date(2024, 6, 3)
	resolver := NewCalendarExceptionResolver(
		nil,
		[]*domain.SpecialOpeningHours{
			{ID: 1, LocationID: 10, Date: overrideDate, OpenTime: "10:00:00", CloseTime: "14:00:00"},
		},
	)

	resolution := resolver.Resolve(10, 1, overrideDate)
	assert.False(t, resolution.Closed)
	assert.True(t, resolution.HasOverride)
	assert.Equal(t, "10:00:00", resolution.OpenTime)
	assert.Equal(t, "14:00:00", resolution.CloseTime)
}

func TestResolveBlackoutWinsOverSpecialHours(t *testing.T) {
	day := date(2024, 6, 3)
	resolver := NewCalendarExceptionResolver(
		[]*domain.BlackoutDay{
			{ID: 1, CompanyID: 1, LocationID: int64Ptr(10), Date: day},
		},
		[]*domain.SpecialOpeningHours{
			{ID: 1, LocationID: 10, Date: day, OpenTime: "10:00:00", CloseTime: "14:00:00"},
		},
	)

	// 停业日比特殊营业时间更具体，优先生效
	resolution := resolver.Resolve(10, 1, day)
	assert.True(t, resolution.Closed)
	assert.False(t, resolution.HasOverride)
}

func TestResolveNoException(t *testing.T) {
	resolver := NewCalendarExceptionResolver(nil, nil)

	resolution := resolver.Resolve(10, 1, date(2024, 6, 3))
	assert.False(t, resolution.Closed)
	assert.False(t, resolution.HasOverride)
}

func TestResolveIgnoresTimeOfDay(t *testing.T) {
	resolver := NewCalendarExceptionResolver(
		[]*domain.BlackoutDay{
			{ID: 1, CompanyID: 1, LocationID: int64Ptr(10), Date: date(2024, 6, 3)},
		},
		nil,
	)

	// 日期比较只看年月日
	withTime := time.Date(2024, 6, 3, 15, 30, 0, 0, time.UTC)
	assert.True(t, resolver.Resolve(10, 1, withTime).Closed)
}

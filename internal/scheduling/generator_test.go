package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-06-03 是周一，2024-06-09 是周日
func weekdayTemplate(id int64, days ...int32) *domain.ShiftTemplate {
	return &domain.ShiftTemplate{
		ID:             id,
		LocationID:     10,
		Name:           "早班",
		Position:       "收银",
		ApplicableDays: days,
		StartTime:      "09:00:00",
		EndTime:        "17:00:00",
		RequiredNumber: 2,
		IsActive:       true,
	}
}

func emptyResolver() *CalendarExceptionResolver {
	return NewCalendarExceptionResolver(nil, nil)
}

func TestGenerateRejectsInvalidRange(t *testing.T) {
	_, err := GenerateShiftInstances(10, 1, date(2024, 6, 10), date(2024, 6, 3), nil, nil, emptyResolver())

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestGenerateExpandsTemplateOverRange(t *testing.T) {
	template := weekdayTemplate(1, 1, 3) // 周一和周三

	instances, err := GenerateShiftInstances(10, 1, date(2024, 6, 3), date(2024, 6, 9), []*domain.ShiftTemplate{template}, nil, emptyResolver())

	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.True(t, SameDate(instances[0].Date, date(2024, 6, 3)))
	assert.True(t, SameDate(instances[1].Date, date(2024, 6, 5)))
	assert.Equal(t, "09:00:00", instances[0].StartTime)
	assert.Equal(t, "17:00:00", instances[0].EndTime)
	assert.Equal(t, "收银", instances[0].Position)
	assert.Equal(t, int32(2), instances[0].RequiredNumber)
	require.NotNil(t, instances[0].TemplateID)
	assert.Equal(t, int64(1), *instances[0].TemplateID)
}

func TestGenerateSkipsInactiveTemplates(t *testing.T) {
	template := weekdayTemplate(1, 1)
	template.IsActive = false

	instances, err := GenerateShiftInstances(10, 1, date(2024, 6, 3), date(2024, 6, 9), []*domain.ShiftTemplate{template}, nil, emptyResolver())

	require.NoError(t, err)
	assert.Empty(t, instances)
}

func TestGenerateOrdersByDateThenTemplateID(t *testing.T) {
	// 模板故意乱序传入
	late := weekdayTemplate(5, 1, 2)
	early := weekdayTemplate(2, 1, 2)

	instances, err := GenerateShiftInstances(10, 1, date(2024, 6, 3), date(2024, 6, 4), []*domain.ShiftTemplate{late, early}, nil, emptyResolver())

	require.NoError(t, err)
	require.Len(t, instances, 4)
	assert.Equal(t, int64(2), *instances[0].TemplateID)
	assert.Equal(t, int64(5), *instances[1].TemplateID)
	assert.True(t, SameDate(instances[0].Date, date(2024, 6, 3)))
	assert.True(t, SameDate(instances[2].Date, date(2024, 6, 4)))
	assert.Equal(t, int64(2), *instances[2].TemplateID)
}

func TestGenerateSkipsBlackoutDay(t *testing.T) {
	template := weekdayTemplate(1, 1) // 仅周一
	resolver := NewCalendarExceptionResolver(
		[]*domain.BlackoutDay{
			{ID: 1, CompanyID: 1, LocationID: int64Ptr(10), Date: date(2024, 6, 3)},
		},
		nil,
	)

	instances, err := GenerateShiftInstances(10, 1, date(2024, 6, 3), date(2024, 6, 9), []*domain.ShiftTemplate{template}, nil, resolver)

	// 停业日直接跳过，不算冲突
	require.NoError(t, err)
	assert.Empty(t, instances)
}

func TestGenerateSkipsCompanyWideBlackout(t *testing.T) {
	template := weekdayTemplate(1, 1)
	resolver := NewCalendarExceptionResolver(
		[]*domain.BlackoutDay{
			{ID: 1, CompanyID: 1, AppliesToCompany: true, Date: date(2024, 6, 3)},
		},
		nil,
	)

	// 门店 10 自身没有停业记录，但公司级停业日依然生效
	instances, err := GenerateShiftInstances(10, 1, date(2024, 6, 3), date(2024, 6, 9), []*domain.ShiftTemplate{template}, nil, resolver)

	require.NoError(t, err)
	assert.Empty(t, instances)
}

func TestGenerateAppliesSpecialOpeningHours(t *testing.T) {
	template := weekdayTemplate(1, 1)
	resolver := NewCalendarExceptionResolver(
		nil,
		[]*domain.SpecialOpeningHours{
			{ID: 1, LocationID: 10, Date: date(2024, 6, 3), OpenTime: "10:00:00", CloseTime: "14:00:00"},
		},
	)

	instances, err := GenerateShiftInstances(10, 1, date(2024, 6, 3), date(2024, 6, 9), []*domain.ShiftTemplate{template}, nil, resolver)

	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Equal(t, "10:00:00", instances[0].StartTime)
	assert.Equal(t, "14:00:00", instances[0].EndTime)
}

func TestGenerateConflictAbortsWholeBatch(t *testing.T) {
	template := weekdayTemplate(1, 1, 3)

	first, err := GenerateShiftInstances(10, 1, date(2024, 6, 3), date(2024, 6, 9), []*domain.ShiftTemplate{template}, nil, emptyResolver())
	require.NoError(t, err)
	require.Len(t, first, 2)

	// 第一批已经持久化后再次生成同一区间，必须返回完全一致的冲突日期，绝不产生部分批次
	batch, err := GenerateShiftInstances(10, 1, date(2024, 6, 3), date(2024, 6, 9), []*domain.ShiftTemplate{template}, first, emptyResolver())

	assert.Nil(t, batch)
	var conflict *GenerationConflictError
	require.True(t, errors.As(err, &conflict))
	require.Len(t, conflict.Dates, 2)
	assert.True(t, SameDate(conflict.Dates[0], date(2024, 6, 3)))
	assert.True(t, SameDate(conflict.Dates[1], date(2024, 6, 5)))
}

func TestGeneratePartialConflictStillAbortsEverything(t *testing.T) {
	template := weekdayTemplate(1, 1, 3)
	templateID := int64(1)
	existing := []*domain.ShiftInstance{
		{ID: 100, LocationID: 10, Date: date(2024, 6, 5), StartTime: "09:00:00", EndTime: "17:00:00", TemplateID: &templateID},
	}

	// 周一没有冲突，周三有冲突，但整个批次都要被丢弃
	batch, err := GenerateShiftInstances(10, 1, date(2024, 6, 3), date(2024, 6, 9), []*domain.ShiftTemplate{template}, existing, emptyResolver())

	assert.Nil(t, batch)
	var conflict *GenerationConflictError
	require.True(t, errors.As(err, &conflict))
	require.Len(t, conflict.Dates, 1)
	assert.True(t, SameDate(conflict.Dates[0], date(2024, 6, 5)))
}

func TestGenerateIgnoresManuallyCreatedInstances(t *testing.T) {
	template := weekdayTemplate(1, 1)
	existing := []*domain.ShiftInstance{
		// 手动创建的班次没有来源模板，不参与冲突判定
		{ID: 100, LocationID: 10, Date: date(2024, 6, 3), StartTime: "09:00:00", EndTime: "17:00:00", TemplateID: nil},
	}

	instances, err := GenerateShiftInstances(10, 1, date(2024, 6, 3), date(2024, 6, 9), []*domain.ShiftTemplate{template}, existing, emptyResolver())

	require.NoError(t, err)
	assert.Len(t, instances, 1)
}

func TestGenerateIsDeterministic(t *testing.T) {
	templates := []*domain.ShiftTemplate{
		weekdayTemplate(2, 1, 2, 3),
		weekdayTemplate(7, 2, 4),
	}
	resolver := NewCalendarExceptionResolver(
		[]*domain.BlackoutDay{
			{ID: 1, CompanyID: 1, LocationID: int64Ptr(10), Date: date(2024, 6, 4)},
		},
		[]*domain.SpecialOpeningHours{
			{ID: 1, LocationID: 10, Date: date(2024, 6, 5), OpenTime: "11:00:00", CloseTime: "15:00:00"},
		},
	)

	first, err := GenerateShiftInstances(10, 1, date(2024, 6, 3), date(2024, 6, 9), templates, nil, resolver)
	require.NoError(t, err)
	second, err := GenerateShiftInstances(10, 1, date(2024, 6, 3), date(2024, 6, 9), templates, nil, resolver)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, SameDate(first[i].Date, second[i].Date))
		assert.Equal(t, *first[i].TemplateID, *second[i].TemplateID)
		assert.Equal(t, first[i].StartTime, second[i].StartTime)
		assert.Equal(t, first[i].EndTime, second[i].EndTime)
	}
}

func TestGenerateSingleDayRange(t *testing.T) {
	template := weekdayTemplate(1, 1)

	// 区间可以只有一天，且带时分秒的输入也按日期处理
	start := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 3, 23, 0, 0, 0, time.UTC)
	instances, err := GenerateShiftInstances(10, 1, start, end, []*domain.ShiftTemplate{template}, nil, emptyResolver())

	require.NoError(t, err)
	assert.Len(t, instances, 1)
}

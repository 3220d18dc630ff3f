package utils

import (
	"testing"
	"time"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShiftTemplateTime(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   string
		wantErr   bool
	}{
		{"正常时间段", "09:00:00", "17:00:00", false},
		{"结束早于开始", "17:00:00", "09:00:00", true},
		{"开始时间格式错误", "9am", "17:00:00", true},
		{"结束时间格式错误", "09:00:00", "下午五点", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &domain.ShiftTemplate{StartTime: tt.startTime, EndTime: tt.endTime}
			err := ValidateShiftTemplateTime(st)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateShiftTemplateAgainstExisting(t *testing.T) {
	existing := []*domain.ShiftTemplate{
		{
			ID:             1,
			Position:       "收银",
			ApplicableDays: []int32{1, 2, 3},
			StartTime:      "09:00:00",
			EndTime:        "13:00:00",
			IsActive:       true,
		},
	}

	// 相同岗位、共享星期一、时间重叠
	st := &domain.ShiftTemplate{
		ID:             2,
		Position:       "收银",
		ApplicableDays: []int32{1},
		StartTime:      "12:00:00",
		EndTime:        "16:00:00",
	}
	require.Error(t, ValidateShiftTemplateAgainstExisting(st, existing))

	// 不同岗位不冲突
	st.Position = "导购"
	assert.NoError(t, ValidateShiftTemplateAgainstExisting(st, existing))

	// 相同岗位但没有共享的适用日期
	st.Position = "收银"
	st.ApplicableDays = []int32{6, 7}
	assert.NoError(t, ValidateShiftTemplateAgainstExisting(st, existing))

	// 更新自己时排除自身
	self := existing[0]
	assert.NoError(t, ValidateShiftTemplateAgainstExisting(self, existing))
}

func TestValidateSpecialOpeningHoursTime(t *testing.T) {
	// 停业时不检查营业时间
	closed := &domain.SpecialOpeningHours{IsClosed: true}
	assert.NoError(t, ValidateSpecialOpeningHoursTime(closed))

	valid := &domain.SpecialOpeningHours{OpenTime: "10:00:00", CloseTime: "14:00:00"}
	assert.NoError(t, ValidateSpecialOpeningHoursTime(valid))

	inverted := &domain.SpecialOpeningHours{OpenTime: "14:00:00", CloseTime: "10:00:00"}
	assert.Error(t, ValidateSpecialOpeningHoursTime(inverted))
}

func TestValidateAvailabilityDateRange(t *testing.T) {
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateAvailabilityDateRange(start, end))
	assert.NoError(t, ValidateAvailabilityDateRange(start, start))
	assert.Error(t, ValidateAvailabilityDateRange(end, start))
}

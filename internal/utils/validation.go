package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
)

func ValidateShiftTemplateTime(st *domain.ShiftTemplate) error {
	startTime, err := time.Parse("15:04:05", st.StartTime)
	if err != nil {
		return errors.New("班次模板的开始时间格式错误")
	}
	endTime, err := time.Parse("15:04:05", st.EndTime)
	if err != nil {
		return errors.New("班次模板的结束时间格式错误")
	}
	if endTime.Before(startTime) {
		return errors.New("班次模板的结束时间不能早于开始时间")
	}

	return nil
}

// 检查同一个门店的模板之间的时间是否冲突（同一天内的岗位相同的模板不允许时间重叠）
func ValidateShiftTemplateAgainstExisting(st *domain.ShiftTemplate, existing []*domain.ShiftTemplate) error {
	stStart, _ := time.Parse("15:04:05", st.StartTime)
	stEnd, _ := time.Parse("15:04:05", st.EndTime)

	for _, other := range existing {
		if other.ID == st.ID || other.Position != st.Position || !other.IsActive {
			continue
		}

		shareDay := false
		for _, day := range st.ApplicableDays {
			for _, otherDay := range other.ApplicableDays {
				if day == otherDay {
					shareDay = true
					break
				}
			}
		}
		if !shareDay {
			continue
		}

		otherStart, _ := time.Parse("15:04:05", other.StartTime)
		otherEnd, _ := time.Parse("15:04:05", other.EndTime)

		if !(otherStart.After(stEnd) || stStart.After(otherEnd)) {
			return fmt.Errorf("和模板 %d 的时间冲突", other.ID)
		}
	}

	return nil
}

func ValidateSpecialOpeningHoursTime(s *domain.SpecialOpeningHours) error {
	if s.IsClosed {
		// 停业时不需要营业时间
		return nil
	}

	openTime, err := time.Parse("15:04:05", s.OpenTime)
	if err != nil {
		return errors.New("营业开始时间格式错误")
	}
	closeTime, err := time.Parse("15:04:05", s.CloseTime)
	if err != nil {
		return errors.New("营业结束时间格式错误")
	}
	if closeTime.Before(openTime) {
		return errors.New("营业结束时间不能早于营业开始时间")
	}

	return nil
}

func ValidateAvailabilityDateRange(startDate, endDate time.Time) error {
	if startDate.After(endDate) {
		return errors.New("开始日期不能晚于结束日期")
	}

	return nil
}

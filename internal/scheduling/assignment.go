package scheduling

import (
	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
)

// ValidateAssignment 判断员工能否被指派到某个班次实例
// existingOnDate 是该员工当天已被指派（未取消）的班次实例快照
// confirmedCount 是该班次当前已确认的指派人数，只读不改
// 检查按顺序短路：员工可用性 → 时间冲突 → 班次人数
// 校验通过返回 nil，由调用方负责真正持久化指派记录
func ValidateAssignment(
	instance *domain.ShiftInstance,
	guard *AvailabilityGuard,
	existingOnDate []*domain.ShiftInstance,
	confirmedCount int32,
) error {
	if !guard.IsAvailable(instance.Date) {
		return &AssignmentRejectionError{Reason: ReasonUnavailable}
	}

	for _, assigned := range existingOnDate {
		if TimeRangesOverlap(assigned.Date, assigned.StartTime, assigned.EndTime, instance.Date, instance.StartTime, instance.EndTime) {
			return &AssignmentRejectionError{
				Reason:                ReasonOverlappingAssignment,
				ConflictingInstanceID: assigned.ID,
			}
		}
	}

	if confirmedCount >= instance.RequiredNumber {
		return &AssignmentRejectionError{Reason: ReasonShiftFull}
	}

	return nil
}

package scheduling

import (
	"slices"
	"time"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
)

// AvailabilityGuard 基于某个员工全部未删除的时间记录快照做校验和查询
// 本身不做任何持久化操作
type AvailabilityGuard struct {
	records []*domain.EmployeeAvailability
}

func NewAvailabilityGuard(records []*domain.EmployeeAvailability) *AvailabilityGuard {
	return &AvailabilityGuard{records: records}
}

// CheckNoOverlap 检查 [startDate, endDate] 是否和已有记录重叠
// excludeID 用于更新场景，排除记录自身；传 0 表示不排除任何记录
// 不会在第一个冲突处停下，而是收集全部冲突记录的 id 一次性返回
func (g *AvailabilityGuard) CheckNoOverlap(startDate, endDate time.Time, excludeID int64) error {
	conflictingIDs := make([]int64, 0)

	for _, record := range g.records {
		if record.ID == excludeID {
			continue
		}
		if DateRangesOverlap(record.StartDate, record.EndDate, startDate, endDate) {
			conflictingIDs = append(conflictingIDs, record.ID)
		}
	}

	if len(conflictingIDs) > 0 {
		slices.Sort(conflictingIDs)
		return &OverlapConflictError{ConflictingIDs: conflictingIDs}
	}

	return nil
}

// IsAvailable 判断员工在某一天是否可以排班
// 规则：
//  1. 任何覆盖当天的不可用记录都使员工不可用
//  2. 如果员工登记过可用区间，则只有被某个可用区间覆盖的日期才算可用
//  3. 没有任何记录的员工视为可用（没有登记不等于有限制）
func (g *AvailabilityGuard) IsAvailable(date time.Time) bool {
	hasAvailableRecords := false
	coveredByAvailable := false

	for _, record := range g.records {
		covers := DateRangesOverlap(record.StartDate, record.EndDate, date, date)

		switch record.Kind {
		case domain.AvailabilityKindUnavailable:
			if covers {
				return false
			}
		case domain.AvailabilityKindAvailable:
			hasAvailableRecords = true
			if covers {
				coveredByAvailable = true
			}
		}
	}

	if hasAvailableRecords && !coveredByAvailable {
		return false
	}

	return true
}

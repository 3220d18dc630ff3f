package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDateRange = errors.New("开始日期不能晚于结束日期")

// OverlapConflictError 表示新的日期区间和员工已有的记录重叠
// ConflictingIDs 包含全部冲突记录的 id（升序），方便调用方一次性展示所有冲突
type OverlapConflictError struct {
	ConflictingIDs []int64
}

func (e *OverlapConflictError) Error() string {
	ids := make([]string, len(e.ConflictingIDs))
	for i, id := range e.ConflictingIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("日期区间和已有记录重叠（记录 id: %s）", strings.Join(ids, ", "))
}

// GenerationConflictError 表示部分日期上已经存在由相同模板生成的班次
// Dates 为冲突日期列表（去重、升序），整个批次都不会被生成
type GenerationConflictError struct {
	Dates []time.Time
}

func (e *GenerationConflictError) Error() string {
	dates := make([]string, len(e.Dates))
	for i, d := range e.Dates {
		dates[i] = d.Format("2006-01-02")
	}
	return fmt.Sprintf("以下日期已存在生成的班次：%s", strings.Join(dates, ", "))
}

type RejectionReason string

const (
	ReasonUnavailable           RejectionReason = "员工不可用"
	ReasonOverlappingAssignment RejectionReason = "班次时间冲突"
	ReasonShiftFull             RejectionReason = "班次已满"
)

// AssignmentRejectionError 表示员工不能被指派到某个班次
type AssignmentRejectionError struct {
	Reason                RejectionReason
	ConflictingInstanceID int64 // 仅在班次时间冲突时有值
}

func (e *AssignmentRejectionError) Error() string {
	if e.Reason == ReasonOverlappingAssignment {
		return fmt.Sprintf("%s：与班次 %d 的时间重叠", e.Reason, e.ConflictingInstanceID)
	}
	return string(e.Reason)
}

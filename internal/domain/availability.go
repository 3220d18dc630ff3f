package domain

import "time"

type AvailabilityKind string

const (
	AvailabilityKindAvailable   AvailabilityKind = "可用"
	AvailabilityKindUnavailable AvailabilityKind = "不可用"
)

// EmployeeAvailability 是员工标记的一段日期区间（闭区间）
// 同一个员工的未删除记录之间不允许有日期重叠
type EmployeeAvailability struct {
	ID         int64            `json:"id"`
	EmployeeID int64            `json:"employeeID"`
	StartDate  time.Time        `json:"startDate"`
	EndDate    time.Time        `json:"endDate"`
	Kind       AvailabilityKind `json:"kind"`
	Note       string           `json:"note"`
	CreatedAt  time.Time        `json:"createdAt"`
	Version    int32            `json:"-"`
}

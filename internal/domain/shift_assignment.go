package domain

import "time"

type AssignmentStatus string

const (
	AssignmentStatusProposed  AssignmentStatus = "待确认"
	AssignmentStatusConfirmed AssignmentStatus = "已确认"
	AssignmentStatusRemoved   AssignmentStatus = "已取消"
)

type ShiftAssignment struct {
	ID              int64            `json:"id"`
	ShiftInstanceID int64            `json:"shiftInstanceID"`
	EmployeeID      int64            `json:"employeeID"`
	Status          AssignmentStatus `json:"status"`
	CreatedAt       time.Time        `json:"createdAt"`
	Version         int32            `json:"-"`
}

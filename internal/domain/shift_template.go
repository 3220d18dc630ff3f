package domain

import (
	"time"
)

// ShiftTemplate 是周期性的班次定义，生成班次实例时只读
type ShiftTemplate struct {
	ID             int64     `json:"id"`
	LocationID     int64     `json:"locationID"`
	Name           string    `json:"name"`
	Position       string    `json:"position"`
	ApplicableDays []int32   `json:"applicableDays"` // 1 表示周一，7 表示周日
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	RequiredNumber int32     `json:"requiredNumber"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}

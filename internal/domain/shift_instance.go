package domain

import "time"

// ShiftInstance 是某个具体日期上的一个班次，由模板生成或手动创建
type ShiftInstance struct {
	ID             int64     `json:"id"`
	LocationID     int64     `json:"locationID"`
	Date           time.Time `json:"date"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	Position       string    `json:"position"`
	RequiredNumber int32     `json:"requiredNumber"`
	TemplateID     *int64    `json:"templateID"` // 手动创建的班次没有来源模板，此时为 nil
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}

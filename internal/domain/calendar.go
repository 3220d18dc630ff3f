package domain

import "time"

// BlackoutDay 表示某一天停业
// AppliesToCompany 为 true 时对该公司的所有门店生效，此时 LocationID 为 nil
type BlackoutDay struct {
	ID               int64     `json:"id"`
	CompanyID        int64     `json:"companyID"`
	LocationID       *int64    `json:"locationID"`
	Date             time.Time `json:"date"`
	AppliesToCompany bool      `json:"appliesToCompany"`
	Reason           string    `json:"reason"`
	CreatedAt        time.Time `json:"createdAt"`
	Version          int32     `json:"-"`
}

// SpecialOpeningHours 覆盖某个门店在某一天的正常营业时间
// IsClosed 为 true 表示当天停业，否则以 OpenTime/CloseTime 为准
type SpecialOpeningHours struct {
	ID         int64     `json:"id"`
	LocationID int64     `json:"locationID"`
	Date       time.Time `json:"date"`
	IsClosed   bool      `json:"isClosed"`
	OpenTime   string    `json:"openTime"`
	CloseTime  string    `json:"closeTime"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}

package scheduling

import (
	"time"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
)

// DayResolution 表示某个门店在某一天的有效营业状态
// Closed 为 true 时当天不营业；HasOverride 为 true 时以 OpenTime/CloseTime 为准，
// 两者都为 false 表示没有任何日历例外，由调用方回退到模板自身的时间
type DayResolution struct {
	Closed      bool
	HasOverride bool
	OpenTime    string
	CloseTime   string
}

type exceptionCheck func(locationID int64, companyID int64, date time.Time) (DayResolution, bool)

// CalendarExceptionResolver 解析某个门店在某一天命中的日历例外
// 检查按最具体优先的顺序依次进行，第一个命中的结果生效：
//  1. 门店级停业日
//  2. 公司级停业日（对该公司所有门店生效）
//  3. 特殊营业时间（停业或覆盖营业时间）
//
// 新的例外来源只需要在 checks 中插入一个新的检查步骤
type CalendarExceptionResolver struct {
	checks []exceptionCheck
}

func NewCalendarExceptionResolver(blackouts []*domain.BlackoutDay, specials []*domain.SpecialOpeningHours) *CalendarExceptionResolver {
	locationBlackout := func(locationID int64, companyID int64, date time.Time) (DayResolution, bool) {
		for _, b := range blackouts {
			if b.AppliesToCompany || b.LocationID == nil {
				continue
			}
			if *b.LocationID == locationID && SameDate(b.Date, date) {
				return DayResolution{Closed: true}, true
			}
		}
		return DayResolution{}, false
	}

	companyBlackout := func(locationID int64, companyID int64, date time.Time) (DayResolution, bool) {
		for _, b := range blackouts {
			if b.AppliesToCompany && b.CompanyID == companyID && SameDate(b.Date, date) {
				return DayResolution{Closed: true}, true
			}
		}
		return DayResolution{}, false
	}

	specialHours := func(locationID int64, companyID int64, date time.Time) (DayResolution, bool) {
		for _, s := range specials {
			if s.LocationID != locationID || !SameDate(s.Date, date) {
				continue
			}
			if s.IsClosed {
				return DayResolution{Closed: true}, true
			}
			return DayResolution{HasOverride: true, OpenTime: s.OpenTime, CloseTime: s.CloseTime}, true
		}
		return DayResolution{}, false
	}

	return &CalendarExceptionResolver{
		checks: []exceptionCheck{locationBlackout, companyBlackout, specialHours},
	}
}

// Resolve 返回 (locationID, companyID, date) 的有效营业状态
// 快照中查不到任何例外时按正常营业处理，不会返回错误
func (r *CalendarExceptionResolver) Resolve(locationID int64, companyID int64, date time.Time) DayResolution {
	for _, check := range r.checks {
		if resolution, hit := check(locationID, companyID, date); hit {
			return resolution
		}
	}
	return DayResolution{}
}

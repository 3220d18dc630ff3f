package scheduling

import "time"

// DateRangesOverlap 判断两个日期闭区间是否重叠
// 判定条件为 aStart <= bEnd 且 aEnd >= bStart
func DateRangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// TimeRangesOverlap 判断两个班次的时间段是否重叠（闭区间）
// 不在同一天的两个班次无论时间段如何都不算重叠
func TimeRangesOverlap(aDate time.Time, aStart, aEnd string, bDate time.Time, bStart, bEnd string) bool {
	if !SameDate(aDate, bDate) {
		return false
	}

	as, _ := time.Parse("15:04:05", aStart)
	ae, _ := time.Parse("15:04:05", aEnd)
	bs, _ := time.Parse("15:04:05", bStart)
	be, _ := time.Parse("15:04:05", bEnd)

	return !as.After(be) && !ae.Before(bs)
}

// SameDate 判断两个时间是否落在同一个日期上
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DayOfWeek 返回 1~7 表示的星期，其中周一为 1，周日为 7
func DayOfWeek(date time.Time) int32 {
	day := int32(date.Weekday())
	if day == 0 {
		day = 7
	}
	return day
}

// 把时间截断到当天零点，便于逐日迭代和比较
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

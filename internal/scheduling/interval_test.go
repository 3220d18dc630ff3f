package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDateRangesOverlap(t *testing.T) {
	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{
			name:   "部分重叠",
			aStart: date(2024, 6, 1), aEnd: date(2024, 6, 10),
			bStart: date(2024, 6, 5), bEnd: date(2024, 6, 15),
			expected: true,
		},
		{
			name:   "完全包含",
			aStart: date(2024, 6, 1), aEnd: date(2024, 6, 30),
			bStart: date(2024, 6, 10), bEnd: date(2024, 6, 12),
			expected: true,
		},
		{
			name:   "共享边界日",
			aStart: date(2024, 6, 1), aEnd: date(2024, 6, 5),
			bStart: date(2024, 6, 5), bEnd: date(2024, 6, 10),
			expected: true,
		},
		{
			name:   "相邻但不共享任何一天",
			aStart: date(2024, 6, 1), aEnd: date(2024, 6, 5),
			bStart: date(2024, 6, 6), bEnd: date(2024, 6, 10),
			expected: false,
		},
		{
			name:   "完全不相交",
			aStart: date(2024, 6, 1), aEnd: date(2024, 6, 5),
			bStart: date(2024, 7, 1), bEnd: date(2024, 7, 5),
			expected: false,
		},
		{
			name:   "单日区间和自身",
			aStart: date(2024, 6, 3), aEnd: date(2024, 6, 3),
			bStart: date(2024, 6, 3), bEnd: date(2024, 6, 3),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DateRangesOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// 对称性：交换两个区间结果不变
			assert.Equal(t, tt.expected, DateRangesOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestDateRangesOverlapSelf(t *testing.T) {
	start := date(2024, 6, 1)
	end := date(2024, 6, 10)

	assert.True(t, DateRangesOverlap(start, end, start, end))
}

func TestTimeRangesOverlap(t *testing.T) {
	monday := date(2024, 6, 3)
	tuesday := date(2024, 6, 4)

	// 同一天，时间段交叉
	assert.True(t, TimeRangesOverlap(monday, "09:00:00", "13:00:00", monday, "12:00:00", "16:00:00"))

	// 同一天，仅共享边界时刻，按闭区间算重叠
	assert.True(t, TimeRangesOverlap(monday, "09:00:00", "12:00:00", monday, "12:00:00", "16:00:00"))

	// 同一天，时间段完全分开
	assert.False(t, TimeRangesOverlap(monday, "09:00:00", "12:00:00", monday, "13:00:00", "16:00:00"))

	// 不同日期，时间段即使相同也不算重叠
	assert.False(t, TimeRangesOverlap(monday, "09:00:00", "13:00:00", tuesday, "09:00:00", "13:00:00"))
}

func TestDayOfWeek(t *testing.T) {
	// 2024-06-03 是周一，2024-06-09 是周日
	assert.Equal(t, int32(1), DayOfWeek(date(2024, 6, 3)))
	assert.Equal(t, int32(3), DayOfWeek(date(2024, 6, 5)))
	assert.Equal(t, int32(7), DayOfWeek(date(2024, 6, 9)))
}

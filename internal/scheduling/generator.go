package scheduling

import (
	"slices"
	"sort"
	"time"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
)

type candidateKey struct {
	date       string
	templateID int64
}

// GenerateShiftInstances 把某个门店的班次模板展开成 [rangeStart, rangeEnd] 内的班次实例
// existing 是该门店在区间内已持久化且未删除的班次实例快照
// 生成是全有或全无的：只要有任意一个 (日期, 模板) 和已有班次冲突，整个批次都会被丢弃，
// 并返回携带全部冲突日期的 GenerationConflictError，由调用方显式处理
// 相同输入的输出总是相同，且按日期升序、模板 id 升序排列
func GenerateShiftInstances(
	locationID int64,
	companyID int64,
	rangeStart time.Time,
	rangeEnd time.Time,
	templates []*domain.ShiftTemplate,
	existing []*domain.ShiftInstance,
	resolver *CalendarExceptionResolver,
) ([]*domain.ShiftInstance, error) {
	start := dateOnly(rangeStart)
	end := dateOnly(rangeEnd)

	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	candidates := expandCandidates(locationID, companyID, start, end, templates, resolver)

	// 展开和冲突判定分开做：先算出完整的候选集合，再用一次 diff 决定成败
	conflictDates := diffAgainstExisting(candidates, existing, locationID)
	if len(conflictDates) > 0 {
		return nil, &GenerationConflictError{Dates: conflictDates}
	}

	return candidates, nil
}

// expandCandidates 枚举区间内的每一天和每个适用的模板，生成候选班次实例
// 当天停业的 (模板, 日期) 直接跳过；特殊营业时间覆盖模板自身的时间
func expandCandidates(
	locationID int64,
	companyID int64,
	start time.Time,
	end time.Time,
	templates []*domain.ShiftTemplate,
	resolver *CalendarExceptionResolver,
) []*domain.ShiftInstance {
	// 模板按 id 升序处理，保证同一天内的生成顺序稳定
	sorted := make([]*domain.ShiftTemplate, len(templates))
	copy(sorted, templates)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	candidates := make([]*domain.ShiftInstance, 0)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := DayOfWeek(d)

		for _, template := range sorted {
			if !template.IsActive || !slices.Contains(template.ApplicableDays, day) {
				continue
			}

			resolution := resolver.Resolve(locationID, companyID, d)
			if resolution.Closed {
				continue
			}

			startTime := template.StartTime
			endTime := template.EndTime
			if resolution.HasOverride {
				startTime = resolution.OpenTime
				endTime = resolution.CloseTime
			}

			templateID := template.ID
			candidates = append(candidates, &domain.ShiftInstance{
				LocationID:     locationID,
				Date:           d,
				StartTime:      startTime,
				EndTime:        endTime,
				Position:       template.Position,
				RequiredNumber: template.RequiredNumber,
				TemplateID:     &templateID,
			})
		}
	}

	return candidates
}

// diffAgainstExisting 找出候选集合中已经存在的 (日期, 模板) 对应的日期
// 手动创建的班次没有来源模板，不参与冲突判定
// 候选集合本身按日期升序，所以返回的冲突日期也是升序的
func diffAgainstExisting(candidates []*domain.ShiftInstance, existing []*domain.ShiftInstance, locationID int64) []time.Time {
	existingKeys := make(map[candidateKey]bool)
	for _, instance := range existing {
		if instance.LocationID != locationID || instance.TemplateID == nil {
			continue
		}
		key := candidateKey{
			date:       instance.Date.Format("2006-01-02"),
			templateID: *instance.TemplateID,
		}
		existingKeys[key] = true
	}

	conflictDates := make([]time.Time, 0)
	seenDates := make(map[string]bool)

	for _, candidate := range candidates {
		date := candidate.Date.Format("2006-01-02")
		key := candidateKey{date: date, templateID: *candidate.TemplateID}

		if existingKeys[key] && !seenDates[date] {
			seenDates[date] = true
			conflictDates = append(conflictDates, candidate.Date)
		}
	}

	return conflictDates
}

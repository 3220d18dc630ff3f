package seed

import (
	"log/slog"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/config"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/repository"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/utils"
)

// 一个零售门店常见的班次结构
var demoTemplates = []domain.ShiftTemplate{
	{
		Name:           "早班收银",
		Position:       "收银",
		StartTime:      "09:00:00",
		EndTime:        "13:00:00",
		RequiredNumber: 2,
		ApplicableDays: []int32{1, 2, 3, 4, 5, 6, 7},
		IsActive:       true,
	},
	{
		Name:           "晚班收银",
		Position:       "收银",
		StartTime:      "14:00:00",
		EndTime:        "21:00:00",
		RequiredNumber: 2,
		ApplicableDays: []int32{1, 2, 3, 4, 5, 6, 7},
		IsActive:       true,
	},
	{
		Name:           "工作日导购",
		Position:       "导购",
		StartTime:      "10:00:00",
		EndTime:        "18:00:00",
		RequiredNumber: 3,
		ApplicableDays: []int32{1, 2, 3, 4, 5},
		IsActive:       true,
	},
	{
		Name:           "周末导购",
		Position:       "导购",
		StartTime:      "10:00:00",
		EndTime:        "20:00:00",
		RequiredNumber: 4,
		ApplicableDays: []int32{6, 7},
		IsActive:       true,
	},
	{
		Name:           "仓库理货",
		Position:       "仓管",
		StartTime:      "08:00:00",
		EndTime:        "12:00:00",
		RequiredNumber: 1,
		ApplicableDays: []int32{1, 3, 5},
		IsActive:       true,
	},
}

// SeedDemoData 插入一套完整的演示数据：
// 一个公司、两个门店、每个门店一组班次模板和若干员工及其时间记录
func SeedDemoData(r *repository.Repository, cfg *config.Config, employeesPerLocation int) {
	company := &domain.Company{Name: "山海零售"}
	if err := r.CreateCompany(company); err != nil {
		slog.Error("插入公司失败", "error", err)
		return
	}

	locations := []*domain.Location{
		{CompanyID: company.ID, Name: "中山路店", Address: "中山路 128 号"},
		{CompanyID: company.ID, Name: "滨江店", Address: "滨江大道 56 号"},
	}

	for _, location := range locations {
		if err := r.CreateLocation(location); err != nil {
			slog.Error("插入门店失败", "error", err)
			return
		}

		// 插入班次模板
		for _, template := range demoTemplates {
			t := template
			t.LocationID = location.ID
			if err := r.CreateShiftTemplate(&t); err != nil {
				slog.Error("插入班次模板失败", "location", location.Name, "template", t.Name, "error", err)
				continue
			}
		}

		// 插入员工及其时间记录
		for i := 0; i < employeesPerLocation; i++ {
			employee, err := utils.GenerateRandomEmployee(cfg.Seed.User.Password, cfg.Email.UserDomain, location.ID)
			if err != nil {
				slog.Error("生成随机员工失败", "error", err)
				continue
			}

			if err := r.CreateUser(employee); err != nil {
				slog.Error("插入员工失败", "error", err)
				continue
			}

			existing := make([]*domain.EmployeeAvailability, 0)
			for j := 0; j < 3; j++ {
				record := utils.GenerateRandomAvailability(employee.ID, existing)
				if record == nil {
					continue
				}
				if err := r.CreateAvailability(record); err != nil {
					slog.Error("插入时间记录失败", "error", err)
					continue
				}
				existing = append(existing, record)
			}
		}
	}

	slog.Info("插入演示数据完成", "company", company.Name, "locations", len(locations))
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/config"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/repository"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/seed"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var locationID int64
	var employeeID int64

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入演示数据, 2: 插入随机员工, 3: 插入随机班次模板, 4: 插入随机时间记录)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Int64Var(&locationID, "location-id", 0, "员工或模板所属的门店 ID")
	flag.Int64Var(&employeeID, "employee-id", 0, "时间记录所属的员工 ID")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的每个门店的员工数量")
		} else {
			seed.SeedDemoData(repo, cfg, n)
		}
	case 2:
		if locationID <= 0 {
			slog.Error("请输入合法的门店 ID")
			return
		}
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			employee, err := utils.GenerateRandomEmployee(cfg.Seed.User.Password, cfg.Email.UserDomain, locationID)
			if err != nil {
				slog.Error("无法生成随机员工", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(employee); err != nil {
				slog.Error("无法插入员工", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入员工成功", slog.Int("count", n-cnt))
	case 3:
		if locationID <= 0 {
			slog.Error("请输入合法的门店 ID")
			return
		}
		if n <= 0 {
			slog.Error("请输入合法的班次模板数量")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			template := utils.GenerateRandomShiftTemplate(locationID)
			if err := repo.CreateShiftTemplate(template); err != nil {
				slog.Error("无法插入班次模板", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入班次模板成功", slog.Int("count", n-cnt))
	case 4:
		if employeeID <= 0 {
			slog.Error("请输入合法的员工 ID")
			return
		}
		if n <= 0 {
			slog.Error("请输入合法的时间记录数量")
			return
		}

		// 先确认员工存在
		if _, err := repo.GetUserByID(employeeID); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				slog.Error("指定的员工不存在", slog.Int64("employee_id", employeeID))
			default:
				slog.Error("无法获取员工", slog.String("error", err.Error()))
			}
			return
		}

		existing, err := repo.GetAvailabilitiesByEmployeeID(employeeID)
		if err != nil {
			slog.Error("无法获取已有的时间记录", slog.String("error", err.Error()))
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			record := utils.GenerateRandomAvailability(employeeID, existing)
			if record == nil {
				slog.Error("无法生成不重叠的时间记录")
				continue
			}

			if err := repo.CreateAvailability(record); err != nil {
				slog.Error("无法插入时间记录", slog.String("error", err.Error()))
				continue
			}

			existing = append(existing, record)
			cnt++
		}

		slog.Info("插入时间记录成功", slog.Int("count", cnt))
	default:
		slog.Error("指定的操作非法")
	}
}

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/scheduling"
)

// GenerateShiftInstances 把门店的班次模板展开成日期范围内的班次实例
// 同一个门店同一时间只允许一个生成请求，通过 redis 锁串行化
func (h *Handler) GenerateShiftInstances(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
		EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rangeStart, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.badRequest(w, r, errors.New("开始日期格式错误"))
		return
	}
	rangeEnd, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		h.badRequest(w, r, errors.New("结束日期格式错误"))
		return
	}

	location := r.Context().Value(LocationCtx).(*domain.Location)

	// 对门店加锁，防止并发生成导致重复班次
	lockKey := fmt.Sprintf("lock_generate_location_%d", location.ID)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	locked, err := h.redisClient.SetNX(ctx, lockKey, "1", time.Duration(h.config.Lock.Expiration)*time.Second).Result()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !locked {
		h.errorResponse(w, r, "该门店正在生成班次，请稍后再试")
		return
	}
	defer func() {
		if err := h.redisClient.Del(ctx, lockKey).Err(); err != nil {
			slog.Error("释放生成锁失败", "key", lockKey, "error", err)
		}
	}()

	// 获取快照：模板、已有班次、停业日、特殊营业时间
	templates, err := h.repository.GetShiftTemplatesByLocationID(location.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	existing, err := h.repository.GetLiveShiftInstances(location.ID, rangeStart, rangeEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	blackouts, err := h.repository.GetBlackoutDaysForGeneration(location.CompanyID, location.ID, rangeStart, rangeEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	specials, err := h.repository.GetSpecialOpeningHoursByLocationID(location.ID, rangeStart, rangeEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 基于快照做纯计算，任何冲突都会使整个批次失败
	resolver := scheduling.NewCalendarExceptionResolver(blackouts, specials)
	instances, err := scheduling.GenerateShiftInstances(location.ID, location.CompanyID, rangeStart, rangeEnd, templates, existing, resolver)
	if err != nil {
		var conflictErr *scheduling.GenerationConflictError
		switch {
		case errors.Is(err, scheduling.ErrInvalidDateRange):
			h.badRequest(w, r, err)
		case errors.As(err, &conflictErr):
			h.errorResponse(w, r, conflictErr.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if len(instances) == 0 {
		h.successResponse(w, r, "该日期范围内没有可生成的班次", instances)
		return
	}

	// 整批写入数据库
	if err := h.repository.CreateShiftInstancesBatch(instances); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 通知该门店的所有在职员工
	h.notifyShiftsPublished(location, rangeStart, rangeEnd, len(instances))

	h.successResponse(w, r, "生成班次成功", instances)
}

// notifyShiftsPublished 给门店的在职员工发送班次发布通知
// 通知失败不影响已经生成的班次，只记录日志
func (h *Handler) notifyShiftsPublished(location *domain.Location, rangeStart time.Time, rangeEnd time.Time, shiftCount int) {
	employees, err := h.repository.GetEmployeesByLocationID(location.ID)
	if err != nil {
		slog.Error("获取门店员工失败", "locationID", location.ID, "error", err)
		return
	}

	for _, employee := range employees {
		mailMessage := domain.MailMessage{
			Type: "shifts_published",
			To:   employee.Email,
			Data: domain.ShiftsPublishedMailData{
				FullName:     employee.FullName,
				LocationName: location.Name,
				RangeStart:   rangeStart.Format("2006-01-02"),
				RangeEnd:     rangeEnd.Format("2006-01-02"),
				ShiftCount:   shiftCount,
			},
		}

		mailData, err := json.Marshal(mailMessage)
		if err != nil {
			slog.Error("序列化通知邮件失败", "to", employee.Email, "error", err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)

		if err := h.mailChannel.PublishWithContext(
			ctx,
			"",
			"notification_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        mailData,
			},
		); err != nil {
			slog.Error("发送通知邮件到消息队列失败", "to", employee.Email, "error", err)
		}

		cancel()
	}
}

func (h *Handler) CreateManualShiftInstance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date           string `json:"date" validate:"required,datetime=2006-01-02"`
		StartTime      string `json:"startTime" validate:"required"`
		EndTime        string `json:"endTime" validate:"required"`
		Position       string `json:"position" validate:"required,max=32"`
		RequiredNumber int32  `json:"requiredNumber" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.badRequest(w, r, errors.New("日期格式错误"))
		return
	}

	startTime, err := time.Parse("15:04:05", req.StartTime)
	if err != nil {
		h.badRequest(w, r, errors.New("开始时间格式错误"))
		return
	}
	endTime, err := time.Parse("15:04:05", req.EndTime)
	if err != nil {
		h.badRequest(w, r, errors.New("结束时间格式错误"))
		return
	}
	if endTime.Before(startTime) {
		h.badRequest(w, r, errors.New("结束时间不能早于开始时间"))
		return
	}

	location := r.Context().Value(LocationCtx).(*domain.Location)

	// 手动创建的班次没有来源模板，不参与生成时的冲突判定
	instance := &domain.ShiftInstance{
		LocationID:     location.ID,
		Date:           date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Position:       req.Position,
		RequiredNumber: req.RequiredNumber,
		TemplateID:     nil,
	}

	if err := h.repository.CreateShiftInstance(instance); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建班次成功", instance)
}

func (h *Handler) GetLocationShiftInstances(w http.ResponseWriter, r *http.Request) {
	location := r.Context().Value(LocationCtx).(*domain.Location)

	rangeStart, rangeEnd, err := parseDateRangeQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	instances, err := h.repository.GetLiveShiftInstances(location.ID, rangeStart, rangeEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次列表成功", instances)
}

func (h *Handler) GetShiftInstance(w http.ResponseWriter, r *http.Request) {
	instance := r.Context().Value(ShiftInstanceCtx).(*domain.ShiftInstance)
	h.successResponse(w, r, "获取班次成功", instance)
}

func (h *Handler) DeleteShiftInstance(w http.ResponseWriter, r *http.Request) {
	instance := r.Context().Value(ShiftInstanceCtx).(*domain.ShiftInstance)

	if err := h.repository.DeleteShiftInstance(instance); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "删除班次失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除班次成功", nil)
}

// CreateShiftAssignment 把员工指派到某个班次实例
// 同一个班次同一时间只允许一个指派请求，防止并发指派超出班次人数
func (h *Handler) CreateShiftAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID int64 `json:"employeeID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	instance := r.Context().Value(ShiftInstanceCtx).(*domain.ShiftInstance)

	employee, err := h.repository.GetUserByID(req.EmployeeID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "员工不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !employee.IsActive {
		h.errorResponse(w, r, "员工已离职")
		return
	}
	if employee.LocationID == nil || *employee.LocationID != instance.LocationID {
		h.errorResponse(w, r, "员工不属于该班次所在的门店")
		return
	}

	// 对班次实例加锁，防止并发指派
	lockKey := fmt.Sprintf("lock_assign_instance_%d", instance.ID)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	locked, err := h.redisClient.SetNX(ctx, lockKey, "1", time.Duration(h.config.Lock.Expiration)*time.Second).Result()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !locked {
		h.errorResponse(w, r, "该班次正在被指派，请稍后再试")
		return
	}
	defer func() {
		if err := h.redisClient.Del(ctx, lockKey).Err(); err != nil {
			slog.Error("释放指派锁失败", "key", lockKey, "error", err)
		}
	}()

	// 同一个员工不能被重复指派到同一个班次
	alreadyAssigned, err := h.repository.CheckEmployeeAssignedToInstance(instance.ID, employee.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if alreadyAssigned {
		h.errorResponse(w, r, "员工已被指派到该班次")
		return
	}

	// 获取快照：员工的时间记录、当天已有的班次、班次当前人数
	availabilities, err := h.repository.GetAvailabilitiesByEmployeeID(employee.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	existingOnDate, err := h.repository.GetEmployeeShiftInstancesOnDate(employee.ID, instance.Date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	activeCount, err := h.repository.CountActiveAssignments(instance.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	guard := scheduling.NewAvailabilityGuard(availabilities)
	if err := scheduling.ValidateAssignment(instance, guard, existingOnDate, activeCount); err != nil {
		var rejectionErr *scheduling.AssignmentRejectionError
		switch {
		case errors.As(err, &rejectionErr):
			h.errorResponse(w, r, rejectionErr.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	assignment := &domain.ShiftAssignment{
		ShiftInstanceID: instance.ID,
		EmployeeID:      employee.ID,
		Status:          domain.AssignmentStatusProposed,
	}

	if err := h.repository.CreateShiftAssignment(assignment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 通知员工
	h.notifyAssignment(employee, instance)

	h.successResponse(w, r, "指派成功", assignment)
}

// notifyAssignment 给被指派的员工发送通知，失败只记录日志
func (h *Handler) notifyAssignment(employee *domain.User, instance *domain.ShiftInstance) {
	location, err := h.repository.GetLocationByID(instance.LocationID)
	if err != nil {
		slog.Error("获取门店信息失败", "locationID", instance.LocationID, "error", err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "assignment",
		To:   employee.Email,
		Data: domain.AssignmentMailData{
			FullName:     employee.FullName,
			LocationName: location.Name,
			Date:         instance.Date.Format("2006-01-02"),
			StartTime:    instance.StartTime,
			EndTime:      instance.EndTime,
			Position:     instance.Position,
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		slog.Error("序列化通知邮件失败", "to", employee.Email, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		slog.Error("发送通知邮件到消息队列失败", "to", employee.Email, "error", err)
	}
}

func (h *Handler) GetShiftInstanceAssignments(w http.ResponseWriter, r *http.Request) {
	instance := r.Context().Value(ShiftInstanceCtx).(*domain.ShiftInstance)

	assignments, err := h.repository.GetShiftAssignmentsByInstanceID(instance.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排班列表成功", assignments)
}

// UpdateShiftAssignmentStatus 更新排班状态
// 员工只能操作自己的排班，管理员和门店经理可以操作任何排班
func (h *Handler) UpdateShiftAssignmentStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status" validate:"required,oneof=已确认 已取消"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	assignment := r.Context().Value(ShiftAssignmentCtx).(*domain.ShiftAssignment)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	if myInfo.Role == domain.RoleEmployee && assignment.EmployeeID != myInfo.ID {
		h.errorResponse(w, r, "只能操作自己的排班")
		return
	}

	if assignment.Status == domain.AssignmentStatusRemoved {
		h.errorResponse(w, r, "已取消的排班不能再变更状态")
		return
	}

	assignment.Status = domain.AssignmentStatus(req.Status)

	if err := h.repository.UpdateShiftAssignment(assignment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新排班状态失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新排班状态成功", assignment)
}

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/scheduling"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/utils"
)

func (h *Handler) CreateMyAvailability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
		EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
		Kind      string `json:"kind" validate:"required,oneof=可用 不可用"`
		Note      string `json:"note" validate:"max=256"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.badRequest(w, r, errors.New("开始日期格式错误"))
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		h.badRequest(w, r, errors.New("结束日期格式错误"))
		return
	}

	if err := utils.ValidateAvailabilityDateRange(startDate, endDate); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	// 和已有记录做重叠检查
	existing, err := h.repository.GetAvailabilitiesByEmployeeID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	guard := scheduling.NewAvailabilityGuard(existing)
	if err := guard.CheckNoOverlap(startDate, endDate, 0); err != nil {
		var overlapErr *scheduling.OverlapConflictError
		switch {
		case errors.As(err, &overlapErr):
			h.errorResponse(w, r, overlapErr.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	record := &domain.EmployeeAvailability{
		EmployeeID: myInfo.ID,
		StartDate:  startDate,
		EndDate:    endDate,
		Kind:       domain.AvailabilityKind(req.Kind),
		Note:       req.Note,
	}

	if err := h.repository.CreateAvailability(record); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建时间记录成功", record)
}

func (h *Handler) GetMyAvailabilities(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	records, err := h.repository.GetAvailabilitiesByEmployeeID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取时间记录成功", records)
}

func (h *Handler) UpdateMyAvailability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
		EndDate   *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
		Kind      *string `json:"kind" validate:"omitempty,oneof=可用 不可用"`
		Note      *string `json:"note" validate:"omitempty,max=256"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	record := r.Context().Value(AvailabilityCtx).(*domain.EmployeeAvailability)

	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			h.badRequest(w, r, errors.New("开始日期格式错误"))
			return
		}
		record.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			h.badRequest(w, r, errors.New("结束日期格式错误"))
			return
		}
		record.EndDate = endDate
	}
	if req.Kind != nil {
		record.Kind = domain.AvailabilityKind(*req.Kind)
	}
	if req.Note != nil {
		record.Note = *req.Note
	}

	if err := utils.ValidateAvailabilityDateRange(record.StartDate, record.EndDate); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 更新时排除记录自身再做重叠检查
	existing, err := h.repository.GetAvailabilitiesByEmployeeID(record.EmployeeID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	guard := scheduling.NewAvailabilityGuard(existing)
	if err := guard.CheckNoOverlap(record.StartDate, record.EndDate, record.ID); err != nil {
		var overlapErr *scheduling.OverlapConflictError
		switch {
		case errors.As(err, &overlapErr):
			h.errorResponse(w, r, overlapErr.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.UpdateAvailability(record); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新时间记录失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新时间记录成功", record)
}

func (h *Handler) DeleteMyAvailability(w http.ResponseWriter, r *http.Request) {
	record := r.Context().Value(AvailabilityCtx).(*domain.EmployeeAvailability)

	if err := h.repository.DeleteAvailability(record); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "删除时间记录失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除时间记录成功", nil)
}

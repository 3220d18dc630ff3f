package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/utils"
)

func (h *Handler) CreateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string  `json:"name" validate:"required,max=64"`
		Position       string  `json:"position" validate:"required,max=32"`
		ApplicableDays []int32 `json:"applicableDays" validate:"required,min=1,max=7,dive,min=1,max=7"`
		StartTime      string  `json:"startTime" validate:"required"`
		EndTime        string  `json:"endTime" validate:"required"`
		RequiredNumber int32   `json:"requiredNumber" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	location := r.Context().Value(LocationCtx).(*domain.Location)

	template := &domain.ShiftTemplate{
		LocationID:     location.ID,
		Name:           req.Name,
		Position:       req.Position,
		ApplicableDays: req.ApplicableDays,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		RequiredNumber: req.RequiredNumber,
		IsActive:       true,
	}

	if err := utils.ValidateShiftTemplateTime(template); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 和门店已有模板做时间冲突检查
	existing, err := h.repository.GetShiftTemplatesByLocationID(location.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := utils.ValidateShiftTemplateAgainstExisting(template, existing); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateShiftTemplate(template); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建班次模板成功", template)
}

func (h *Handler) GetLocationShiftTemplates(w http.ResponseWriter, r *http.Request) {
	location := r.Context().Value(LocationCtx).(*domain.Location)

	templates, err := h.repository.GetShiftTemplatesByLocationID(location.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次模板列表成功", templates)
}

func (h *Handler) GetShiftTemplate(w http.ResponseWriter, r *http.Request) {
	template := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)
	h.successResponse(w, r, "获取班次模板成功", template)
}

func (h *Handler) UpdateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           *string  `json:"name" validate:"omitempty,max=64"`
		Position       *string  `json:"position" validate:"omitempty,max=32"`
		ApplicableDays *[]int32 `json:"applicableDays" validate:"omitempty,min=1,max=7,dive,min=1,max=7"`
		StartTime      *string  `json:"startTime"`
		EndTime        *string  `json:"endTime"`
		RequiredNumber *int32   `json:"requiredNumber" validate:"omitempty,min=1"`
		IsActive       *bool    `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	template := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.Position != nil {
		template.Position = *req.Position
	}
	if req.ApplicableDays != nil {
		template.ApplicableDays = *req.ApplicableDays
	}
	if req.StartTime != nil {
		template.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		template.EndTime = *req.EndTime
	}
	if req.RequiredNumber != nil {
		template.RequiredNumber = *req.RequiredNumber
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}

	if err := utils.ValidateShiftTemplateTime(template); err != nil {
		h.badRequest(w, r, err)
		return
	}

	existing, err := h.repository.GetShiftTemplatesByLocationID(template.LocationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := utils.ValidateShiftTemplateAgainstExisting(template, existing); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateShiftTemplate(template); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新班次模板失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新班次模板成功", template)
}

func (h *Handler) DeleteShiftTemplate(w http.ResponseWriter, r *http.Request) {
	template := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	// 删除模板不影响已经生成的班次实例
	if err := h.repository.DeleteShiftTemplate(template.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除班次模板成功", nil)
}

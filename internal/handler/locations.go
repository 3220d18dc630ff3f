package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
)

func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name" validate:"required,max=64"`
		Address string `json:"address" validate:"required,max=256"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	company := r.Context().Value(CompanyCtx).(*domain.Company)

	location := &domain.Location{
		CompanyID: company.ID,
		Name:      req.Name,
		Address:   req.Address,
	}

	if err := h.repository.CreateLocation(location); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建门店成功", location)
}

func (h *Handler) GetCompanyLocations(w http.ResponseWriter, r *http.Request) {
	company := r.Context().Value(CompanyCtx).(*domain.Company)

	locations, err := h.repository.GetLocationsByCompanyID(company.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取门店列表成功", locations)
}

func (h *Handler) GetLocation(w http.ResponseWriter, r *http.Request) {
	location := r.Context().Value(LocationCtx).(*domain.Location)
	h.successResponse(w, r, "获取门店信息成功", location)
}

func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    *string `json:"name" validate:"omitempty,max=64"`
		Address *string `json:"address" validate:"omitempty,max=256"`
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

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Address != nil {
		location.Address = *req.Address
	}

	if err := h.repository.UpdateLocation(location); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新门店信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新门店信息成功", location)
}

func (h *Handler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	location := r.Context().Value(LocationCtx).(*domain.Location)

	if err := h.repository.DeleteLocation(location.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除门店成功", nil)
}

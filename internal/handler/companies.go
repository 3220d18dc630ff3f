package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
)

func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required,max=64"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	company := &domain.Company{
		Name: req.Name,
	}

	if err := h.repository.CreateCompany(company); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "companies_name_key":
			h.badRequest(w, r, errors.New("公司名称已存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建公司成功", company)
}

func (h *Handler) GetAllCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.repository.GetAllCompanies()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取公司列表成功", companies)
}

func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	company := r.Context().Value(CompanyCtx).(*domain.Company)
	h.successResponse(w, r, "获取公司信息成功", company)
}

func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name *string `json:"name" validate:"omitempty,max=64"`
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

	if req.Name != nil {
		company.Name = *req.Name
	}

	if err := h.repository.UpdateCompany(company); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "companies_name_key":
			h.badRequest(w, r, errors.New("公司名称已存在"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新公司信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新公司信息成功", company)
}

func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	company := r.Context().Value(CompanyCtx).(*domain.Company)

	if err := h.repository.DeleteCompany(company.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除公司成功", nil)
}

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
	"github.com/shiftline-dev/shift-scheduler/backend/internal/utils"
)

func (h *Handler) CreateBlackoutDay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date             string `json:"date" validate:"required,datetime=2006-01-02"`
		LocationID       *int64 `json:"locationID"`
		AppliesToCompany bool   `json:"appliesToCompany"`
		Reason           string `json:"reason" validate:"max=256"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 要么对全公司生效，要么指定一个门店，两者必须取其一
	if req.AppliesToCompany && req.LocationID != nil {
		h.badRequest(w, r, errors.New("全公司停业日不能指定门店"))
		return
	}
	if !req.AppliesToCompany && req.LocationID == nil {
		h.badRequest(w, r, errors.New("必须指定停业的门店"))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.badRequest(w, r, errors.New("日期格式错误"))
		return
	}

	company := r.Context().Value(CompanyCtx).(*domain.Company)

	day := &domain.BlackoutDay{
		CompanyID:        company.ID,
		LocationID:       req.LocationID,
		Date:             date,
		AppliesToCompany: req.AppliesToCompany,
		Reason:           req.Reason,
	}

	if err := h.repository.CreateBlackoutDay(day); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "blackout_days_location_id_fkey":
			h.badRequest(w, r, errors.New("门店不存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建停业日成功", day)
}

func (h *Handler) GetCompanyBlackoutDays(w http.ResponseWriter, r *http.Request) {
	company := r.Context().Value(CompanyCtx).(*domain.Company)

	days, err := h.repository.GetBlackoutDaysByCompanyID(company.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取停业日列表成功", days)
}

func (h *Handler) DeleteBlackoutDay(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "停业日ID无效")
		return
	}

	day, err := h.repository.GetBlackoutDayByID(id)
	if err != nil {
		h.errorResponse(w, r, "停业日不存在")
		return
	}

	// 防止跨公司删除
	company := r.Context().Value(CompanyCtx).(*domain.Company)
	if day.CompanyID != company.ID {
		h.errorResponse(w, r, "停业日不存在")
		return
	}

	if err := h.repository.DeleteBlackoutDay(id); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除停业日成功", nil)
}

func (h *Handler) CreateSpecialOpeningHours(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date      string `json:"date" validate:"required,datetime=2006-01-02"`
		IsClosed  bool   `json:"isClosed"`
		OpenTime  string `json:"openTime"`
		CloseTime string `json:"closeTime"`
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

	location := r.Context().Value(LocationCtx).(*domain.Location)

	hours := &domain.SpecialOpeningHours{
		LocationID: location.ID,
		Date:       date,
		IsClosed:   req.IsClosed,
		OpenTime:   req.OpenTime,
		CloseTime:  req.CloseTime,
	}

	if err := utils.ValidateSpecialOpeningHoursTime(hours); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateSpecialOpeningHours(hours); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "special_opening_hours_location_id_date_key":
			h.badRequest(w, r, errors.New("该日期已存在特殊营业时间"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建特殊营业时间成功", hours)
}

func (h *Handler) GetLocationSpecialOpeningHours(w http.ResponseWriter, r *http.Request) {
	location := r.Context().Value(LocationCtx).(*domain.Location)

	rangeStart, rangeEnd, err := parseDateRangeQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := h.repository.GetSpecialOpeningHoursByLocationID(location.ID, rangeStart, rangeEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取特殊营业时间列表成功", result)
}

func (h *Handler) DeleteSpecialOpeningHours(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "特殊营业时间ID无效")
		return
	}

	hours, err := h.repository.GetSpecialOpeningHoursByID(id)
	if err != nil {
		h.errorResponse(w, r, "特殊营业时间不存在")
		return
	}

	location := r.Context().Value(LocationCtx).(*domain.Location)
	if hours.LocationID != location.ID {
		h.errorResponse(w, r, "特殊营业时间不存在")
		return
	}

	if err := h.repository.DeleteSpecialOpeningHours(id); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除特殊营业时间成功", nil)
}

// parseDateRangeQuery 解析查询参数中的 startDate 和 endDate
func parseDateRangeQuery(r *http.Request) (time.Time, time.Time, error) {
	startParam := r.URL.Query().Get("startDate")
	endParam := r.URL.Query().Get("endDate")

	rangeStart, err := time.Parse("2006-01-02", startParam)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("开始日期格式错误")
	}
	rangeEnd, err := time.Parse("2006-01-02", endParam)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("结束日期格式错误")
	}
	if rangeStart.After(rangeEnd) {
		return time.Time{}, time.Time{}, errors.New("开始日期不能晚于结束日期")
	}

	return rangeStart, rangeEnd, nil
}

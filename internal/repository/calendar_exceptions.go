package repository

import (
	"context"
	"time"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
)

func (r *Repository) CreateBlackoutDay(day *domain.BlackoutDay) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO blackout_days (company_id, location_id, date, applies_to_company, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{day.CompanyID, day.LocationID, day.Date, day.AppliesToCompany, day.Reason}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&day.ID, &day.CreatedAt, &day.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetBlackoutDayByID(id int64) (*domain.BlackoutDay, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT company_id, location_id, date, applies_to_company, reason, created_at, version
		FROM blackout_days
		WHERE id = $1
	`

	day := &domain.BlackoutDay{
		ID: id,
	}

	dst := []any{&day.CompanyID, &day.LocationID, &day.Date, &day.AppliesToCompany, &day.Reason, &day.CreatedAt, &day.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return day, nil
}

// GetBlackoutDaysForGeneration 查询生成时需要考虑的停业日：
// 该门店自己的停业日，加上该公司所有全公司生效的停业日
func (r *Repository) GetBlackoutDaysForGeneration(companyID int64, locationID int64, rangeStart time.Time, rangeEnd time.Time) ([]*domain.BlackoutDay, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, company_id, location_id, date, applies_to_company, reason, created_at, version
		FROM blackout_days
		WHERE company_id = $1
			AND (applies_to_company = TRUE OR location_id = $2)
			AND date >= $3 AND date <= $4
		ORDER BY date, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, locationID, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]*domain.BlackoutDay, 0)
	for rows.Next() {
		day := &domain.BlackoutDay{}
		dst := []any{&day.ID, &day.CompanyID, &day.LocationID, &day.Date, &day.AppliesToCompany, &day.Reason, &day.CreatedAt, &day.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return days, nil
}

func (r *Repository) GetBlackoutDaysByCompanyID(companyID int64) ([]*domain.BlackoutDay, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, location_id, date, applies_to_company, reason, created_at, version
		FROM blackout_days
		WHERE company_id = $1
		ORDER BY date, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]*domain.BlackoutDay, 0)
	for rows.Next() {
		day := &domain.BlackoutDay{
			CompanyID: companyID,
		}
		dst := []any{&day.ID, &day.LocationID, &day.Date, &day.AppliesToCompany, &day.Reason, &day.CreatedAt, &day.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return days, nil
}

func (r *Repository) DeleteBlackoutDay(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM blackout_days WHERE id = $1
	`

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreateSpecialOpeningHours(hours *domain.SpecialOpeningHours) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO special_opening_hours (location_id, date, is_closed, open_time, close_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{hours.LocationID, hours.Date, hours.IsClosed, hours.OpenTime, hours.CloseTime}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&hours.ID, &hours.CreatedAt, &hours.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSpecialOpeningHoursByID(id int64) (*domain.SpecialOpeningHours, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT location_id, date, is_closed, open_time, close_time, created_at, version
		FROM special_opening_hours
		WHERE id = $1
	`

	hours := &domain.SpecialOpeningHours{
		ID: id,
	}

	dst := []any{&hours.LocationID, &hours.Date, &hours.IsClosed, &hours.OpenTime, &hours.CloseTime, &hours.CreatedAt, &hours.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return hours, nil
}

func (r *Repository) GetSpecialOpeningHoursByLocationID(locationID int64, rangeStart time.Time, rangeEnd time.Time) ([]*domain.SpecialOpeningHours, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, date, is_closed, open_time, close_time, created_at, version
		FROM special_opening_hours
		WHERE location_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, locationID, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*domain.SpecialOpeningHours, 0)
	for rows.Next() {
		hours := &domain.SpecialOpeningHours{
			LocationID: locationID,
		}
		dst := []any{&hours.ID, &hours.Date, &hours.IsClosed, &hours.OpenTime, &hours.CloseTime, &hours.CreatedAt, &hours.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		result = append(result, hours)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *Repository) DeleteSpecialOpeningHours(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM special_opening_hours WHERE id = $1
	`

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

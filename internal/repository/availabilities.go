package repository

import (
	"context"
	"time"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
)

func (r *Repository) CreateAvailability(record *domain.EmployeeAvailability) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO employee_availabilities (employee_id, start_date, end_date, kind, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{record.EmployeeID, record.StartDate, record.EndDate, record.Kind, record.Note}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.CreatedAt, &record.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAvailabilityByID(id int64) (*domain.EmployeeAvailability, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT employee_id, start_date, end_date, kind, note, created_at, version
		FROM employee_availabilities
		WHERE id = $1 AND deleted_at IS NULL
	`

	record := &domain.EmployeeAvailability{
		ID: id,
	}

	dst := []any{&record.EmployeeID, &record.StartDate, &record.EndDate, &record.Kind, &record.Note, &record.CreatedAt, &record.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return record, nil
}

// GetAvailabilitiesByEmployeeID 查询员工所有未删除的时间记录
func (r *Repository) GetAvailabilitiesByEmployeeID(employeeID int64) ([]*domain.EmployeeAvailability, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, start_date, end_date, kind, note, created_at, version
		FROM employee_availabilities
		WHERE employee_id = $1 AND deleted_at IS NULL
		ORDER BY start_date, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.EmployeeAvailability, 0)
	for rows.Next() {
		record := &domain.EmployeeAvailability{
			EmployeeID: employeeID,
		}
		dst := []any{&record.ID, &record.StartDate, &record.EndDate, &record.Kind, &record.Note, &record.CreatedAt, &record.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) UpdateAvailability(record *domain.EmployeeAvailability) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE employee_availabilities
		SET
			start_date = $1,
			end_date = $2,
			kind = $3,
			note = $4,
			version = version + 1
		WHERE id = $5 AND version = $6 AND deleted_at IS NULL
		RETURNING version
	`

	args := []any{record.StartDate, record.EndDate, record.Kind, record.Note, record.ID, record.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.Version); err != nil {
		return err
	}

	return nil
}

// DeleteAvailability 软删除时间记录，已删除的记录不再参与可用性判定
func (r *Repository) DeleteAvailability(record *domain.EmployeeAvailability) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE employee_availabilities
		SET
			deleted_at = NOW(),
			version = version + 1
		WHERE id = $1 AND version = $2 AND deleted_at IS NULL
		RETURNING version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, record.ID, record.Version).Scan(&record.Version); err != nil {
		return err
	}

	return nil
}

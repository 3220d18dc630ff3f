package repository

import (
	"context"
	"time"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
)

func (r *Repository) CreateShiftInstance(instance *domain.ShiftInstance) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO shift_instances (location_id, date, start_time, end_time, position, required_number, template_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	args := []any{instance.LocationID, instance.Date, instance.StartTime, instance.EndTime, instance.Position, instance.RequiredNumber, instance.TemplateID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&instance.ID, &instance.CreatedAt, &instance.Version); err != nil {
		return err
	}

	return nil
}

// CreateShiftInstancesBatch 在一个事务中写入整批生成结果，任何一条失败都会整体回滚
func (r *Repository) CreateShiftInstancesBatch(instances []*domain.ShiftInstance) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO shift_instances (location_id, date, start_time, end_time, position, required_number, template_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	for _, instance := range instances {
		args := []any{instance.LocationID, instance.Date, instance.StartTime, instance.EndTime, instance.Position, instance.RequiredNumber, instance.TemplateID}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&instance.ID, &instance.CreatedAt, &instance.Version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftInstanceByID(id int64) (*domain.ShiftInstance, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT location_id, date, start_time, end_time, position, required_number, template_id, created_at, version
		FROM shift_instances
		WHERE id = $1 AND deleted_at IS NULL
	`

	instance := &domain.ShiftInstance{
		ID: id,
	}

	dst := []any{&instance.LocationID, &instance.Date, &instance.StartTime, &instance.EndTime, &instance.Position, &instance.RequiredNumber, &instance.TemplateID, &instance.CreatedAt, &instance.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return instance, nil
}

// GetLiveShiftInstances 查询某个门店在日期范围内所有未删除的班次实例
func (r *Repository) GetLiveShiftInstances(locationID int64, rangeStart time.Time, rangeEnd time.Time) ([]*domain.ShiftInstance, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, date, start_time, end_time, position, required_number, template_id, created_at, version
		FROM shift_instances
		WHERE location_id = $1 AND date >= $2 AND date <= $3 AND deleted_at IS NULL
		ORDER BY date, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, locationID, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instances := make([]*domain.ShiftInstance, 0)
	for rows.Next() {
		instance := &domain.ShiftInstance{
			LocationID: locationID,
		}
		dst := []any{&instance.ID, &instance.Date, &instance.StartTime, &instance.EndTime, &instance.Position, &instance.RequiredNumber, &instance.TemplateID, &instance.CreatedAt, &instance.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		instances = append(instances, instance)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return instances, nil
}

// DeleteShiftInstance 软删除班次实例，已删除的实例不再参与生成时的冲突判定
func (r *Repository) DeleteShiftInstance(instance *domain.ShiftInstance) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE shift_instances
		SET
			deleted_at = NOW(),
			version = version + 1
		WHERE id = $1 AND version = $2 AND deleted_at IS NULL
		RETURNING version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, instance.ID, instance.Version).Scan(&instance.Version); err != nil {
		return err
	}

	return nil
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
)

func (r *Repository) CreateShiftTemplate(template *domain.ShiftTemplate) error {
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
		INSERT INTO shift_templates (location_id, name, position, start_time, end_time, required_number, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	args := []any{template.LocationID, template.Name, template.Position, template.StartTime, template.EndTime, template.RequiredNumber, template.IsActive}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&template.ID, &template.CreatedAt, &template.Version); err != nil {
		return err
	}

	for _, day := range template.ApplicableDays {
		query = `
			INSERT INTO shift_template_applicable_days (template_id, day)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, template.ID, day); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftTemplateByID(id int64) (*domain.ShiftTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			st.location_id,
			st.name,
			st.position,
			st.start_time,
			st.end_time,
			st.required_number,
			st.is_active,
			st.created_at,
			st.version,
			stad.day
		FROM shift_templates st
		LEFT JOIN shift_template_applicable_days stad ON st.id = stad.template_id
		WHERE st.id = $1
		ORDER BY stad.day
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	template := &domain.ShiftTemplate{
		ID:             id,
		ApplicableDays: make([]int32, 0),
	}
	found := false

	for rows.Next() {
		var row struct {
			LocationID     int64
			Name           string
			Position       string
			StartTime      string
			EndTime        string
			RequiredNumber int32
			IsActive       bool
			CreatedAt      time.Time
			Version        int32

			Day sql.NullInt32
		}

		dst := []any{
			&row.LocationID,
			&row.Name,
			&row.Position,
			&row.StartTime,
			&row.EndTime,
			&row.RequiredNumber,
			&row.IsActive,
			&row.CreatedAt,
			&row.Version,
			&row.Day,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !found {
			// 说明此时是第一次查到这个模板，需要初始化这个模板
			template.LocationID = row.LocationID
			template.Name = row.Name
			template.Position = row.Position
			template.StartTime = row.StartTime
			template.EndTime = row.EndTime
			template.RequiredNumber = row.RequiredNumber
			template.IsActive = row.IsActive
			template.CreatedAt = row.CreatedAt
			template.Version = row.Version
			found = true
		}

		if !row.Day.Valid {
			// 说明该模板不存在任何适用日期
			continue
		}

		template.ApplicableDays = append(template.ApplicableDays, row.Day.Int32)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return template, nil
}

func (r *Repository) GetShiftTemplatesByLocationID(locationID int64) ([]*domain.ShiftTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			st.id,
			st.name,
			st.position,
			st.start_time,
			st.end_time,
			st.required_number,
			st.is_active,
			st.created_at,
			st.version,
			stad.day
		FROM shift_templates st
		LEFT JOIN shift_template_applicable_days stad ON st.id = stad.template_id
		WHERE st.location_id = $1
		ORDER BY st.id, stad.day
	`

	rows, err := r.dbpool.QueryContext(ctx, query, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*domain.ShiftTemplate, 0)
	templatesMap := make(map[int64]*domain.ShiftTemplate)

	for rows.Next() {
		var row struct {
			ID             int64
			Name           string
			Position       string
			StartTime      string
			EndTime        string
			RequiredNumber int32
			IsActive       bool
			CreatedAt      time.Time
			Version        int32

			Day sql.NullInt32
		}

		dst := []any{
			&row.ID,
			&row.Name,
			&row.Position,
			&row.StartTime,
			&row.EndTime,
			&row.RequiredNumber,
			&row.IsActive,
			&row.CreatedAt,
			&row.Version,
			&row.Day,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		template, exists := templatesMap[row.ID]
		if !exists {
			// 说明此时是第一次查到这个模板，需要初始化这个模板
			template = &domain.ShiftTemplate{
				ID:             row.ID,
				LocationID:     locationID,
				Name:           row.Name,
				Position:       row.Position,
				ApplicableDays: make([]int32, 0),
				StartTime:      row.StartTime,
				EndTime:        row.EndTime,
				RequiredNumber: row.RequiredNumber,
				IsActive:       row.IsActive,
				CreatedAt:      row.CreatedAt,
				Version:        row.Version,
			}
			templatesMap[row.ID] = template
			templates = append(templates, template)
		}

		if !row.Day.Valid {
			continue
		}

		template.ApplicableDays = append(template.ApplicableDays, row.Day.Int32)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *Repository) UpdateShiftTemplate(template *domain.ShiftTemplate) error {
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
		UPDATE shift_templates
		SET
			name = $1,
			position = $2,
			start_time = $3,
			end_time = $4,
			required_number = $5,
			is_active = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	args := []any{template.Name, template.Position, template.StartTime, template.EndTime, template.RequiredNumber, template.IsActive, template.ID, template.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&template.Version); err != nil {
		return err
	}

	// 适用日期全量替换
	query = `
		DELETE FROM shift_template_applicable_days WHERE template_id = $1
	`
	if _, err := tx.ExecContext(ctx, query, template.ID); err != nil {
		return err
	}

	for _, day := range template.ApplicableDays {
		query = `
			INSERT INTO shift_template_applicable_days (template_id, day)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, template.ID, day); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShiftTemplate(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM shift_templates WHERE id = $1
	`

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

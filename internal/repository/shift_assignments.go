package repository

import (
	"context"
	"time"

	"github.com/shiftline-dev/shift-scheduler/backend/internal/domain"
)

func (r *Repository) CreateShiftAssignment(assignment *domain.ShiftAssignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO shift_assignments (shift_instance_id, employee_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	args := []any{assignment.ShiftInstanceID, assignment.EmployeeID, assignment.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftAssignmentByID(id int64) (*domain.ShiftAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT shift_instance_id, employee_id, status, created_at, version
		FROM shift_assignments
		WHERE id = $1
	`

	assignment := &domain.ShiftAssignment{
		ID: id,
	}

	dst := []any{&assignment.ShiftInstanceID, &assignment.EmployeeID, &assignment.Status, &assignment.CreatedAt, &assignment.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (r *Repository) UpdateShiftAssignment(assignment *domain.ShiftAssignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE shift_assignments
		SET
			status = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	args := []any{assignment.Status, assignment.ID, assignment.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&assignment.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftAssignmentsByInstanceID(instanceID int64) ([]*domain.ShiftAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, employee_id, status, created_at, version
		FROM shift_assignments
		WHERE shift_instance_id = $1
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, instanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.ShiftAssignment, 0)
	for rows.Next() {
		assignment := &domain.ShiftAssignment{
			ShiftInstanceID: instanceID,
		}
		dst := []any{&assignment.ID, &assignment.EmployeeID, &assignment.Status, &assignment.CreatedAt, &assignment.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// GetEmployeeShiftInstancesOnDate 查询员工在某一天所有未取消的排班对应的班次实例
func (r *Repository) GetEmployeeShiftInstancesOnDate(employeeID int64, date time.Time) ([]*domain.ShiftInstance, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT si.id, si.location_id, si.date, si.start_time, si.end_time, si.position, si.required_number, si.template_id, si.created_at, si.version
		FROM shift_assignments sa
		JOIN shift_instances si ON sa.shift_instance_id = si.id
		WHERE sa.employee_id = $1 AND sa.status != $2 AND si.date = $3 AND si.deleted_at IS NULL
		ORDER BY si.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID, domain.AssignmentStatusRemoved, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instances := make([]*domain.ShiftInstance, 0)
	for rows.Next() {
		instance := &domain.ShiftInstance{}
		dst := []any{&instance.ID, &instance.LocationID, &instance.Date, &instance.StartTime, &instance.EndTime, &instance.Position, &instance.RequiredNumber, &instance.TemplateID, &instance.CreatedAt, &instance.Version}
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

// CountActiveAssignments 统计某个班次实例上未取消的排班数量
func (r *Repository) CountActiveAssignments(instanceID int64) (int32, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT COUNT(*) FROM shift_assignments
		WHERE shift_instance_id = $1 AND status != $2
	`

	var count int32
	if err := r.dbpool.QueryRowContext(ctx, query, instanceID, domain.AssignmentStatusRemoved).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) CheckEmployeeAssignedToInstance(instanceID int64, employeeID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (
			SELECT 1 FROM shift_assignments
			WHERE shift_instance_id = $1 AND employee_id = $2 AND status != $3
		)
	`

	isExists := false
	if err := r.dbpool.QueryRowContext(ctx, query, instanceID, employeeID, domain.AssignmentStatusRemoved).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}

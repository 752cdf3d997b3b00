package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/shift"
	"github.com/vigilo-hq/vigilo-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, entity shift.Shift) (shift.Shift, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO shifts (id, name) VALUES ($1, $2) RETURNING created_at, updated_at`,
			entity.ID, entity.Name,
		).Scan(&entity.CreatedAt, &entity.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create shift: %w", err)
		}
		return insertSlots(ctx, tx, entity.ID, entity.Slots)
	})
	if err != nil {
		return shift.Shift{}, err
	}
	return entity, nil
}

func insertSlots(ctx context.Context, tx pgx.Tx, shiftID string, slots []shift.TimeSlot) error {
	for _, slot := range slots {
		_, err := tx.Exec(ctx, `
			INSERT INTO shift_slots (id, shift_id, weekday, start_time, end_time, percent, crosses_midnight)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, slot.ID, shiftID, int(slot.Weekday),
			slot.StartTime.Format("15:04:05"), slot.EndTime.Format("15:04:05"),
			slot.Percent, slot.CrossesMidnight)
		if err != nil {
			return fmt.Errorf("failed to insert shift slot: %w", err)
		}
	}
	return nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	var entity shift.Shift
	err := q.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at, deleted_at
		FROM shifts
		WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&entity.ID, &entity.Name, &entity.CreatedAt, &entity.UpdatedAt, &entity.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	entity.Slots, err = r.slotsByShiftID(ctx, id)
	if err != nil {
		return shift.Shift{}, err
	}

	return entity, nil
}

func (r *shiftRepository) slotsByShiftID(ctx context.Context, shiftID string) ([]shift.TimeSlot, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, shift_id, weekday, start_time::text, end_time::text, percent, crosses_midnight, created_at, updated_at
		FROM shift_slots
		WHERE shift_id = $1
		ORDER BY weekday
	`, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift slots: %w", err)
	}
	defer rows.Close()

	return collectSlots(rows)
}

func collectSlots(rows pgx.Rows) ([]shift.TimeSlot, error) {
	var slots []shift.TimeSlot
	for rows.Next() {
		var slot shift.TimeSlot
		var weekday int
		var startText, endText string
		err := rows.Scan(&slot.ID, &slot.ShiftID, &weekday, &startText, &endText,
			&slot.Percent, &slot.CrossesMidnight, &slot.CreatedAt, &slot.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift slot: %w", err)
		}
		slot.Weekday = shift.Weekday(weekday)
		if slot.StartTime, err = time.Parse("15:04:05", startText); err != nil {
			return nil, fmt.Errorf("failed to parse slot start time: %w", err)
		}
		if slot.EndTime, err = time.Parse("15:04:05", endText); err != nil {
			return nil, fmt.Errorf("failed to parse slot end time: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// List implements shift.ShiftRepository.
func (r *shiftRepository) List(ctx context.Context) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, created_at, updated_at, deleted_at
		FROM shifts
		WHERE deleted_at IS NULL
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var entity shift.Shift
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.CreatedAt, &entity.UpdatedAt, &entity.DeletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range shifts {
		shifts[i].Slots, err = r.slotsByShiftID(ctx, shifts[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return shifts, nil
}

// Update implements shift.ShiftRepository. The slot set is replaced wholesale.
func (r *shiftRepository) Update(ctx context.Context, entity shift.Shift) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE shifts SET name = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
			entity.ID, entity.Name)
		if err != nil {
			return fmt.Errorf("failed to update shift: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return shift.ErrShiftNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM shift_slots WHERE shift_id = $1`, entity.ID); err != nil {
			return fmt.Errorf("failed to clear shift slots: %w", err)
		}
		return insertSlots(ctx, tx, entity.ID, entity.Slots)
	})
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var assigned int64
	if err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM employees WHERE shift_id = $1 AND deleted_at IS NULL`, id,
	).Scan(&assigned); err != nil {
		return fmt.Errorf("failed to check shift assignments: %w", err)
	}
	if assigned > 0 {
		return shift.ErrShiftInUse
	}

	tag, err := q.Exec(ctx, `UPDATE shifts SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// GetSlotsByEmployeeExternalID implements shift.ShiftRepository.
func (r *shiftRepository) GetSlotsByEmployeeExternalID(ctx context.Context, externalID string) ([]shift.TimeSlot, error) {
	q := GetQuerier(ctx, r.db)

	var shiftID *string
	err := q.QueryRow(ctx, `
		SELECT shift_id FROM employees
		WHERE external_id = $1 AND deleted_at IS NULL
	`, externalID).Scan(&shiftID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shift.ErrNoShiftAssignment
		}
		return nil, fmt.Errorf("failed to look up shift assignment: %w", err)
	}
	if shiftID == nil {
		return nil, shift.ErrNoShiftAssignment
	}

	return r.slotsByShiftID(ctx, *shiftID)
}

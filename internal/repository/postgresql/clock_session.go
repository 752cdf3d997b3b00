package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/timeclock"
	"github.com/vigilo-hq/vigilo-backend-go/internal/pkg/database"
)

type clockSessionRepository struct {
	db *database.DB
}

func NewClockSessionRepository(db *database.DB) timeclock.ClockSessionRepository {
	return &clockSessionRepository{db: db}
}

const clockSessionColumns = `
	s.id, s.employee_external_id, s.device_id, s.clock_in, s.clock_out,
	s.comment, s.force_closed, s.edited_by, s.edited_at, s.created_at, s.updated_at`

func scanClockSession(row pgx.Row) (timeclock.ClockSession, error) {
	var session timeclock.ClockSession
	err := row.Scan(
		&session.ID, &session.EmployeeExternalID, &session.DeviceID,
		&session.ClockIn, &session.ClockOut,
		&session.Comment, &session.ForceClosed,
		&session.EditedBy, &session.EditedAt,
		&session.CreatedAt, &session.UpdatedAt,
	)
	return session, err
}

// Create implements timeclock.ClockSessionRepository.
func (r *clockSessionRepository) Create(ctx context.Context, session timeclock.ClockSession) (timeclock.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clock_sessions (employee_external_id, device_id, clock_in, clock_out, comment, force_closed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		session.EmployeeExternalID,
		session.DeviceID,
		session.ClockIn,
		session.ClockOut,
		session.Comment,
		session.ForceClosed,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		return timeclock.ClockSession{}, fmt.Errorf("failed to create clock session: %w", err)
	}

	return session, nil
}

// GetByID implements timeclock.ClockSessionRepository.
func (r *clockSessionRepository) GetByID(ctx context.Context, id string) (timeclock.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + clockSessionColumns + `, e.full_name AS employee_name
		FROM clock_sessions s
		LEFT JOIN employees e ON e.external_id = s.employee_external_id
		WHERE s.id = $1
	`

	var session timeclock.ClockSession
	err := q.QueryRow(ctx, query, id).Scan(
		&session.ID, &session.EmployeeExternalID, &session.DeviceID,
		&session.ClockIn, &session.ClockOut,
		&session.Comment, &session.ForceClosed,
		&session.EditedBy, &session.EditedAt,
		&session.CreatedAt, &session.UpdatedAt,
		&session.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeclock.ClockSession{}, timeclock.ErrSessionNotFound
		}
		return timeclock.ClockSession{}, fmt.Errorf("failed to get clock session: %w", err)
	}

	return session, nil
}

// GetOpenSession implements timeclock.ClockSessionRepository.
func (r *clockSessionRepository) GetOpenSession(ctx context.Context, employeeExternalID, deviceID string) (timeclock.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + clockSessionColumns + `
		FROM clock_sessions s
		WHERE s.employee_external_id = $1
		  AND s.device_id = $2
		  AND s.clock_out IS NULL
		ORDER BY s.clock_in DESC
		LIMIT 1
	`

	session, err := scanClockSession(q.QueryRow(ctx, query, employeeExternalID, deviceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeclock.ClockSession{}, timeclock.ErrSessionNotFound
		}
		return timeclock.ClockSession{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return session, nil
}

// Update implements timeclock.ClockSessionRepository.
func (r *clockSessionRepository) Update(ctx context.Context, session timeclock.ClockSession) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE clock_sessions
		SET clock_in = $2, clock_out = $3, comment = $4, force_closed = $5,
		    edited_by = $6, edited_at = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		session.ID,
		session.ClockIn,
		session.ClockOut,
		session.Comment,
		session.ForceClosed,
		session.EditedBy,
		session.EditedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update clock session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeclock.ErrSessionNotFound
	}

	return nil
}

// List implements timeclock.ClockSessionRepository.
func (r *clockSessionRepository) List(ctx context.Context, filter timeclock.SessionFilter) ([]timeclock.ClockSession, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	addArg := func(condition string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(condition, argPos))
		args = append(args, value)
		argPos++
	}

	if filter.EmployeeExternalID != "" {
		addArg("s.employee_external_id = $%d", filter.EmployeeExternalID)
	}
	if filter.From != nil {
		addArg("s.clock_in >= $%d", *filter.From)
	}
	if filter.To != nil {
		addArg("s.clock_in < $%d", *filter.To)
	}
	if filter.OpenOnly {
		conditions = append(conditions, "s.clock_out IS NULL")
	}
	if filter.ForceClosedOnly {
		conditions = append(conditions, "s.force_closed = TRUE")
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM clock_sessions s WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clock sessions: %w", err)
	}

	query := `
		SELECT` + clockSessionColumns + `, e.full_name AS employee_name
		FROM clock_sessions s
		LEFT JOIN employees e ON e.external_id = s.employee_external_id
		WHERE ` + where + `
		ORDER BY s.clock_in DESC
		LIMIT $` + fmt.Sprint(argPos) + ` OFFSET $` + fmt.Sprint(argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clock sessions: %w", err)
	}
	defer rows.Close()

	var sessions []timeclock.ClockSession
	for rows.Next() {
		var session timeclock.ClockSession
		err := rows.Scan(
			&session.ID, &session.EmployeeExternalID, &session.DeviceID,
			&session.ClockIn, &session.ClockOut,
			&session.Comment, &session.ForceClosed,
			&session.EditedBy, &session.EditedAt,
			&session.CreatedAt, &session.UpdatedAt,
			&session.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan clock session: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, total, rows.Err()
}

// ListOpenInWindow implements timeclock.ClockSessionRepository.
func (r *clockSessionRepository) ListOpenInWindow(ctx context.Context, from, to time.Time) ([]timeclock.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + clockSessionColumns + `
		FROM clock_sessions s
		WHERE s.clock_out IS NULL
		  AND s.clock_in >= $1
		  AND s.clock_in < $2
		ORDER BY s.clock_in
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// ListClosedByEmployeeInRange implements timeclock.ClockSessionRepository.
func (r *clockSessionRepository) ListClosedByEmployeeInRange(ctx context.Context, employeeExternalID string, from, to time.Time) ([]timeclock.ClockSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + clockSessionColumns + `
		FROM clock_sessions s
		WHERE s.employee_external_id = $1
		  AND s.clock_in IS NOT NULL
		  AND s.clock_out IS NOT NULL
		  AND s.clock_in >= $2
		  AND s.clock_in < $3
		ORDER BY s.clock_in
	`

	rows, err := q.Query(ctx, query, employeeExternalID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

func collectSessions(rows pgx.Rows) ([]timeclock.ClockSession, error) {
	var sessions []timeclock.ClockSession
	for rows.Next() {
		session, err := scanClockSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clock session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// ForceCloseMany implements timeclock.ClockSessionRepository. Each statement
// re-checks clock_out IS NULL so a session that was legitimately closed
// between the sweep read and this write is left untouched. Statement failures
// are joined into the returned error; the rest of the batch still applies.
func (r *clockSessionRepository) ForceCloseMany(ctx context.Context, closures []timeclock.ForceClosure) (int, error) {
	if len(closures) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE clock_sessions
		SET clock_out = $2,
		    force_closed = TRUE,
		    comment = TRIM(COALESCE(comment || ' ', '') || $3),
		    updated_at = NOW()
		WHERE id = $1
		  AND clock_out IS NULL
	`

	batch := &pgx.Batch{}
	for _, closure := range closures {
		batch.Queue(query, closure.SessionID, closure.ClockOut, closure.Marker)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	closed := 0
	var errs []error
	for _, closure := range closures {
		tag, err := results.Exec()
		if err != nil {
			errs = append(errs, fmt.Errorf("session %s: %w", closure.SessionID, err))
			continue
		}
		closed += int(tag.RowsAffected())
	}

	return closed, errors.Join(errs...)
}

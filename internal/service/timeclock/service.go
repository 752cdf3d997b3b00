package timeclock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/employee"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/timeclock"
)

type ClockSessionServiceImpl struct {
	sessionRepo  timeclock.ClockSessionRepository
	employeeRepo employee.EmployeeRepository
}

func NewClockSessionService(sessionRepo timeclock.ClockSessionRepository, employeeRepo employee.EmployeeRepository) timeclock.ClockSessionService {
	return &ClockSessionServiceImpl{
		sessionRepo:  sessionRepo,
		employeeRepo: employeeRepo,
	}
}

// RecordEvent implements timeclock.ClockSessionService. The device reports a
// bare badge event; if the employee has an open session on the same device it
// becomes the clock-out, otherwise a new session opens.
func (s *ClockSessionServiceImpl) RecordEvent(ctx context.Context, req timeclock.ClockEventRequest) (timeclock.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.SessionResponse{}, err
	}

	// Validate guarantees this parses.
	stamp, _ := time.Parse(time.RFC3339, req.Timestamp)
	stampUTC := stamp.UTC()

	if _, err := s.employeeRepo.GetByExternalID(ctx, req.EmployeeExternalID); err != nil {
		return timeclock.SessionResponse{}, err
	}

	open, err := s.sessionRepo.GetOpenSession(ctx, req.EmployeeExternalID, req.DeviceID)
	if err != nil {
		if !errors.Is(err, timeclock.ErrSessionNotFound) {
			return timeclock.SessionResponse{}, fmt.Errorf("failed to look up open session: %w", err)
		}

		created, err := s.sessionRepo.Create(ctx, timeclock.ClockSession{
			EmployeeExternalID: req.EmployeeExternalID,
			DeviceID:           req.DeviceID,
			ClockIn:            &stampUTC,
		})
		if err != nil {
			return timeclock.SessionResponse{}, fmt.Errorf("failed to create session: %w", err)
		}
		return timeclock.NewSessionResponse(created), nil
	}

	open.ClockOut = &stampUTC
	if err := s.sessionRepo.Update(ctx, open); err != nil {
		return timeclock.SessionResponse{}, fmt.Errorf("failed to close session: %w", err)
	}
	return timeclock.NewSessionResponse(open), nil
}

// Get implements timeclock.ClockSessionService.
func (s *ClockSessionServiceImpl) Get(ctx context.Context, id string) (timeclock.SessionResponse, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return timeclock.SessionResponse{}, err
	}
	return timeclock.NewSessionResponse(session), nil
}

// List implements timeclock.ClockSessionService.
func (s *ClockSessionServiceImpl) List(ctx context.Context, filter timeclock.SessionFilter) ([]timeclock.SessionResponse, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	sessions, total, err := s.sessionRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	responses := make([]timeclock.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, timeclock.NewSessionResponse(session))
	}
	return responses, total, nil
}

// Correct implements timeclock.ClockSessionService.
func (s *ClockSessionServiceImpl) Correct(ctx context.Context, id string, req timeclock.CorrectSessionRequest) (timeclock.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.SessionResponse{}, err
	}

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return timeclock.SessionResponse{}, err
	}

	if req.ClockIn != nil {
		parsed, _ := time.Parse(time.RFC3339, *req.ClockIn)
		parsedUTC := parsed.UTC()
		session.ClockIn = &parsedUTC
	}
	if req.ClockOut != nil {
		parsed, _ := time.Parse(time.RFC3339, *req.ClockOut)
		parsedUTC := parsed.UTC()
		session.ClockOut = &parsedUTC
	}
	if req.Comment != nil {
		session.Comment = req.Comment
	}

	now := time.Now().UTC()
	session.EditedAt = &now
	if editor := editorFromContext(ctx); editor != "" {
		session.EditedBy = &editor
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return timeclock.SessionResponse{}, fmt.Errorf("failed to update session: %w", err)
	}
	return timeclock.NewSessionResponse(session), nil
}

func editorFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}

package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/employee"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/report"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/shift"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/timeclock"
)

type ReportServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	sessionRepo  timeclock.ClockSessionRepository
	shiftRepo    shift.ShiftRepository
	aggregator   *Aggregator
}

func NewReportService(
	employeeRepo employee.EmployeeRepository,
	sessionRepo timeclock.ClockSessionRepository,
	shiftRepo shift.ShiftRepository,
	aggregator *Aggregator,
) report.ReportService {
	return &ReportServiceImpl{
		employeeRepo: employeeRepo,
		sessionRepo:  sessionRepo,
		shiftRepo:    shiftRepo,
		aggregator:   aggregator,
	}
}

// GenerateTimeAccounting implements report.ReportService.
func (s *ReportServiceImpl) GenerateTimeAccounting(ctx context.Context, req report.TimeAccountingRequest) ([]report.PeriodLedger, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Validate guarantees these parse.
	from, _ := time.Parse("2006-01-02", req.From)
	to, _ := time.Parse("2006-01-02", req.To)

	employees, err := s.resolveEmployees(ctx, req.EmployeeIDs)
	if err != nil {
		return nil, err
	}

	loc := s.aggregator.resolver.Location()
	rangeStart := dateInLocation(from, loc)
	rangeEnd := dateInLocation(to, loc).AddDate(0, 0, 1)

	ledgers := make([]report.PeriodLedger, 0, len(employees))
	for _, emp := range employees {
		slots, err := s.shiftRepo.GetSlotsByEmployeeExternalID(ctx, emp.ExternalID)
		if err != nil && !errors.Is(err, shift.ErrNoShiftAssignment) {
			return nil, fmt.Errorf("failed to load shift slots for employee %s: %w", emp.ID, err)
		}

		sessions, err := s.sessionRepo.ListClosedByEmployeeInRange(ctx, emp.ExternalID, rangeStart, rangeEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to load sessions for employee %s: %w", emp.ID, err)
		}

		ledgers = append(ledgers, s.aggregator.Aggregate(emp.ID, emp.FullName, sessions, slots, from, to))
	}

	return ledgers, nil
}

func (s *ReportServiceImpl) resolveEmployees(ctx context.Context, ids []string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		employees, err := s.employeeRepo.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list active employees: %w", err)
		}
		return employees, nil
	}

	employees := make([]employee.Employee, 0, len(ids))
	for _, id := range ids {
		emp, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

package report

import "context"

type ReportService interface {
	// GenerateTimeAccounting builds one PeriodLedger per requested employee
	// over the requested date range.
	GenerateTimeAccounting(ctx context.Context, req TimeAccountingRequest) ([]PeriodLedger, error)
}

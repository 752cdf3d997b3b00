package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/report"
	"github.com/vigilo-hq/vigilo-backend-go/internal/handler/http/response"
	"github.com/vigilo-hq/vigilo-backend-go/internal/pkg/export"
)

type ReportHandler interface {
	TimeAccounting(w http.ResponseWriter, r *http.Request)
	TimeAccountingExport(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// TimeAccounting implements ReportHandler.
func (h *ReportHandlerImpl) TimeAccounting(w http.ResponseWriter, r *http.Request) {
	accountingReq, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	ledgers, err := h.reportService.GenerateTimeAccounting(r.Context(), accountingReq)
	if err != nil {
		slog.Error("Time accounting service error", "error", err)
		response.HandleError(w, err)
		return
	}

	results := make([]report.LedgerResponse, 0, len(ledgers))
	for _, ledger := range ledgers {
		results = append(results, report.NewLedgerResponse(ledger))
	}

	response.Success(w, results)
}

// TimeAccountingExport implements ReportHandler. Same computation as
// TimeAccounting, delivered as a spreadsheet instead of JSON.
func (h *ReportHandlerImpl) TimeAccountingExport(w http.ResponseWriter, r *http.Request) {
	accountingReq, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	ledgers, err := h.reportService.GenerateTimeAccounting(r.Context(), accountingReq)
	if err != nil {
		slog.Error("Time accounting export service error", "error", err)
		response.HandleError(w, err)
		return
	}

	workbook, err := export.LedgerWorkbook(ledgers, accountingReq.From, accountingReq.To)
	if err != nil {
		slog.Error("Time accounting export workbook error", "error", err)
		response.InternalServerError(w, "Failed to build spreadsheet")
		return
	}

	filename := fmt.Sprintf("time-accounting_%s_%s.xlsx", accountingReq.From, accountingReq.To)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	if err := workbook.Write(w); err != nil {
		slog.Error("Time accounting export write error", "error", err)
	}
}

func (h *ReportHandlerImpl) decodeRequest(w http.ResponseWriter, r *http.Request) (report.TimeAccountingRequest, bool) {
	var accountingReq report.TimeAccountingRequest

	if err := json.NewDecoder(r.Body).Decode(&accountingReq); err != nil {
		slog.Error("Time accounting decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return accountingReq, false
	}

	if err := accountingReq.Validate(); err != nil {
		response.HandleError(w, err)
		return accountingReq, false
	}

	return accountingReq, true
}

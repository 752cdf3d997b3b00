package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/timeclock"
	"github.com/vigilo-hq/vigilo-backend-go/internal/handler/http/response"
)

type TimeclockHandler interface {
	RecordEvent(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Correct(w http.ResponseWriter, r *http.Request)
}

type TimeclockHandlerImpl struct {
	sessionService timeclock.ClockSessionService
}

func NewTimeclockHandler(sessionService timeclock.ClockSessionService) TimeclockHandler {
	return &TimeclockHandlerImpl{sessionService: sessionService}
}

// RecordEvent implements TimeclockHandler.
func (h *TimeclockHandlerImpl) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var eventReq timeclock.ClockEventRequest

	if err := json.NewDecoder(r.Body).Decode(&eventReq); err != nil {
		slog.Error("Record clock event decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := eventReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	session, err := h.sessionService.RecordEvent(r.Context(), eventReq)
	if err != nil {
		slog.Error("Record clock event service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock event recorded", session)
}

// Get implements TimeclockHandler.
func (h *TimeclockHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	session, err := h.sessionService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, session)
}

// List implements TimeclockHandler.
func (h *TimeclockHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := timeclock.SessionFilter{
		EmployeeExternalID: query.Get("employee_external_id"),
		OpenOnly:           query.Get("open") == "true",
		ForceClosedOnly:    query.Get("force_closed") == "true",
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(w, "from must be a valid RFC3339 datetime", nil)
			return
		}
		filter.From = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(w, "to must be a valid RFC3339 datetime", nil)
			return
		}
		filter.To = &to
	}

	sessions, total, err := h.sessionService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List clock sessions service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, sessions, paginationMeta(filter.Page, filter.Limit, total))
}

// Correct implements TimeclockHandler.
func (h *TimeclockHandlerImpl) Correct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var correctReq timeclock.CorrectSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&correctReq); err != nil {
		slog.Error("Correct clock session decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := correctReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	session, err := h.sessionService.Correct(r.Context(), id, correctReq)
	if err != nil {
		slog.Error("Correct clock session service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock session corrected", session)
}

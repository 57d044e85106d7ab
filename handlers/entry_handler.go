package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sarzhanov/fishing-live/middleware"
	"github.com/sarzhanov/fishing-live/services"
)

type EntryHandler struct {
	entryService services.EntryService
}

func NewEntryHandler(es services.EntryService) *EntryHandler {
	return &EntryHandler{entryService: es}
}

func (h *EntryHandler) CreateHourlyEntry(w http.ResponseWriter, r *http.Request) {
	judgeID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.HourlyEntryInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entry, err := h.entryService.CreateHourlyEntry(r.Context(), judgeID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"entry": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EntryHandler) CorrectHourlyEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := idFromURL(r, "entryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.HourlyEntryInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entry, err := h.entryService.CorrectHourlyEntry(r.Context(), entryID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"entry": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EntryHandler) SubmitHourlyEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := idFromURL(r, "entryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entry, err := h.entryService.SubmitHourlyEntry(r.Context(), entryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"entry": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LockHourlyEntry finalizes an entry so it starts counting toward the
// standings. ?offline=true marks a manual reconciliation of paper records.
func (h *EntryHandler) LockHourlyEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := idFromURL(r, "entryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	role, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user role")
		return
	}
	offline, _ := strconv.ParseBool(r.URL.Query().Get("offline"))

	entry, err := h.entryService.LockHourlyEntry(r.Context(), entryID, role, offline)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"entry": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EntryHandler) ListHourlyEntries(w http.ResponseWriter, r *http.Request) {
	competitorID, err := idFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	hour, err := strconv.Atoi(r.URL.Query().Get("hour"))
	if err != nil || hour < 1 {
		badRequestResponse(w, r, errors.New("hour query parameter must be a positive integer"))
		return
	}

	entries, err := h.entryService.ListHourlyEntries(r.Context(), competitorID, hour)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"entries": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EntryHandler) RecordBigCatch(w http.ResponseWriter, r *http.Request) {
	judgeID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.BigCatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entry, err := h.entryService.RecordBigCatch(r.Context(), judgeID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"big_catch": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EntryHandler) SubmitBigCatch(w http.ResponseWriter, r *http.Request) {
	competitorID, err := idFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entry, err := h.entryService.SubmitBigCatch(r.Context(), competitorID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"big_catch": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EntryHandler) LockBigCatch(w http.ResponseWriter, r *http.Request) {
	competitorID, err := idFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	role, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user role")
		return
	}
	offline, _ := strconv.ParseBool(r.URL.Query().Get("offline"))

	entry, err := h.entryService.LockBigCatch(r.Context(), competitorID, role, offline)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"big_catch": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

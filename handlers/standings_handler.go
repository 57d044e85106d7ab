package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sarzhanov/fishing-live/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

// GetStandings returns all standings grouped by sector, or a single sector
// when the {sector} URL parameter is present.
func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	sector := chi.URLParam(r, "sector")

	standings, err := h.standingsService.GetStandings(r.Context(), sector)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetGeneralRanking returns all competitors in general-ranking order.
func (h *StandingsHandler) GetGeneralRanking(w http.ResponseWriter, r *http.Request) {
	standings, err := h.standingsService.GeneralRanking(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetCompetitorStanding returns one competitor's standing for detail views.
func (h *StandingsHandler) GetCompetitorStanding(w http.ResponseWriter, r *http.Request) {
	competitorID, err := idFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standing, err := h.standingsService.GetStanding(r.Context(), competitorID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standing": standing}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

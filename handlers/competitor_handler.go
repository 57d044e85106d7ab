package handlers

import (
	"errors"
	"net/http"

	"github.com/sarzhanov/fishing-live/models"
	"github.com/sarzhanov/fishing-live/services"
)

const maxPhotoSize = 5 << 20 // 5MB

type CompetitorHandler struct {
	competitorService services.CompetitorService
}

func NewCompetitorHandler(cs services.CompetitorService) *CompetitorHandler {
	return &CompetitorHandler{competitorService: cs}
}

func (h *CompetitorHandler) List(w http.ResponseWriter, r *http.Request) {
	competitors, err := h.competitorService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"competitors": competitors}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CompetitorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	competitor, err := h.competitorService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"competitor": competitor}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CompetitorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CompetitorInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	competitor, err := h.competitorService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"competitor": competitor}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CompetitorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CompetitorInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	competitor, err := h.competitorService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"competitor": competitor}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete removes a competitor; one that already has judged entries is
// deactivated instead, and the client is told so with 409.
func (h *CompetitorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.competitorService.Remove(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "competitor deleted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CompetitorHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Status models.CompetitorStatus `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	competitor, err := h.competitorService.SetStatus(r.Context(), id, input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"competitor": competitor}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CompetitorHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		badRequestResponse(w, r, errors.New("failed to parse multipart form"))
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		badRequestResponse(w, r, errors.New("photo file is required"))
		return
	}
	defer file.Close()

	competitor, err := h.competitorService.UploadPhoto(r.Context(), id, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"competitor": competitor}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package intake

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"metabotwin/internal/risk"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Create(r.Context())
	if err != nil {
		http.Error(w, "Failed to create intake session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, session)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.svc.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "Intake session not found", http.StatusNotFound)
		return
	}

	writeJSON(w, session)
}

func (h *Handler) AdvanceStep(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var in StepInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	session, err := h.svc.Advance(r.Context(), id, in)
	if err != nil {
		writeStepError(w, err)
		return
	}

	writeJSON(w, session)
}

func (h *Handler) BackStep(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.svc.Back(r.Context(), id)
	if err != nil {
		http.Error(w, "Intake session not found", http.StatusNotFound)
		return
	}

	writeJSON(w, session)
}

// AssessRequest carries optional slider positions; omitted sliders fall
// back to the intake vitals.
type AssessRequest struct {
	Adjustments *risk.Adjustments `json:"adjustments"`
}

func (h *Handler) Assess(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req AssessRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	result, err := h.svc.Assess(r.Context(), id, req.Adjustments)
	if err != nil {
		writeStepError(w, err)
		return
	}

	writeJSON(w, result)
}

func (h *Handler) SaveToHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req AssessRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	if err := h.svc.SaveResult(r.Context(), id, req.Adjustments); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			writeStepError(w, err)
			return
		}
		http.Error(w, "Save failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"status": "saved"})
}

func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	pdfData, err := h.svc.Report(r.Context(), id)
	if err != nil {
		writeStepError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="report_%s.pdf"`, id))
	w.Write(pdfData)
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeStepError maps recoverable validation failures to 422 with the
// offending field, anything else to 500.
func writeStepError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{
			"field": vErr.Field,
			"error": vErr.Reason,
		})
		return
	}
	http.Error(w, "Processing failed: "+err.Error(), http.StatusInternalServerError)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/intake", h.CreateSession)
	r.Get("/intake/{id}", h.GetSession)
	r.Post("/intake/{id}/advance", h.AdvanceStep)
	r.Post("/intake/{id}/back", h.BackStep)
	r.Post("/intake/{id}/assess", h.Assess)
	r.Post("/intake/{id}/save", h.SaveToHistory)
	r.Get("/intake/{id}/report", h.DownloadReport)
}

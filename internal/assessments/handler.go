package assessments

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lsat-prep/diagnostics/internal/logger"
	"github.com/lsat-prep/diagnostics/internal/middleware"
	"github.com/lsat-prep/diagnostics/internal/models"
)

const maxBodyBytes = 4 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes registers the assessment endpoints on a protected subrouter.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/diagnostics", h.Diagnose).Methods("POST")
	r.HandleFunc("/diagnostics/batch", h.DiagnoseBatch).Methods("POST")
	r.HandleFunc("/assessments", h.ImportAssessment).Methods("POST")
	r.HandleFunc("/assessments/{id:[0-9]+}", h.GetAssessment).Methods("GET")
	r.HandleFunc("/assessments/{id:[0-9]+}/diagnose", h.DiagnoseAssessment).Methods("POST")
}

func (h *Handler) Diagnose(w http.ResponseWriter, r *http.Request) {
	var req models.DiagnoseRequest
	if !decodeBody(w, r, SchemaDiagnose, &req) {
		return
	}

	profile, err := h.service.Diagnose(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.DiagnoseResponse{Profile: profile})
}

func (h *Handler) DiagnoseBatch(w http.ResponseWriter, r *http.Request) {
	var req models.DiagnoseBatchRequest
	if !decodeBody(w, r, SchemaBatch, &req) {
		return
	}

	profiles, err := h.service.DiagnoseBatch(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.DiagnoseBatchResponse{Profiles: profiles})
}

func (h *Handler) ImportAssessment(w http.ResponseWriter, r *http.Request) {
	var req models.ImportAssessmentRequest
	if !decodeBody(w, r, SchemaImport, &req) {
		return
	}

	var createdBy *int64
	if uid, ok := middleware.UserIDFromContext(r.Context()); ok {
		createdBy = &uid
	}

	a, err := h.service.ImportAssessment(r.Context(), req, createdBy)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	a, err := h.service.GetAssessment(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) DiagnoseAssessment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.SubmitResponsesRequest
	if !decodeBody(w, r, SchemaResponses, &req) {
		return
	}

	narrate, _ := strconv.ParseBool(r.URL.Query().Get("narrate"))
	resp, err := h.service.DiagnoseAssessment(r.Context(), id, req, narrate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ── Helpers ─────────────────────────────────────────────

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid assessment id"})
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, schema string, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "Request body too large"})
		return false
	}
	if err := ValidatePayload(schema, body); err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		} else {
			logger.FromContext(r.Context()).Error("schema validation unavailable", "error", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		}
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrAssessmentNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Assessment not found"})
	case IsClientError(err):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	default:
		logger.FromContext(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

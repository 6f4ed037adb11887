package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pay-managing/api-payments/internal/evidence"
	"github.com/pay-managing/api-payments/internal/logger"
)

// Handler wires the payment lifecycle onto HTTP. Derivation happens on every
// read and update; only updates persist the derived status.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Evidence   evidence.Store
	log        zerolog.Logger
}

func NewHandler(db *gorm.DB, store evidence.Store) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Evidence:   store,
		log:        logger.WithComponent("payments"),
	}
}

// GET /payments?search=&filter_status=&page=&limit=
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Repository.ListAll(h.DB)
	if err != nil {
		h.log.Error().Err(err).Msg("listing payment records")
		http.Error(w, "error listing payments", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	for i := range recs {
		recs[i].Derive(now)
	}

	q := ListQuery{
		Search: r.URL.Query().Get("search"),
		Status: Status(r.URL.Query().Get("filter_status")),
	}
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	q.PageSize, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	page, total := Compose(recs, q)
	writeJSON(w, http.StatusOK, ListResponse{Payments: page, TotalItems: total})
}

// GET /payments/{id}
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		h.respondError(w, err, "fetching payment record")
		return
	}
	rec.Derive(time.Now().UTC())
	writeJSON(w, http.StatusOK, map[string]any{"payment": rec})
}

// POST /payments
// Intentionally permissive: bulk import is the validated path, single-record
// create accepts whatever fields the caller sends.
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var rec PaymentRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if rec.PayeeAddedDateUTC.IsZero() {
		rec.PayeeAddedDateUTC = time.Now().UTC()
	}
	if rec.PayeePaymentStatus == "" {
		rec.PayeePaymentStatus = StatusPending
	}
	if err := h.Repository.Create(h.DB, &rec); err != nil {
		h.log.Error().Err(err).Msg("creating payment record")
		http.Error(w, "error creating payment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"insertedId": rec.ID})
}

// PUT /payments/{id}
func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		h.respondError(w, err, "fetching payment record")
		return
	}

	var req UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	req.ApplyTo(rec)
	rec.Derive(time.Now().UTC())
	if err := h.Repository.Update(h.DB, rec); err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("updating payment record")
		http.Error(w, "error updating payment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":        "payment updated",
		"updatedPayment": rec,
	})
}

// DELETE /payments/{id}
func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	affected, err := h.Repository.Delete(h.DB, id)
	if err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("deleting payment record")
		http.Error(w, "error deleting payment", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		http.Error(w, "payment not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "payment deleted"})
}

// POST /upload_evidence/{id}  (multipart field: evidence_file)
// The blob write and the status update are two separate calls with no
// rollback; an orphaned blob after a failed update is accepted.
func (h *Handler) UploadEvidence(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		h.respondError(w, err, "fetching payment record")
		return
	}

	file, header, err := r.FormFile("evidence_file")
	if err != nil {
		http.Error(w, "evidence_file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !evidence.AllowedExtension(header.Filename) {
		http.Error(w, ErrUnsupportedFileType.Error(), http.StatusBadRequest)
		return
	}
	if rec.PayeePaymentStatus == StatusCompleted && rec.EvidenceFileURL != "" {
		http.Error(w, ErrEvidenceConflict.Error(), http.StatusConflict)
		return
	}

	key := evidence.ObjectKey(rec.ID, header.Filename)
	fileURL, err := h.Evidence.Put(r.Context(), key, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("storing evidence blob")
		http.Error(w, "error storing evidence", http.StatusInternalServerError)
		return
	}

	rec.PayeePaymentStatus = StatusCompleted
	rec.EvidenceFileURL = fileURL
	rec.EvidenceFileName = header.Filename
	rec.Derive(time.Now().UTC())
	if err := h.Repository.Update(h.DB, rec); err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("persisting evidence attachment")
		http.Error(w, "error updating payment", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "evidence uploaded",
		"fileUrl": fileURL,
	})
}

// GET /download_evidence/{id}
func (h *Handler) DownloadEvidence(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		h.respondError(w, err, "fetching payment record")
		return
	}
	if rec.EvidenceFileURL == "" {
		http.Error(w, "no evidence attached", http.StatusNotFound)
		return
	}

	body, err := h.Evidence.Get(r.Context(), rec.EvidenceFileURL)
	if err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("fetching evidence blob")
		http.Error(w, "error fetching evidence", http.StatusBadGateway)
		return
	}
	defer body.Close()

	filename := rec.EvidenceFileName
	if filename == "" {
		filename = "evidence"
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, body); err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("streaming evidence")
	}
}

// parseID rejects structurally invalid identifiers with a 400.
func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, ErrInvalidID.Error(), http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) respondError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, ErrNotFound.Error(), http.StatusNotFound)
		return
	}
	h.log.Error().Err(err).Msg(msg)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

package receipt

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/petty-cash-management/internal/auth"
	"github.com/frahmantamala/petty-cash-management/internal/transport"
	"github.com/frahmantamala/petty-cash-management/pkg/logger"
)

const maxUploadBytes = 10 << 20

type ServiceAPI interface {
	Attach(requestID, uploadedBy int64, filePath string, dto AttachReceiptDTO) (*Receipt, error)
	GetByRequestID(requestID int64) (*Receipt, error)
	ListPendingReceipts() ([]*PendingReceipt, error)
}

// FileSaver stores an uploaded file and returns its opaque path.
type FileSaver interface {
	Save(filename string, content io.Reader) (string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Files   FileSaver
}

func NewHandler(service ServiceAPI, files FileSaver) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		Files:       files,
	}
}

// AttachReceipt accepts a JSON body with receipt metadata and records it
// against the request.
func (h *Handler) AttachReceipt(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	requestID, ok := h.requestIDParam(w, r)
	if !ok {
		return
	}

	var dto AttachReceiptDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AttachReceipt: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.Attach(requestID, actor.ID, "", dto)
	if err != nil {
		h.Logger.Error("AttachReceipt: service error", "error", err, "request_id", requestID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, rec)
}

// UploadReceipt accepts a multipart form with a "file" part plus optional
// metadata fields, stores the file and records the receipt.
func (h *Handler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	requestID, ok := h.requestIDParam(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.Logger.Error("UploadReceipt: invalid multipart form", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.Logger.Error("UploadReceipt: missing file part", "error", err)
		h.WriteError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	dto := AttachReceiptDTO{
		Merchant: r.FormValue("merchant"),
		Notes:    r.FormValue("notes"),
	}
	if amountStr := r.FormValue("amount"); amountStr != "" {
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid amount")
			return
		}
		dto.Amount = amount
	}

	storedPath, err := h.Files.Save(header.Filename, file)
	if err != nil {
		h.Logger.Error("UploadReceipt: file store failed", "error", err, "request_id", requestID)
		h.WriteError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	rec, err := h.Service.Attach(requestID, actor.ID, storedPath, dto)
	if err != nil {
		h.Logger.Error("UploadReceipt: service error", "error", err, "request_id", requestID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, rec)
}

func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	requestID, ok := h.requestIDParam(w, r)
	if !ok {
		return
	}

	rec, err := h.Service.GetByRequestID(requestID)
	if err != nil {
		h.Logger.Error("GetReceipt: service error", "error", err, "request_id", requestID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) ListPendingReceipts(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Service.ListPendingReceipts()
	if err != nil {
		h.Logger.Error("ListPendingReceipts: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"pending": pending})
}

func (h *Handler) requestIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid request ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid request ID")
		return 0, false
	}
	return id, true
}

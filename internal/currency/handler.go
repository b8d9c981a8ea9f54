package currency

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/petty-cash-management/internal/transport"
	"github.com/frahmantamala/petty-cash-management/pkg/logger"
)

type ServiceAPI interface {
	ListCurrencies() ([]*Currency, error)
	SaveCurrency(dto SaveCurrencyDTO) (*Currency, error)
	SetDefaultCurrency(id int64) (*Currency, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.Service.ListCurrencies()
	if err != nil {
		h.Logger.Error("ListCurrencies: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"currencies": currencies})
}

func (h *Handler) SaveCurrency(w http.ResponseWriter, r *http.Request) {
	var dto SaveCurrencyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SaveCurrency: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.SaveCurrency(dto)
	if err != nil {
		h.Logger.Error("SaveCurrency: service error", "error", err, "code", dto.Code)
		h.HandleServiceError(w, err)
		return
	}

	status := http.StatusOK
	if dto.ID == 0 {
		status = http.StatusCreated
	}
	h.WriteJSON(w, status, c)
}

func (h *Handler) SetDefaultCurrency(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("SetDefaultCurrency: invalid currency ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid currency ID")
		return
	}

	c, err := h.Service.SetDefaultCurrency(id)
	if err != nil {
		h.Logger.Error("SetDefaultCurrency: service error", "error", err, "currency_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

package rule

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
	ListRules() ([]*ApprovalRule, error)
	SaveRule(dto SaveRuleDTO) (*ApprovalRule, error)
	DeactivateRule(ruleID int64) (*ApprovalRule, error)
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

func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.Service.ListRules()
	if err != nil {
		h.Logger.Error("ListRules: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"rules": rules})
}

func (h *Handler) SaveRule(w http.ResponseWriter, r *http.Request) {
	var dto SaveRuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SaveRule: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rule, err := h.Service.SaveRule(dto)
	if err != nil {
		h.Logger.Error("SaveRule: service error", "error", err, "approver_id", dto.ApproverID)
		h.HandleServiceError(w, err)
		return
	}

	status := http.StatusOK
	if dto.ID == 0 {
		status = http.StatusCreated
	}
	h.WriteJSON(w, status, rule)
}

func (h *Handler) DeactivateRule(w http.ResponseWriter, r *http.Request) {
	ruleIDStr := chi.URLParam(r, "id")
	ruleID, err := strconv.ParseInt(ruleIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("DeactivateRule: invalid rule ID", "id", ruleIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid rule ID")
		return
	}

	rule, err := h.Service.DeactivateRule(ruleID)
	if err != nil {
		h.Logger.Error("DeactivateRule: service error", "error", err, "rule_id", ruleID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rule)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/freshdeli/console/internal/application/ports"
	"github.com/freshdeli/console/internal/domain/delivery"
	"github.com/freshdeli/console/internal/infrastructure/http/middleware"
	"github.com/freshdeli/console/internal/infrastructure/http/response"
	"github.com/freshdeli/console/internal/infrastructure/monitoring"
	"github.com/freshdeli/console/internal/pkg/logger"
)

const (
	defaultOrderPageSize = 50
	maxOrderPageSize     = 200
)

type DeliveryHandler struct {
	deliveryRepo ports.DeliveryRepository
	logger       *logger.Logger
}

func NewDeliveryHandler(deliveryRepo ports.DeliveryRepository, log *logger.Logger) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryRepo: deliveryRepo,
		logger:       log,
	}
}

type FeeTierPayload struct {
	MinSubtotal int64 `json:"min_subtotal"`
	Fee         int64 `json:"fee"`
}

type WindowPayload struct {
	Label    string `json:"label"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}

type SettingsPayload struct {
	Tiers   []FeeTierPayload `json:"fee_tiers"`
	Windows []WindowPayload  `json:"windows"`
}

func (h *DeliveryHandler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getSettings(w, r)
	case http.MethodPut:
		h.putSettings(w, r)
	default:
		response.WriteError(w, http.StatusMethodNotAllowed, response.StatusError, "Method not allowed")
	}
}

func (h *DeliveryHandler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.deliveryRepo.GetSettings(r.Context())
	if err != nil {
		h.logger.Error("Failed to load delivery settings", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	payload := SettingsPayload{
		Tiers:   make([]FeeTierPayload, 0, len(settings.Tiers)),
		Windows: make([]WindowPayload, 0, len(settings.Windows)),
	}
	for _, tier := range settings.Tiers {
		payload.Tiers = append(payload.Tiers, FeeTierPayload{MinSubtotal: tier.MinSubtotal, Fee: tier.Fee})
	}
	for _, window := range settings.Windows {
		payload.Windows = append(payload.Windows, WindowPayload{
			Label:    window.Label,
			StartsAt: window.StartsAt,
			EndsAt:   window.EndsAt,
		})
	}

	response.WriteSuccess(w, payload)
}

func (h *DeliveryHandler) putSettings(w http.ResponseWriter, r *http.Request) {
	var payload SettingsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	validationErrors := make(map[string]string)
	for _, tier := range payload.Tiers {
		if tier.MinSubtotal < 0 || tier.Fee < 0 {
			validationErrors["fee_tiers"] = "Tier thresholds and fees must not be negative"
			break
		}
	}
	for _, window := range payload.Windows {
		if window.Label == "" || !validClockTime(window.StartsAt) || !validClockTime(window.EndsAt) {
			validationErrors["windows"] = "Windows need a label and HH:MM start/end times"
			break
		}
	}
	if len(validationErrors) > 0 {
		response.WriteValidationError(w, "Validation failed", validationErrors)
		return
	}

	settings := &delivery.Settings{
		Tiers:   make([]delivery.FeeTier, 0, len(payload.Tiers)),
		Windows: make([]delivery.Window, 0, len(payload.Windows)),
	}
	for _, tier := range payload.Tiers {
		settings.Tiers = append(settings.Tiers, delivery.FeeTier{MinSubtotal: tier.MinSubtotal, Fee: tier.Fee})
	}
	for _, window := range payload.Windows {
		settings.Windows = append(settings.Windows, delivery.Window{
			Label:    window.Label,
			StartsAt: window.StartsAt,
			EndsAt:   window.EndsAt,
		})
	}

	if err := h.deliveryRepo.SaveSettings(r.Context(), settings); err != nil {
		h.logger.Error("Failed to save delivery settings", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, payload)
}

func validClockTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

type OrderResponse struct {
	ID            int64  `json:"id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
	WindowID      int64  `json:"window_id"`
	Status        string `json:"status"`
	Subtotal      int64  `json:"subtotal"`
	Fee           int64  `json:"fee"`
	Total         int64  `json:"total"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func orderResponse(order delivery.Order) OrderResponse {
	return OrderResponse{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Address:       order.Address,
		WindowID:      order.WindowID,
		Status:        string(order.Status),
		Subtotal:      order.Subtotal,
		Fee:           order.Fee,
		Total:         order.Total(),
		CreatedAt:     order.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     order.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *DeliveryHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultOrderPageSize)
	if limit < 1 || limit > maxOrderPageSize {
		limit = defaultOrderPageSize
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	orders, err := h.deliveryRepo.ListOrders(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list orders", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, orderResponse(order))
	}
	response.WriteSuccess(w, responses)
}

type StatusChangeRequest struct {
	Status string `json:"status"`
}

// HandleOrderStatus moves an order through its state machine. The new status
// is validated against the allowed transitions before anything is written.
func (h *DeliveryHandler) HandleOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := orderIDFromPath(w, r)
	if !ok {
		return
	}

	var req StatusChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}
	if !delivery.ValidStatus(req.Status) {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"status": "Unknown order status",
		})
		return
	}

	order, err := h.deliveryRepo.GetOrderByID(r.Context(), id)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	previous := order.Status
	if err := order.TransitionTo(delivery.Status(req.Status)); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	if err := h.deliveryRepo.UpdateOrderStatus(r.Context(), id, order.Status); err != nil {
		h.logger.Error("Failed to update order status", "error", err.Error(), "order_id", id)
		response.WriteDomainError(w, err)
		return
	}

	monitoring.RecordOrderStatusChange(string(previous), string(order.Status))
	h.logger.Info("Order status changed",
		"order_id", id,
		"from", string(previous),
		"to", string(order.Status),
		"operator", middleware.OperatorFromContext(r.Context()),
	)

	response.WriteSuccess(w, orderResponse(*order))
}

func orderIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	path := strings.TrimPrefix(r.URL.Path, "/admin/orders/")
	idPart := strings.SplitN(path, "/", 2)[0]

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"order_id": "Order ID must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/freshdeli/console/internal/application/ports"
	"github.com/freshdeli/console/internal/domain/delivery"
	domainErrors "github.com/freshdeli/console/internal/domain/errors"
	"github.com/freshdeli/console/internal/infrastructure/http/response"
	"github.com/freshdeli/console/internal/pkg/clock"
	"github.com/freshdeli/console/internal/pkg/logger"
)

// StorefrontHandler serves the public catalog. The rendered bucket list is
// cached in Redis; any admin write invalidates it, and a TTL bounds staleness
// across the bucket boundary at midnight JST.
type StorefrontHandler struct {
	catalogRepo  ports.CatalogRepository
	deliveryRepo ports.DeliveryRepository
	cache        ports.Cache
	cacheTTL     time.Duration
	clk          clock.Clock
	logger       *logger.Logger
}

func NewStorefrontHandler(
	catalogRepo ports.CatalogRepository,
	deliveryRepo ports.DeliveryRepository,
	cache ports.Cache,
	cacheTTL time.Duration,
	clk clock.Clock,
	log *logger.Logger,
) *StorefrontHandler {
	return &StorefrontHandler{
		catalogRepo:  catalogRepo,
		deliveryRepo: deliveryRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		clk:          clk,
		logger:       log,
	}
}

type StorefrontItemResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Stock    int    `json:"stock"`
	ImageURL string `json:"image_url"`
}

type StorefrontBucketResponse struct {
	Key   string                   `json:"key"`
	Items []StorefrontItemResponse `json:"items"`
}

func (h *StorefrontHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok, err := h.cache.GetStorefrontCatalog(ctx); err != nil {
		h.logger.Warn("Storefront cache read failed", "error", err.Error())
	} else if ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(cached)
		return
	}

	items, err := h.catalogRepo.ListItems(ctx)
	if err != nil {
		h.logger.Error("Failed to list items for storefront", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	buckets := BuildBucketResponses(items, h.clk.Now())

	// Storefront listings hide empty buckets and rank internals.
	storefront := make([]StorefrontBucketResponse, 0, len(buckets))
	for _, bucket := range buckets {
		if len(bucket.Items) == 0 {
			continue
		}
		sb := StorefrontBucketResponse{
			Key:   bucket.Key,
			Items: make([]StorefrontItemResponse, 0, len(bucket.Items)),
		}
		for _, item := range bucket.Items {
			sb.Items = append(sb.Items, StorefrontItemResponse{
				ID:       item.ID,
				Name:     item.Name,
				Price:    item.Price,
				Stock:    item.Stock,
				ImageURL: item.ImageURL,
			})
		}
		storefront = append(storefront, sb)
	}

	payload, err := json.Marshal(storefront)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	if err := h.cache.SetStorefrontCatalog(ctx, payload, h.cacheTTL); err != nil {
		h.logger.Warn("Storefront cache write failed", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

type PlaceOrderRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
	WindowID      int64  `json:"window_id"`
	Subtotal      int64  `json:"subtotal"`
}

// HandlePlaceOrder takes a checkout request: the delivery fee is computed
// server-side from the configured tiers, never trusted from the client.
func (h *StorefrontHandler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	validationErrors := make(map[string]string)
	if req.CustomerName == "" {
		validationErrors["customer_name"] = "Customer name is required"
	}
	if req.CustomerPhone == "" {
		validationErrors["customer_phone"] = "Customer phone is required"
	}
	if req.Address == "" {
		validationErrors["address"] = "Address is required"
	}
	if req.Subtotal < 0 {
		validationErrors["subtotal"] = "Subtotal must not be negative"
	}
	if len(validationErrors) > 0 {
		response.WriteValidationError(w, "Validation failed", validationErrors)
		return
	}

	settings, err := h.deliveryRepo.GetSettings(ctx)
	if err != nil {
		h.logger.Error("Failed to load delivery settings", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}
	if _, ok := settings.WindowByID(req.WindowID); !ok {
		response.WriteDomainError(w, domainErrors.ErrWindowNotFound)
		return
	}

	order := &delivery.Order{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Address:       req.Address,
		WindowID:      req.WindowID,
		Status:        delivery.StatusPending,
		Subtotal:      req.Subtotal,
		Fee:           settings.FeeFor(req.Subtotal),
	}

	if err := h.deliveryRepo.CreateOrder(ctx, order); err != nil {
		h.logger.Error("Failed to create order", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	h.logger.Info("Order placed", "order_id", order.ID, "window_id", order.WindowID, "total", order.Total())

	response.WriteJSON(w, http.StatusCreated, response.Success(orderResponse(*order)))
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/freshdeli/console/internal/application/commands"
	"github.com/freshdeli/console/internal/application/ports"
	"github.com/freshdeli/console/internal/application/use_cases"
	"github.com/freshdeli/console/internal/domain/catalog"
	"github.com/freshdeli/console/internal/infrastructure/http/response"
	"github.com/freshdeli/console/internal/pkg/clock"
	"github.com/freshdeli/console/internal/pkg/logger"
)

type CatalogHandler struct {
	catalogRepo ports.CatalogRepository
	cache       ports.Cache
	bulkMove    *use_cases.BulkMoveUseCase
	clk         clock.Clock
	logger      *logger.Logger
}

func NewCatalogHandler(
	catalogRepo ports.CatalogRepository,
	cache ports.Cache,
	bulkMove *use_cases.BulkMoveUseCase,
	clk clock.Clock,
	log *logger.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		catalogRepo: catalogRepo,
		cache:       cache,
		bulkMove:    bulkMove,
		clk:         clk,
		logger:      log,
	}
}

type ItemResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    int64   `json:"price"`
	Stock    int     `json:"stock"`
	ImageURL string  `json:"image_url"`
	SellDate *string `json:"sell_date"`
	Rank     *int    `json:"rank"`
}

type BucketResponse struct {
	Key   string         `json:"key"`
	Items []ItemResponse `json:"items"`
}

func itemResponse(item catalog.Item) ItemResponse {
	resp := ItemResponse{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Stock:    item.Stock,
		ImageURL: item.ImageURL,
		Rank:     item.Rank,
	}
	if item.SellDate != nil {
		s := item.SellDate.String()
		resp.SellDate = &s
	}
	return resp
}

// BuildBucketResponses groups items and renders buckets in display order.
// Shared by the admin catalog view and the storefront listing.
func BuildBucketResponses(items []catalog.Item, now time.Time) []BucketResponse {
	buckets := catalog.Group(items, now)

	responses := make([]BucketResponse, 0, len(buckets))
	for _, key := range catalog.SortedKeys(buckets) {
		bucket := BucketResponse{
			Key:   key.String(),
			Items: make([]ItemResponse, 0, len(buckets[key])),
		}
		for _, item := range buckets[key] {
			bucket.Items = append(bucket.Items, itemResponse(item))
		}
		responses = append(responses, bucket)
	}
	return responses
}

func (h *CatalogHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.catalogRepo.ListItems(ctx)
	if err != nil {
		h.logger.Error("Failed to list items", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, BuildBucketResponses(items, h.clk.Now()))
}

type ItemRequest struct {
	Name     string  `json:"name"`
	Price    int64   `json:"price"`
	Stock    int     `json:"stock"`
	ImageURL string  `json:"image_url"`
	SellDate *string `json:"sell_date"`
	Rank     *int    `json:"rank"`
}

func (req ItemRequest) toItem() (catalog.Item, map[string]string) {
	validationErrors := make(map[string]string)
	if req.Name == "" {
		validationErrors["name"] = "Name is required"
	}
	if req.Price < 0 {
		validationErrors["price"] = "Price must not be negative"
	}
	if req.Stock < 0 {
		validationErrors["stock"] = "Stock must not be negative"
	}

	item := catalog.Item{
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		ImageURL: req.ImageURL,
		Rank:     req.Rank,
	}
	if req.SellDate != nil && *req.SellDate != "" {
		d, err := catalog.ParseDate(*req.SellDate)
		if err != nil {
			validationErrors["sell_date"] = "Invalid sell date (use YYYY-MM-DD)"
		} else {
			item.SellDate = &d
		}
	}

	return item, validationErrors
}

func (h *CatalogHandler) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	item, validationErrors := req.toItem()
	if len(validationErrors) > 0 {
		response.WriteValidationError(w, "Validation failed", validationErrors)
		return
	}

	if err := h.catalogRepo.CreateItem(ctx, &item); err != nil {
		h.logger.Error("Failed to create item", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	h.invalidateStorefront(r)

	response.WriteJSON(w, http.StatusCreated, response.Success(itemResponse(item)))
}

func (h *CatalogHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	item, validationErrors := req.toItem()
	if len(validationErrors) > 0 {
		response.WriteValidationError(w, "Validation failed", validationErrors)
		return
	}
	item.ID = id

	if err := h.catalogRepo.UpdateItem(ctx, item); err != nil {
		h.logger.Error("Failed to update item", "error", err.Error(), "item_id", id)
		response.WriteDomainError(w, err)
		return
	}

	h.invalidateStorefront(r)

	response.WriteSuccess(w, itemResponse(item))
}

func (h *CatalogHandler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.catalogRepo.DeleteItem(ctx, id); err != nil {
		h.logger.Error("Failed to delete item", "error", err.Error(), "item_id", id)
		response.WriteDomainError(w, err)
		return
	}

	h.invalidateStorefront(r)

	response.WriteSuccess(w, map[string]int64{"deleted": id})
}

type BulkMoveRequest struct {
	ItemIDs     []int64 `json:"item_ids"`
	NewSellDate string  `json:"new_sell_date"`
}

type BulkMoveResponse struct {
	Moved       int    `json:"moved"`
	NewSellDate string `json:"new_sell_date"`
}

func (h *CatalogHandler) HandleBulkMove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BulkMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	newDate, err := catalog.ParseDate(req.NewSellDate)
	if err != nil {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"new_sell_date": "Invalid sell date (use YYYY-MM-DD)",
		})
		return
	}

	moved, err := h.bulkMove.Execute(ctx, commands.BulkMoveCommand{
		ItemIDs:     req.ItemIDs,
		NewSellDate: newDate,
	})
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, BulkMoveResponse{
		Moved:       moved,
		NewSellDate: newDate.String(),
	})
}

func (h *CatalogHandler) invalidateStorefront(r *http.Request) {
	if err := h.cache.InvalidateStorefrontCatalog(r.Context()); err != nil {
		h.logger.Warn("Failed to invalidate storefront cache", "error", err.Error())
	}
}

func itemIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	path := strings.TrimPrefix(r.URL.Path, "/admin/items/")
	idPart := strings.SplitN(path, "/", 2)[0]

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"item_id": "Item ID must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/freshdeli/console/internal/application/commands"
	"github.com/freshdeli/console/internal/application/use_cases"
	"github.com/freshdeli/console/internal/domain/catalog"
	"github.com/freshdeli/console/internal/infrastructure/http/response"
	"github.com/freshdeli/console/internal/pkg/logger"
)

type ReorderHandler struct {
	reorder *use_cases.ReorderUseCase
	logger  *logger.Logger
}

func NewReorderHandler(reorder *use_cases.ReorderUseCase, log *logger.Logger) *ReorderHandler {
	return &ReorderHandler{
		reorder: reorder,
		logger:  log,
	}
}

type RankedItemResponse struct {
	Rank int          `json:"rank"`
	Item ItemResponse `json:"item"`
}

type EditSessionResponse struct {
	SessionID string               `json:"session_id"`
	Items     []RankedItemResponse `json:"items"`
}

func rankedItemResponses(rows []use_cases.RankedItem) []RankedItemResponse {
	responses := make([]RankedItemResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, RankedItemResponse{
			Rank: row.Rank,
			Item: itemResponse(row.Item),
		})
	}
	return responses
}

type OpenOrderRequest struct {
	Bucket string `json:"bucket"`
}

func (h *ReorderHandler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	var req OpenOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	bucket, err := catalog.ParseBucketKey(req.Bucket)
	if err != nil {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"bucket": "Unknown bucket key",
		})
		return
	}

	sessionID, rows, err := h.reorder.Open(r.Context(), commands.OpenOrderCommand{Bucket: bucket})
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, EditSessionResponse{
		SessionID: sessionID,
		Items:     rankedItemResponses(rows),
	})
}

type ShiftRequest struct {
	SessionID string `json:"session_id"`
	ItemID    int64  `json:"item_id"`
	NewRank   int    `json:"new_rank"`
}

func (h *ReorderHandler) HandleShift(w http.ResponseWriter, r *http.Request) {
	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	rows, err := h.reorder.Shift(commands.ShiftCommand{
		SessionID: req.SessionID,
		TargetID:  req.ItemID,
		NewRank:   req.NewRank,
	})
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, EditSessionResponse{
		SessionID: req.SessionID,
		Items:     rankedItemResponses(rows),
	})
}

type SessionRequest struct {
	SessionID string `json:"session_id"`
}

func (h *ReorderHandler) HandleUndo(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	rows, err := h.reorder.Undo(req.SessionID)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, EditSessionResponse{
		SessionID: req.SessionID,
		Items:     rankedItemResponses(rows),
	})
}

func (h *ReorderHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	if err := h.reorder.Save(r.Context(), commands.SaveOrderCommand{SessionID: req.SessionID}); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, map[string]string{"status": "saved"})
}

func (h *ReorderHandler) HandleAbandon(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	if err := h.reorder.Abandon(commands.AbandonOrderCommand{SessionID: req.SessionID}); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, map[string]string{"status": "abandoned"})
}

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/freshdeli/console/internal/application/ports"
	domainErrors "github.com/freshdeli/console/internal/domain/errors"
	"github.com/freshdeli/console/internal/infrastructure/http/response"
	"github.com/freshdeli/console/internal/pkg/generator"
	"github.com/freshdeli/console/internal/pkg/logger"
)

type AuthHandler struct {
	operatorRepo ports.OperatorRepository
	cache        ports.Cache
	codeGen      *generator.CodeGenerator
	sessionTTL   time.Duration
	logger       *logger.Logger
}

func NewAuthHandler(
	operatorRepo ports.OperatorRepository,
	cache ports.Cache,
	sessionTTL time.Duration,
	log *logger.Logger,
) *AuthHandler {
	return &AuthHandler{
		operatorRepo: operatorRepo,
		cache:        cache,
		codeGen:      generator.NewCodeGenerator(),
		sessionTTL:   sessionTTL,
		logger:       log,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in_seconds"`
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body", err.Error())
		return
	}

	validationErrors := make(map[string]string)
	if req.Username == "" {
		validationErrors["username"] = "Username is required"
	}
	if req.Password == "" {
		validationErrors["password"] = "Password is required"
	}
	if len(validationErrors) > 0 {
		response.WriteValidationError(w, "Validation failed", validationErrors)
		return
	}

	op, err := h.operatorRepo.GetOperator(ctx, req.Username)
	if err != nil {
		if err == domainErrors.ErrOperatorNotFound {
			response.WriteDomainError(w, domainErrors.ErrInvalidCredentials)
			return
		}
		h.logger.Error("Failed to load operator", "error", err.Error(), "username", req.Username)
		response.WriteDomainError(w, err)
		return
	}

	if !op.CheckPassword(req.Password) {
		response.WriteDomainError(w, domainErrors.ErrInvalidCredentials)
		return
	}

	token, err := h.codeGen.GenerateSessionToken()
	if err != nil {
		h.logger.Error("Failed to generate session token", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	if err := h.cache.CreateSession(ctx, token, op.Username, h.sessionTTL); err != nil {
		h.logger.Error("Failed to store session", "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	h.logger.Info("Operator logged in", "username", op.Username)

	response.WriteSuccess(w, LoginResponse{
		Token:     token,
		ExpiresIn: int64(h.sessionTTL.Seconds()),
	})
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")
	if len(token) > 7 && token[:7] == "Bearer " {
		token = token[7:]
	}
	if token == "" {
		response.WriteError(w, http.StatusUnauthorized, response.StatusUnauthorized, "Missing session token")
		return
	}

	if err := h.cache.DeleteSession(r.Context(), token); err != nil {
		h.logger.Warn("Failed to delete session", "error", err.Error())
	}

	response.WriteSuccess(w, map[string]string{"status": "logged_out"})
}

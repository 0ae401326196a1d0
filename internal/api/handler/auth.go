package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/showquiz/tvtrivia/internal/api/middleware"
	"github.com/showquiz/tvtrivia/internal/api/request"
	"github.com/showquiz/tvtrivia/internal/api/response"
	"github.com/showquiz/tvtrivia/internal/services/auth"
)

// AuthHandler handles host account endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		WriteError(w, NewInvalidRequestError("Username and password are required"))
		return
	}

	token, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromToken(token))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromToken(token))
}

// Me handles GET /api/v1/auth/me (requires auth)
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetToken(r.Context())
	if token == nil {
		WriteError(w, NewUnauthorizedError())
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromToken(token))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		h.authService.InvalidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	}
	response.NoContent(w)
}

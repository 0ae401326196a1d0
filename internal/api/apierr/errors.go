package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeSessionNotFound      = "SESSION_NOT_FOUND"
	CodePlayerNotFound       = "PLAYER_NOT_FOUND"
	CodeRosterEmpty          = "ROSTER_EMPTY"
	CodeNegativeDelta        = "NEGATIVE_DELTA"
	CodeInvalidDecade        = "INVALID_DECADE"
	CodeInvalidTheme         = "INVALID_THEME"
	CodeShowCapReached       = "SHOW_CAP_REACHED"
	CodeEmptyShowTitle       = "EMPTY_SHOW_TITLE"
	CodeNoShowSelected       = "NO_SHOW_SELECTED"
	CodeStaleShowSelection   = "STALE_SHOW_SELECTION"
	CodeQuestionAlreadyDrawn = "QUESTION_ALREADY_DRAWN"
	CodeNoActiveQuestion     = "NO_ACTIVE_QUESTION"
	CodeNoUnusedQuestions    = "NO_UNUSED_QUESTIONS"
	CodeBankNotFound         = "BANK_NOT_FOUND"
	CodeRoundComplete        = "ROUND_COMPLETE"
	CodeRoundNotComplete     = "ROUND_NOT_COMPLETE"
	CodeUsernameExists       = "USERNAME_EXISTS"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrRosterEmpty):
		return &httpError{http.StatusConflict, APIError{CodeRosterEmpty, "Roster has no players"}}
	case errors.Is(err, model.ErrNegativeDelta):
		return &httpError{http.StatusBadRequest, APIError{CodeNegativeDelta, "Score delta must not be negative"}}
	case errors.Is(err, model.ErrInvalidDecade):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDecade, "Decade must look like 1990s"}}
	case errors.Is(err, model.ErrInvalidTheme):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTheme, "Unknown theme"}}
	case errors.Is(err, model.ErrShowCapReached):
		return &httpError{http.StatusConflict, APIError{CodeShowCapReached, "Show limit reached for this decade"}}
	case errors.Is(err, model.ErrEmptyShowTitle):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyShowTitle, "Show title must not be empty"}}
	case errors.Is(err, model.ErrNoShowSelected):
		return &httpError{http.StatusConflict, APIError{CodeNoShowSelected, "No show selected for this turn"}}
	case errors.Is(err, model.ErrStaleShowSelection):
		return &httpError{http.StatusConflict, APIError{CodeStaleShowSelection, "Show selection belongs to a previous turn"}}
	case errors.Is(err, model.ErrQuestionAlreadyDrawn):
		return &httpError{http.StatusConflict, APIError{CodeQuestionAlreadyDrawn, "A question is already active"}}
	case errors.Is(err, model.ErrNoActiveQuestion):
		return &httpError{http.StatusConflict, APIError{CodeNoActiveQuestion, "No question is active"}}
	case errors.Is(err, model.ErrNoUnusedQuestions):
		return &httpError{http.StatusConflict, APIError{CodeNoUnusedQuestions, "No unused questions left for this show"}}
	case errors.Is(err, model.ErrBankNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeBankNotFound, "No question bank for this decade"}}
	case errors.Is(err, model.ErrRoundComplete):
		return &httpError{http.StatusConflict, APIError{CodeRoundComplete, "Round is complete, start a new round first"}}
	case errors.Is(err, model.ErrRoundNotComplete):
		return &httpError{http.StatusConflict, APIError{CodeRoundNotComplete, "Round is still in progress"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

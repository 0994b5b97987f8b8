package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"bigbang-quiz-service/internal/domain"

	"github.com/go-playground/validator/v10"
)

type errorBody struct {
	Message string `json:"mensagem"`
}

func (a *API) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			a.logger.Error("encode response", "error", err)
		}
	}
}

// writeError maps domain sentinels onto the HTTP status taxonomy. Anything
// unrecognized is logged and surfaced as a generic 500 so internals never
// leak to clients.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		a.writeJSON(w, http.StatusBadRequest, errorBody{Message: "corpo da requisição inválido"})
		return
	}

	switch {
	case errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrRankingNotFound),
		errors.Is(err, domain.ErrAdminNotFound),
		errors.Is(err, domain.ErrNoQuestionsForLevel),
		errors.Is(err, domain.ErrNoValidAnswer):
		a.writeJSON(w, http.StatusNotFound, errorBody{Message: err.Error()})
	case errors.Is(err, errBadBody),
		errors.Is(err, domain.ErrHintCount),
		errors.Is(err, domain.ErrUnknownElement),
		errors.Is(err, domain.ErrDuplicateElement),
		errors.Is(err, domain.ErrUnknownLevelTag),
		errors.Is(err, domain.ErrMissingPlayer),
		errors.Is(err, domain.ErrWrongPhase),
		errors.Is(err, domain.ErrSessionFinished),
		errors.Is(err, domain.ErrDuplicateEmail):
		a.writeJSON(w, http.StatusBadRequest, errorBody{Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		a.writeJSON(w, http.StatusUnauthorized, errorBody{Message: err.Error()})
	case errors.Is(err, domain.ErrPermissionDenied),
		errors.Is(err, domain.ErrSelfDeletion),
		errors.Is(err, domain.ErrProtectedAccount):
		a.writeJSON(w, http.StatusForbidden, errorBody{Message: err.Error()})
	default:
		a.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		a.writeJSON(w, http.StatusInternalServerError, errorBody{Message: "erro interno"})
	}
}

// decode reads a JSON body into dst and runs the struct validation tags.
func (a *API) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadBody
	}
	return a.validate.Struct(dst)
}

var errBadBody = errors.New("corpo da requisição inválido")

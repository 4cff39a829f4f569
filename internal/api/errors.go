package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/mensagens-api/internal/api/shared"
	"github.com/phrazzld/mensagens-api/internal/domain"
	"github.com/phrazzld/mensagens-api/internal/store"
)

// Client-facing error messages.
const (
	MsgInvalidID        = "id inválido"
	MsgNotFound         = "não encontrado"
	MsgInvalidJSON      = "JSON inválido"
	MsgInvalidMessage   = "usuarios_id, destinatario_id (inteiros >= 1 e diferentes) e mensagem (texto não vazio) são obrigatórios"
	MsgEmptyPatch       = "envie usuarios_id, destinatario_id e/ou mensagem"
	MsgInvalidSender    = "ids de usuario devem ser número >= 1"
	MsgInvalidRecipient = "ids de destinatario devem ser número >= 1"
	MsgInvalidText      = "mensagem deve ser texto não vazio"
	MsgSelfAddressed    = "usuarios_id e destinatario_id devem ser diferentes"
	MsgInvalidEntity    = "dados inválidos"
	MsgInternalError    = shared.MsgInternalError
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrMalformedJSON),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgInternalError
	}

	// Order matters: a joined validation error reports its first known cause.
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return MsgInvalidID

	case errors.Is(err, shared.ErrMalformedJSON):
		return MsgInvalidJSON

	case errors.Is(err, domain.ErrEmptyPatch):
		return MsgEmptyPatch

	case errors.Is(err, domain.ErrInvalidSenderID):
		return MsgInvalidSender

	case errors.Is(err, domain.ErrInvalidRecipientID):
		return MsgInvalidRecipient

	case errors.Is(err, domain.ErrEmptyMessageText):
		return MsgInvalidText

	case errors.Is(err, domain.ErrSelfAddressed):
		return MsgSelfAddressed

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return MsgInvalidEntity

	case errors.Is(err, store.ErrNotFound):
		return MsgNotFound

	default:
		return MsgInternalError
	}
}

// HandleAPIError writes the error response for err. For 400 responses a
// non-empty validationMsg replaces the per-error message, except for an
// invalid id or a malformed body which always keep their own message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, validationMsg string) {
	status := MapErrorToStatusCode(err)

	msg := GetSafeErrorMessage(err)
	if status == http.StatusBadRequest && validationMsg != "" &&
		!errors.Is(err, domain.ErrInvalidID) && !errors.Is(err, shared.ErrMalformedJSON) {
		msg = validationMsg
	}
	if status >= http.StatusInternalServerError {
		msg = MsgInternalError
	}

	shared.RespondWithErrorAndLog(w, r, status, msg, err)
}

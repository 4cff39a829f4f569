package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/mensagens-api/internal/domain"
)

// messageRequest is the body accepted by create, replace and partial update.
// Fields stay raw so absent, null and mistyped values can be told apart.
type messageRequest struct {
	UsuariosID     json.RawMessage `json:"usuarios_id"`
	DestinatarioID json.RawMessage `json:"destinatario_id"`
	Mensagem       json.RawMessage `json:"mensagem"`
}

// toMessage coerces a full request body into a Message. Values that cannot
// be coerced become zero so that Message.Validate rejects them.
func (req messageRequest) toMessage(id int64) *domain.Message {
	msg := &domain.Message{ID: id}

	if !isAbsent(req.UsuariosID) {
		if v, ok := coerceIDJSON(req.UsuariosID); ok {
			msg.UsuariosID = v
		}
	}
	if !isAbsent(req.DestinatarioID) {
		if v, ok := coerceIDJSON(req.DestinatarioID); ok {
			msg.DestinatarioID = v
		}
	}
	if text, ok := jsonString(req.Mensagem); ok {
		msg.Mensagem = text
	}

	return msg
}

// toPatch turns a partial request body into a MessagePatch. JSON null is
// treated the same as an omitted field.
func (req messageRequest) toPatch() (domain.MessagePatch, error) {
	var patch domain.MessagePatch
	var errs []error

	if !isAbsent(req.UsuariosID) {
		if v, ok := coerceIDJSON(req.UsuariosID); ok {
			patch.UsuariosID = &v
		} else {
			errs = append(errs, domain.ErrInvalidSenderID)
		}
	}
	if !isAbsent(req.DestinatarioID) {
		if v, ok := coerceIDJSON(req.DestinatarioID); ok {
			patch.DestinatarioID = &v
		} else {
			errs = append(errs, domain.ErrInvalidRecipientID)
		}
	}
	if !isAbsent(req.Mensagem) {
		if text, ok := jsonString(req.Mensagem); ok {
			patch.Mensagem = &text
		} else {
			errs = append(errs, domain.ErrEmptyMessageText)
		}
	}

	if len(errs) > 0 {
		return patch, errors.Join(errs...)
	}
	return patch, patch.Validate()
}

// getPathID extracts a message ID from the URL path parameters.
//
// Returns:
//   - (id, nil): the ID if it coerces to an integer >= 1
//   - (0, error): a validation error wrapping domain.ErrInvalidID otherwise
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)

	id, ok := coerceIDString(raw)
	if !ok {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	if err := domain.ValidateID(id); err != nil {
		return 0, err
	}

	return id, nil
}

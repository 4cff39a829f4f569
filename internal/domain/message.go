package domain

import (
	"errors"
	"fmt"
)

// Validation errors for Message. Each wraps ErrValidation.
var (
	ErrInvalidSenderID    = fmt.Errorf("%w: usuarios_id must be an integer >= 1", ErrValidation)
	ErrInvalidRecipientID = fmt.Errorf("%w: destinatario_id must be an integer >= 1", ErrValidation)
	ErrEmptyMessageText   = fmt.Errorf("%w: mensagem cannot be empty", ErrValidation)
	ErrSelfAddressed      = fmt.Errorf("%w: usuarios_id and destinatario_id must differ", ErrValidation)
	ErrEmptyPatch         = fmt.Errorf("%w: at least one field is required", ErrValidation)
)

// Message is a piece of free text sent from one user id to another.
// ID is assigned by storage on creation and never changes afterwards.
type Message struct {
	ID             int64  `json:"id"`
	UsuariosID     int64  `json:"usuarios_id"`
	DestinatarioID int64  `json:"destinatario_id"`
	Mensagem       string `json:"mensagem"`
}

// NewMessage builds an unsaved Message (ID zero) and validates it.
func NewMessage(usuariosID, destinatarioID int64, mensagem string) (*Message, error) {
	msg := &Message{
		UsuariosID:     usuariosID,
		DestinatarioID: destinatarioID,
		Mensagem:       mensagem,
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

// Validate checks the writable fields of the Message. The ID is not checked
// here because a Message about to be created has none yet.
func (m *Message) Validate() error {
	var errs []error

	if m.Mensagem == "" {
		errs = append(errs, ErrEmptyMessageText)
	}
	if m.UsuariosID < 1 {
		errs = append(errs, ErrInvalidSenderID)
	}
	if m.DestinatarioID < 1 {
		errs = append(errs, ErrInvalidRecipientID)
	}
	if len(errs) == 0 && m.UsuariosID == m.DestinatarioID {
		errs = append(errs, ErrSelfAddressed)
	}

	return errors.Join(errs...)
}

// MessagePatch carries the fields of a partial update. A nil field keeps
// the stored value.
type MessagePatch struct {
	UsuariosID     *int64
	DestinatarioID *int64
	Mensagem       *string
}

// IsEmpty reports whether the patch would change nothing.
func (p MessagePatch) IsEmpty() bool {
	return p.UsuariosID == nil && p.DestinatarioID == nil && p.Mensagem == nil
}

// Validate checks every field present in the patch with the same rules as
// Message.Validate. Sender and recipient are only compared when both are
// present; the stored row is checked by the database constraint.
func (p MessagePatch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}

	var errs []error
	if p.UsuariosID != nil && *p.UsuariosID < 1 {
		errs = append(errs, ErrInvalidSenderID)
	}
	if p.DestinatarioID != nil && *p.DestinatarioID < 1 {
		errs = append(errs, ErrInvalidRecipientID)
	}
	if p.Mensagem != nil && *p.Mensagem == "" {
		errs = append(errs, ErrEmptyMessageText)
	}
	if len(errs) == 0 && p.UsuariosID != nil && p.DestinatarioID != nil &&
		*p.UsuariosID == *p.DestinatarioID {
		errs = append(errs, ErrSelfAddressed)
	}

	return errors.Join(errs...)
}

// ValidateID checks that id is usable as a Message identifier.
func ValidateID(id int64) error {
	if id < 1 {
		return NewValidationError("id", "must be a positive integer", ErrInvalidID)
	}
	return nil
}

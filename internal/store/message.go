package store

import (
	"context"

	"github.com/phrazzld/mensagens-api/internal/domain"
)

// MessageStore defines the interface for message data persistence.
// Every method issues exactly one statement; there is no multi-statement
// transaction anywhere in the contract.
type MessageStore interface {
	// List returns all messages ordered by ID, newest first.
	// An empty table yields an empty, non-nil slice.
	List(ctx context.Context) ([]*domain.Message, error)

	// GetByID retrieves a message by its ID.
	// Returns ErrMessageNotFound if the message does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Message, error)

	// Create inserts a new message and returns it with the storage-assigned ID.
	// Returns ErrInvalidEntity if the backend rejects the row.
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)

	// Replace overwrites every writable field of the message identified by msg.ID.
	// Returns ErrMessageNotFound if the message does not exist.
	Replace(ctx context.Context, msg *domain.Message) (*domain.Message, error)

	// Update applies the non-nil fields of patch to the message identified by id,
	// keeping the stored value for every nil field.
	// Returns ErrMessageNotFound if the message does not exist and
	// ErrInvalidEntity if the resulting row violates a constraint.
	Update(ctx context.Context, id int64, patch domain.MessagePatch) (*domain.Message, error)

	// Delete removes a message by its ID.
	// Returns ErrMessageNotFound if the message does not exist.
	Delete(ctx context.Context, id int64) error
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/mensagens-api/internal/domain"
	"github.com/phrazzld/mensagens-api/internal/platform/logger"
	"github.com/phrazzld/mensagens-api/internal/store"
)

const messageEntity = "message"

// selfAddressedConstraint is the CHECK constraint that keeps usuarios_id and
// destinatario_id apart; see migrations/00001_create_mensagens.sql.
const selfAddressedConstraint = "mensagens_usuarios_destinatario_distintos"

const (
	listMessagesQuery = `
		SELECT id, usuarios_id, destinatario_id, mensagem
		FROM mensagens
		ORDER BY id DESC
	`

	getMessageQuery = `
		SELECT id, usuarios_id, destinatario_id, mensagem
		FROM mensagens
		WHERE id = $1
	`

	createMessageQuery = `
		INSERT INTO mensagens (usuarios_id, destinatario_id, mensagem)
		VALUES ($1, $2, $3)
		RETURNING id, usuarios_id, destinatario_id, mensagem
	`

	replaceMessageQuery = `
		UPDATE mensagens
		SET usuarios_id = $1, destinatario_id = $2, mensagem = $3
		WHERE id = $4
		RETURNING id, usuarios_id, destinatario_id, mensagem
	`

	// Omitted fields arrive as NULL and COALESCE keeps the stored value.
	updateMessageQuery = `
		UPDATE mensagens
		SET mensagem = COALESCE($1, mensagem),
			usuarios_id = COALESCE($2, usuarios_id),
			destinatario_id = COALESCE($3, destinatario_id)
		WHERE id = $4
		RETURNING id, usuarios_id, destinatario_id, mensagem
	`

	deleteMessageQuery = `
		DELETE FROM mensagens
		WHERE id = $1
	`
)

// PostgresMessageStore implements the store.MessageStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMessageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMessageStore creates a new PostgreSQL implementation of the MessageStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresMessageStore(db store.DBTX, logger *slog.Logger) *PostgresMessageStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMessageStore{
		db:     db,
		logger: logger.With(slog.String("component", "message_store")),
	}
}

// Ensure PostgresMessageStore implements store.MessageStore interface
var _ store.MessageStore = (*PostgresMessageStore)(nil)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*domain.Message, error) {
	var msg domain.Message
	if err := row.Scan(&msg.ID, &msg.UsuariosID, &msg.DestinatarioID, &msg.Mensagem); err != nil {
		return nil, err
	}
	return &msg, nil
}

// List implements store.MessageStore.List
func (s *PostgresMessageStore) List(ctx context.Context) ([]*domain.Message, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, listMessagesQuery)
	if err != nil {
		log.Error("failed to list messages", slog.String("error", err.Error()))
		return nil, store.NewStoreError(messageEntity, "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			log.Error("failed to scan message row", slog.String("error", err.Error()))
			return nil, store.NewStoreError(messageEntity, "list", "scan failed", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		log.Error("failed iterating message rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError(messageEntity, "list", "row iteration failed", err)
	}

	log.Debug("messages listed", slog.Int("count", len(messages)))
	return messages, nil
}

// GetByID implements store.MessageStore.GetByID
// Returns store.ErrMessageNotFound if the message does not exist.
func (s *PostgresMessageStore) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	msg, err := scanMessage(s.db.QueryRowContext(ctx, getMessageQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("message not found", slog.Int64("message_id", id))
			return nil, store.ErrMessageNotFound
		}
		log.Error("failed to get message by ID",
			slog.String("error", err.Error()),
			slog.Int64("message_id", id))
		return nil, store.NewStoreError(messageEntity, "get", "query failed", MapError(err))
	}

	return msg, nil
}

// Create implements store.MessageStore.Create
// Returns validation errors from the domain Message if data is invalid.
func (s *PostgresMessageStore) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := msg.Validate(); err != nil {
		log.Warn("message validation failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	created, err := scanMessage(s.db.QueryRowContext(
		ctx,
		createMessageQuery,
		msg.UsuariosID,
		msg.DestinatarioID,
		msg.Mensagem,
	))
	if err != nil {
		log.Error("failed to create message",
			slog.String("error", err.Error()),
			slog.Int64("usuarios_id", msg.UsuariosID),
			slog.Int64("destinatario_id", msg.DestinatarioID))
		return nil, store.NewStoreError(messageEntity, "create", "insert failed", MapError(err))
	}

	log.Info("message created", slog.Int64("message_id", created.ID))
	return created, nil
}

// Replace implements store.MessageStore.Replace
// Returns store.ErrMessageNotFound if the message does not exist.
func (s *PostgresMessageStore) Replace(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateID(msg.ID); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		log.Warn("message validation failed during replace",
			slog.String("error", err.Error()),
			slog.Int64("message_id", msg.ID))
		return nil, err
	}

	replaced, err := scanMessage(s.db.QueryRowContext(
		ctx,
		replaceMessageQuery,
		msg.UsuariosID,
		msg.DestinatarioID,
		msg.Mensagem,
		msg.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("message not found for replace", slog.Int64("message_id", msg.ID))
			return nil, store.ErrMessageNotFound
		}
		log.Error("failed to replace message",
			slog.String("error", err.Error()),
			slog.Int64("message_id", msg.ID))
		return nil, store.NewStoreError(messageEntity, "replace", "update failed", MapError(err))
	}

	log.Info("message replaced", slog.Int64("message_id", replaced.ID))
	return replaced, nil
}

// Update implements store.MessageStore.Update
// Returns store.ErrMessageNotFound if the message does not exist and
// store.ErrInvalidEntity if the merged row breaks a table constraint.
func (s *PostgresMessageStore) Update(
	ctx context.Context,
	id int64,
	patch domain.MessagePatch,
) (*domain.Message, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		log.Warn("message patch validation failed",
			slog.String("error", err.Error()),
			slog.Int64("message_id", id))
		return nil, err
	}

	updated, err := scanMessage(s.db.QueryRowContext(
		ctx,
		updateMessageQuery,
		nullString(patch.Mensagem),
		nullInt64(patch.UsuariosID),
		nullInt64(patch.DestinatarioID),
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("message not found for update", slog.Int64("message_id", id))
			return nil, store.ErrMessageNotFound
		}
		if IsCheckConstraintViolation(err) {
			log.Warn("message update rejected by constraint",
				slog.String("error", err.Error()),
				slog.Int64("message_id", id))
		} else {
			log.Error("failed to update message",
				slog.String("error", err.Error()),
				slog.Int64("message_id", id))
		}
		storeErr := store.NewStoreError(messageEntity, "update", "update failed", MapError(err))
		if ConstraintName(err) == selfAddressedConstraint {
			return nil, fmt.Errorf("%w: %w", domain.ErrSelfAddressed, storeErr)
		}
		return nil, storeErr
	}

	log.Info("message updated", slog.Int64("message_id", updated.ID))
	return updated, nil
}

// Delete implements store.MessageStore.Delete
// Returns store.ErrMessageNotFound if the message does not exist.
func (s *PostgresMessageStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, deleteMessageQuery, id)
	if err != nil {
		log.Error("failed to delete message",
			slog.String("error", err.Error()),
			slog.Int64("message_id", id))
		return store.NewStoreError(messageEntity, "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, messageEntity); err != nil {
		if IsNotFoundError(err) {
			log.Debug("message not found for delete", slog.Int64("message_id", id))
			return store.ErrMessageNotFound
		}
		return store.NewStoreError(messageEntity, "delete", "rows affected unavailable", err)
	}

	log.Info("message deleted", slog.Int64("message_id", id))
	return nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

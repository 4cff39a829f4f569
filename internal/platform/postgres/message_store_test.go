package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/mensagens-api/internal/domain"
	"github.com/phrazzld/mensagens-api/internal/platform/postgres"
	"github.com/phrazzld/mensagens-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var messageColumns = []string{"id", "usuarios_id", "destinatario_id", "mensagem"}

func int64Ptr(v int64) *int64 { return &v }

func stringPtr(v string) *string { return &v }

// newMockStore wires a PostgresMessageStore to a sqlmock connection.
func newMockStore(t *testing.T) (*postgres.PostgresMessageStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return postgres.NewPostgresMessageStore(db, nil), mock
}

func TestNewPostgresMessageStore_NilDBPanics(t *testing.T) {
	assert.Panics(t, func() {
		postgres.NewPostgresMessageStore(nil, nil)
	})
}

func TestPostgresMessageStore_List(t *testing.T) {
	t.Run("returns rows in query order", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM mensagens ORDER BY id DESC")).
			WillReturnRows(sqlmock.NewRows(messageColumns).
				AddRow(int64(3), int64(1), int64(2), "terceira").
				AddRow(int64(1), int64(2), int64(1), "primeira"))

		messages, err := s.List(context.Background())

		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, &domain.Message{ID: 3, UsuariosID: 1, DestinatarioID: 2, Mensagem: "terceira"}, messages[0])
		assert.Equal(t, int64(1), messages[1].ID)
	})

	t.Run("empty table yields empty slice", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM mensagens ORDER BY id DESC")).
			WillReturnRows(sqlmock.NewRows(messageColumns))

		messages, err := s.List(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, messages)
		assert.Empty(t, messages)
	})

	t.Run("query failure", func(t *testing.T) {
		s, mock := newMockStore(t)

		dbErr := errors.New("connection reset")
		mock.ExpectQuery(regexp.QuoteMeta("FROM mensagens")).WillReturnError(dbErr)

		messages, err := s.List(context.Background())

		assert.Nil(t, messages)
		assert.ErrorIs(t, err, dbErr)
		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "list", storeErr.Operation)
	})

	t.Run("row error", func(t *testing.T) {
		s, mock := newMockStore(t)

		rowErr := errors.New("broken row")
		mock.ExpectQuery(regexp.QuoteMeta("FROM mensagens")).
			WillReturnRows(sqlmock.NewRows(messageColumns).
				AddRow(int64(1), int64(1), int64(2), "a").
				RowError(0, rowErr))

		_, err := s.List(context.Background())
		assert.ErrorIs(t, err, rowErr)
	})
}

func TestPostgresMessageStore_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM mensagens WHERE id = $1")).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(messageColumns).AddRow(int64(7), int64(1), int64(2), "oi"))

		msg, err := s.GetByID(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, &domain.Message{ID: 7, UsuariosID: 1, DestinatarioID: 2, Mensagem: "oi"}, msg)
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM mensagens WHERE id = $1")).
			WithArgs(int64(999999)).
			WillReturnRows(sqlmock.NewRows(messageColumns))

		msg, err := s.GetByID(context.Background(), 999999)

		assert.Nil(t, msg)
		assert.ErrorIs(t, err, store.ErrMessageNotFound)
	})

	t.Run("database failure is not a not-found", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM mensagens WHERE id = $1")).
			WithArgs(int64(1)).
			WillReturnError(errors.New("timeout"))

		_, err := s.GetByID(context.Background(), 1)

		require.Error(t, err)
		assert.False(t, store.IsNotFoundError(err))
	})
}

func TestPostgresMessageStore_Create(t *testing.T) {
	t.Run("returns generated id", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO mensagens (usuarios_id, destinatario_id, mensagem) VALUES ($1, $2, $3) RETURNING")).
			WithArgs(int64(1), int64(2), "hi").
			WillReturnRows(sqlmock.NewRows(messageColumns).AddRow(int64(42), int64(1), int64(2), "hi"))

		created, err := s.Create(context.Background(), &domain.Message{UsuariosID: 1, DestinatarioID: 2, Mensagem: "hi"})

		require.NoError(t, err)
		assert.Equal(t, int64(42), created.ID)
		assert.Equal(t, "hi", created.Mensagem)
	})

	t.Run("invalid message never reaches the database", func(t *testing.T) {
		s, _ := newMockStore(t)

		_, err := s.Create(context.Background(), &domain.Message{UsuariosID: 2, DestinatarioID: 2, Mensagem: "hi"})

		assert.ErrorIs(t, err, domain.ErrSelfAddressed)
	})

	t.Run("check violation maps to invalid entity", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO mensagens")).
			WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "mensagens_mensagem_check"})

		_, err := s.Create(context.Background(), &domain.Message{UsuariosID: 1, DestinatarioID: 2, Mensagem: "hi"})

		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestPostgresMessageStore_Replace(t *testing.T) {
	t.Run("writes every field", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("SET usuarios_id = $1, destinatario_id = $2, mensagem = $3 WHERE id = $4")).
			WithArgs(int64(3), int64(4), "nova", int64(9)).
			WillReturnRows(sqlmock.NewRows(messageColumns).AddRow(int64(9), int64(3), int64(4), "nova"))

		msg, err := s.Replace(context.Background(), &domain.Message{ID: 9, UsuariosID: 3, DestinatarioID: 4, Mensagem: "nova"})

		require.NoError(t, err)
		assert.Equal(t, &domain.Message{ID: 9, UsuariosID: 3, DestinatarioID: 4, Mensagem: "nova"}, msg)
	})

	t.Run("missing row", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("UPDATE mensagens")).
			WithArgs(int64(3), int64(4), "nova", int64(9)).
			WillReturnRows(sqlmock.NewRows(messageColumns))

		_, err := s.Replace(context.Background(), &domain.Message{ID: 9, UsuariosID: 3, DestinatarioID: 4, Mensagem: "nova"})

		assert.ErrorIs(t, err, store.ErrMessageNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		s, _ := newMockStore(t)

		_, err := s.Replace(context.Background(), &domain.Message{ID: 0, UsuariosID: 3, DestinatarioID: 4, Mensagem: "nova"})

		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})
}

func TestPostgresMessageStore_Update(t *testing.T) {
	t.Run("omitted fields are sent as NULL", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("SET mensagem = COALESCE($1, mensagem), usuarios_id = COALESCE($2, usuarios_id), destinatario_id = COALESCE($3, destinatario_id) WHERE id = $4")).
			WithArgs("novo texto", nil, nil, int64(5)).
			WillReturnRows(sqlmock.NewRows(messageColumns).AddRow(int64(5), int64(1), int64(2), "novo texto"))

		msg, err := s.Update(context.Background(), 5, domain.MessagePatch{Mensagem: stringPtr("novo texto")})

		require.NoError(t, err)
		assert.Equal(t, int64(1), msg.UsuariosID)
		assert.Equal(t, int64(2), msg.DestinatarioID)
		assert.Equal(t, "novo texto", msg.Mensagem)
	})

	t.Run("ids only", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("COALESCE($1, mensagem)")).
			WithArgs(nil, int64(8), int64(9), int64(5)).
			WillReturnRows(sqlmock.NewRows(messageColumns).AddRow(int64(5), int64(8), int64(9), "antigo"))

		msg, err := s.Update(context.Background(), 5, domain.MessagePatch{
			UsuariosID:     int64Ptr(8),
			DestinatarioID: int64Ptr(9),
		})

		require.NoError(t, err)
		assert.Equal(t, "antigo", msg.Mensagem)
	})

	t.Run("empty patch is rejected before the query", func(t *testing.T) {
		s, _ := newMockStore(t)

		_, err := s.Update(context.Background(), 5, domain.MessagePatch{})

		assert.ErrorIs(t, err, domain.ErrEmptyPatch)
	})

	t.Run("missing row", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("COALESCE($1, mensagem)")).
			WithArgs(nil, int64(8), nil, int64(5)).
			WillReturnRows(sqlmock.NewRows(messageColumns))

		_, err := s.Update(context.Background(), 5, domain.MessagePatch{UsuariosID: int64Ptr(8)})

		assert.ErrorIs(t, err, store.ErrMessageNotFound)
	})

	t.Run("merged row equal sender and recipient", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("COALESCE($1, mensagem)")).
			WithArgs(nil, int64(2), nil, int64(5)).
			WillReturnError(&pgconn.PgError{
				Code:           "23514",
				ConstraintName: "mensagens_usuarios_destinatario_distintos",
			})

		_, err := s.Update(context.Background(), 5, domain.MessagePatch{UsuariosID: int64Ptr(2)})

		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.ErrorIs(t, err, domain.ErrSelfAddressed)
		assert.False(t, store.IsNotFoundError(err))
	})
}

func TestPostgresMessageStore_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM mensagens WHERE id = $1")).
			WithArgs(int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Delete(context.Background(), 4))
	})

	t.Run("nothing to delete", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM mensagens WHERE id = $1")).
			WithArgs(int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Delete(context.Background(), 4), store.ErrMessageNotFound)
	})

	t.Run("exec failure", func(t *testing.T) {
		s, mock := newMockStore(t)

		dbErr := errors.New("connection refused")
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM mensagens")).
			WithArgs(int64(4)).
			WillReturnError(dbErr)

		err := s.Delete(context.Background(), 4)
		assert.ErrorIs(t, err, dbErr)
		assert.False(t, store.IsNotFoundError(err))
	})

	t.Run("rows affected failure", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM mensagens")).
			WithArgs(int64(4)).
			WillReturnResult(sqlmock.NewErrorResult(errors.New("driver cannot count")))

		err := s.Delete(context.Background(), 4)
		require.Error(t, err)
		assert.False(t, store.IsNotFoundError(err))
	})
}

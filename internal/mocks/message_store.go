package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/phrazzld/mensagens-api/internal/domain"
	"github.com/phrazzld/mensagens-api/internal/store"
)

// MockMessageStore implements store.MessageStore for testing.
//
// Each method calls its function field when set. Otherwise it falls back to
// an in-memory table that assigns increasing IDs.
type MockMessageStore struct {
	// Function fields for customizable behavior
	ListFn    func(ctx context.Context) ([]*domain.Message, error)
	GetByIDFn func(ctx context.Context, id int64) (*domain.Message, error)
	CreateFn  func(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	ReplaceFn func(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	UpdateFn  func(ctx context.Context, id int64, patch domain.MessagePatch) (*domain.Message, error)
	DeleteFn  func(ctx context.Context, id int64) error

	// Calls counts every store method invocation by method name.
	Calls map[string]int

	mu       sync.Mutex
	messages map[int64]domain.Message
	nextID   int64
}

// Ensure MockMessageStore implements store.MessageStore interface
var _ store.MessageStore = (*MockMessageStore)(nil)

// NewMockMessageStore creates a new mock store backed by an empty in-memory table.
func NewMockMessageStore() *MockMessageStore {
	return &MockMessageStore{
		Calls:    make(map[string]int),
		messages: make(map[int64]domain.Message),
		nextID:   1,
	}
}

func (m *MockMessageStore) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[method]++
}

// CallCount returns how many times method was invoked.
func (m *MockMessageStore) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[method]
}

// TotalCalls returns the number of store invocations across all methods.
func (m *MockMessageStore) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.Calls {
		total += n
	}
	return total
}

// List implements the MessageStore interface
func (m *MockMessageStore) List(ctx context.Context) ([]*domain.Message, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	messages := make([]*domain.Message, 0, len(m.messages))
	for _, msg := range m.messages {
		messages = append(messages, &msg)
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].ID > messages[j].ID })
	return messages, nil
}

// GetByID implements the MessageStore interface
func (m *MockMessageStore) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	msg, ok := m.messages[id]
	if !ok {
		return nil, store.ErrMessageNotFound
	}
	return &msg, nil
}

// Create implements the MessageStore interface
func (m *MockMessageStore) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, msg)
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.messages == nil {
		m.messages = make(map[int64]domain.Message)
	}
	if m.nextID == 0 {
		m.nextID = 1
	}

	created := *msg
	created.ID = m.nextID
	m.nextID++
	m.messages[created.ID] = created
	return &created, nil
}

// Replace implements the MessageStore interface
func (m *MockMessageStore) Replace(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	m.record("Replace")
	if m.ReplaceFn != nil {
		return m.ReplaceFn(ctx, msg)
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.messages[msg.ID]; !ok {
		return nil, store.ErrMessageNotFound
	}
	replaced := *msg
	m.messages[msg.ID] = replaced
	return &replaced, nil
}

// Update implements the MessageStore interface. Like the database it
// rejects a merged row whose sender equals its recipient.
func (m *MockMessageStore) Update(
	ctx context.Context,
	id int64,
	patch domain.MessagePatch,
) (*domain.Message, error) {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	updated, ok := m.messages[id]
	if !ok {
		return nil, store.ErrMessageNotFound
	}
	if patch.UsuariosID != nil {
		updated.UsuariosID = *patch.UsuariosID
	}
	if patch.DestinatarioID != nil {
		updated.DestinatarioID = *patch.DestinatarioID
	}
	if patch.Mensagem != nil {
		updated.Mensagem = *patch.Mensagem
	}
	if updated.UsuariosID == updated.DestinatarioID {
		return nil, fmt.Errorf("%w: %w", domain.ErrSelfAddressed, store.ErrInvalidEntity)
	}

	m.messages[id] = updated
	return &updated, nil
}

// Delete implements the MessageStore interface
func (m *MockMessageStore) Delete(ctx context.Context, id int64) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.messages[id]; !ok {
		return store.ErrMessageNotFound
	}
	delete(m.messages, id)
	return nil
}

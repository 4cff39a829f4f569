// Package mocks provides centralized mock implementations for testing.
//
// Mocks use function fields so each test can replace exactly the behavior it
// cares about:
//
//	import "github.com/phrazzld/mensagens-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    messageStore := mocks.NewMockMessageStore()
//	    messageStore.GetByIDFn = func(ctx context.Context, id int64) (*domain.Message, error) {
//	        return nil, store.ErrMessageNotFound
//	    }
//
//	    // Use the mock in your test...
//	}
//
// Without a function field, MockMessageStore keeps rows in memory and
// behaves like an empty mensagens table.
package mocks

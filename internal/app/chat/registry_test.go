package chat_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Talibis/jug-classic/internal/app/chat"
)

// fakeSession records delivered payloads and can be told to fail sends.
type fakeSession struct {
	id string

	mu       sync.Mutex
	payloads [][]byte
	failing  bool
}

func newFakeSession(id string) *fakeSession {
	return &fakeSession{id: id}
}

func (f *fakeSession) ID() string {
	return f.id
}

func (f *fakeSession) Send(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return errors.New("send failed")
	}

	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *fakeSession) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.payloads))
	for _, p := range f.payloads {
		out = append(out, string(p))
	}
	return out
}

func TestRegistryRegisterAndBroadcast(t *testing.T) {
	registry := chat.NewRegistry()

	a := newFakeSession("a")
	b := newFakeSession("b")
	c := newFakeSession("c")

	registry.Register(1, a)
	registry.Register(1, b)
	registry.Register(2, c)

	registry.Broadcast(1, []byte("first"))
	registry.Broadcast(1, []byte("second"))

	assert.Equal(t, []string{"first", "second"}, a.received())
	assert.Equal(t, []string{"first", "second"}, b.received())
	assert.Empty(t, c.received(), "sessions in other locations must not receive broadcasts")
}

func TestRegistryBroadcastPartialFailure(t *testing.T) {
	registry := chat.NewRegistry()

	healthy := newFakeSession("healthy")
	broken := newFakeSession("broken")
	broken.failing = true

	registry.Register(5, healthy)
	registry.Register(5, broken)

	registry.Broadcast(5, []byte("msg"))

	assert.Equal(t, []string{"msg"}, healthy.received(),
		"a send failure on one session must not suppress delivery to the rest")
}

func TestRegistryUnregister(t *testing.T) {
	registry := chat.NewRegistry()

	a := newFakeSession("a")
	b := newFakeSession("b")

	registry.Register(3, a)
	registry.Register(3, b)
	require.Equal(t, 2, registry.Count(3))

	registry.Unregister(a)
	assert.Equal(t, 1, registry.Count(3))
	assert.False(t, registry.Contains(3, a))
	assert.True(t, registry.Contains(3, b))

	registry.Broadcast(3, []byte("after"))
	assert.Empty(t, a.received())
	assert.Equal(t, []string{"after"}, b.received())
}

func TestRegistryUnregisterIdempotent(t *testing.T) {
	registry := chat.NewRegistry()

	a := newFakeSession("a")

	// Removing a session that was never registered is a no-op.
	registry.Unregister(a)

	registry.Register(1, a)
	registry.Unregister(a)
	registry.Unregister(a)

	assert.Equal(t, 0, registry.Count(1))
}

func TestRegistryConcurrentAccess(t *testing.T) {
	registry := chat.NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			sess := newFakeSession(fmt.Sprintf("s%d", n))
			loc := int64(n % 4)

			for j := 0; j < 50; j++ {
				registry.Register(loc, sess)
				registry.Broadcast(loc, []byte("payload"))
				registry.Unregister(sess)
			}
		}(i)
	}
	wg.Wait()

	for loc := int64(0); loc < 4; loc++ {
		assert.Equal(t, 0, registry.Count(loc))
	}
}

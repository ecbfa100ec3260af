//go:build !windows

package dbus

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	visible []string
	count   int
	known   []string
}

func TestCueServer_DispatchesToHandlers(t *testing.T) {
	s := NewCueServer(nil)

	var opened, closed, synced []event
	s.SetOpenedHandler(func(v []string, c int, k []string) { opened = append(opened, event{v, c, k}) })
	s.SetClosedHandler(func(v []string, c int, k []string) { closed = append(closed, event{v, c, k}) })
	s.SetSyncHandler(func(v []string, c int, k []string) { synced = append(synced, event{v, c, k}) })

	require.Nil(t, s.DocumentOpened([]string{"a.ts"}, 1, []string{"a.ts"}))
	require.Nil(t, s.DocumentClosed(nil, 0, nil))
	require.Nil(t, s.Sync([]string{"b.ts"}, 1, []string{"b.ts"}))

	assert.Equal(t, []event{{[]string{"a.ts"}, 1, []string{"a.ts"}}}, opened)
	assert.Equal(t, []event{{nil, 0, nil}}, closed)
	assert.Equal(t, []event{{[]string{"b.ts"}, 1, []string{"b.ts"}}}, synced)
}

func TestCueServer_RejectsNegativeCount(t *testing.T) {
	s := NewCueServer(nil)
	called := false
	s.SetClosedHandler(func([]string, int, []string) { called = true })

	err := s.DocumentClosed(nil, -1, nil)
	require.NotNil(t, err)
	assert.False(t, called)
}

func TestCueServer_NoHandler(t *testing.T) {
	s := NewCueServer(nil)
	assert.Nil(t, s.DocumentOpened([]string{"a.ts"}, 1, nil))
}

func TestCueServer_EmitWithoutConnection(t *testing.T) {
	s := NewCueServer(nil)
	assert.Error(t, s.EmitNotification("s", "b", "error"))
	assert.False(t, s.IsRunning())
	assert.NoError(t, s.Stop())
}

func TestIntrospection(t *testing.T) {
	methods := cueMethods()
	require.Len(t, methods, 3)
	for _, m := range methods {
		require.Len(t, m.Args, 3)
		assert.Equal(t, "as", m.Args[0].Type)
		assert.Equal(t, "i", m.Args[1].Type)
		assert.Equal(t, "as", m.Args[2].Type)
	}

	signals := cueSignals()
	require.Len(t, signals, 1)
	assert.Equal(t, "Notification", signals[0].Name)
}

func TestCueServer_EmitConcurrentWithStop(t *testing.T) {
	s := NewCueServer(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.EmitNotification("s", "b", "warning")
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Stop())
			assert.False(t, s.IsRunning())
		}()
	}
	wg.Wait()
}

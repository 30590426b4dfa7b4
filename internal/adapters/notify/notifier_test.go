package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminforras/analog/internal/adapters/logger"
	"github.com/benjaminforras/analog/internal/adapters/notify"
	"github.com/benjaminforras/analog/internal/core/domain"
)

func TestDispatcher_DispatchWithoutRegistration(t *testing.T) {
	d := notify.New(logger.Discard())

	_, ok := d.Dispatch("src/a.mod")
	assert.False(t, ok)
}

func TestDispatcher_DispatchClearsEntry(t *testing.T) {
	d := notify.New(logger.Discard())
	d.RegisterClass("src/a.mod", domain.NewInternedString("AppComponent"))

	update, ok := d.Dispatch("src/a.mod")
	require.True(t, ok)
	assert.Equal(t, "AppComponent", update.Class.String())
	assert.Equal(t, "src/a.mod", update.File.String())
	assert.NotEmpty(t, update.ID)
	assert.False(t, update.Timestamp.IsZero())

	// The entry is consumed; the next dispatch needs a fresh registration.
	_, ok = d.Dispatch("src/a.mod")
	assert.False(t, ok)
}

func TestDispatcher_RegisteredReflectsTableState(t *testing.T) {
	d := notify.New(logger.Discard())

	_, ok := d.Registered("src/a.mod")
	assert.False(t, ok)

	d.RegisterClass("src/a.mod", domain.NewInternedString("AppComponent"))
	class, ok := d.Registered("./src/a.mod")
	require.True(t, ok)
	assert.Equal(t, "AppComponent", class.String())

	// Dispatch consumes the entry.
	_, ok = d.Dispatch("src/a.mod")
	require.True(t, ok)
	_, ok = d.Registered("src/a.mod")
	assert.False(t, ok)
}

func TestDispatcher_ReRegistrationReplacesClass(t *testing.T) {
	d := notify.New(logger.Discard())
	d.RegisterClass("src/a.mod", domain.NewInternedString("Old"))
	d.RegisterClass("src/a.mod", domain.NewInternedString("New"))

	update, ok := d.Dispatch("src/a.mod")
	require.True(t, ok)
	assert.Equal(t, "New", update.Class.String())
}

func TestDispatcher_UpdatesStream(t *testing.T) {
	d := notify.New(logger.Discard())
	d.RegisterClass("src/a.mod", domain.NewInternedString("A"))

	dispatched, ok := d.Dispatch("src/a.mod")
	require.True(t, ok)

	select {
	case got := <-d.Updates():
		assert.Equal(t, dispatched.ID, got.ID)
		assert.Equal(t, "A", got.Class.String())
	default:
		t.Fatal("expected a buffered hot update")
	}
}

func TestDispatcher_NormalizesFileIDs(t *testing.T) {
	d := notify.New(logger.Discard())
	d.RegisterClass("./src/a.mod", domain.NewInternedString("A"))

	update, ok := d.Dispatch("src/a.mod")
	require.True(t, ok)
	assert.Equal(t, "src/a.mod", update.File.String())
}

func TestDispatcher_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	d := notify.New(logger.Discard())

	// Nobody drains Updates; dispatching more than the buffer size must not
	// deadlock.
	for i := 0; i < 32; i++ {
		d.RegisterClass("src/a.mod", domain.NewInternedString("A"))
		_, ok := d.Dispatch("src/a.mod")
		assert.True(t, ok)
	}
}

// Package notify owns the session-scoped class-name table and dispatches
// outbound hot-update notifications.
package notify

import (
	"sync"
	"time"
	"unique"

	"github.com/google/uuid"

	"github.com/benjaminforras/analog/internal/core/domain"
	"github.com/benjaminforras/analog/internal/core/ports"
)

var _ ports.Notifier = (*Dispatcher)(nil)

const updateChannelBuffer = 16

// Dispatcher implements ports.Notifier. The table maps a file id to the most
// recently emitted hot-reloadable class; the entry is cleared immediately
// after dispatch, forcing re-registration on the next eligible change.
type Dispatcher struct {
	mu      sync.Mutex
	classes map[unique.Handle[string]]domain.InternedString
	updates chan domain.HotUpdate
	logger  ports.Logger
}

// New creates a dispatcher.
func New(log ports.Logger) *Dispatcher {
	return &Dispatcher{
		classes: make(map[unique.Handle[string]]domain.InternedString),
		updates: make(chan domain.HotUpdate, updateChannelBuffer),
		logger:  log,
	}
}

func key(fileID string) unique.Handle[string] {
	return unique.Make(domain.NormalizeID(fileID))
}

// RegisterClass records the most recently emitted hot-reloadable class for a
// file id.
func (d *Dispatcher) RegisterClass(fileID string, class domain.InternedString) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.classes[key(fileID)] = class
}

// Registered returns the class currently registered for a file id, if any.
func (d *Dispatcher) Registered(fileID string) (domain.InternedString, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	class, ok := d.classes[key(fileID)]
	return class, ok
}

// Dispatch emits a hot-update notification for the file's registered class
// and clears the table entry.
func (d *Dispatcher) Dispatch(fileID string) (domain.HotUpdate, bool) {
	d.mu.Lock()
	class, ok := d.classes[key(fileID)]
	if !ok {
		d.mu.Unlock()
		return domain.HotUpdate{}, false
	}
	delete(d.classes, key(fileID))
	d.mu.Unlock()

	update := domain.HotUpdate{
		ID:        uuid.NewString(),
		Class:     class,
		File:      domain.NewInternedString(domain.NormalizeID(fileID)),
		Timestamp: time.Now(),
	}
	select {
	case d.updates <- update:
	default:
		// No consumer is draining; dropping beats stalling the rebuild loop.
		if d.logger != nil {
			d.logger.Warn("hot-update channel full, dropping notification for " + fileID)
		}
	}
	return update, true
}

// Updates exposes the outbound notification stream.
func (d *Dispatcher) Updates() <-chan domain.HotUpdate {
	return d.updates
}

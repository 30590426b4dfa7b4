package ports

import "github.com/benjaminforras/analog/internal/core/domain"

// Notifier owns the session-scoped class-name table and dispatches outbound
// hot-update notifications. The table entry for a file is cleared immediately
// after dispatch, forcing re-registration on the next eligible change.
//
//go:generate mockgen -source=notifier.go -destination=mocks/mock_notifier.go -package=mocks
type Notifier interface {
	// RegisterClass records the most recently emitted hot-reloadable class
	// for a file id.
	RegisterClass(fileID string, class domain.InternedString)
	// Dispatch emits a hot-update notification for the file's registered
	// class and clears the table entry. Returns false when no class is
	// registered for the file.
	Dispatch(fileID string) (domain.HotUpdate, bool)
	// Updates exposes the outbound notification stream.
	Updates() <-chan domain.HotUpdate
}

package details

import (
	notifService "ichiba_backend/internals/features/notifications/service"
	draftService "ichiba_backend/internals/features/registration/draft/service"
	"ichiba_backend/internals/helpers/kvstore"
)

// Deps carries the long-lived services that main owns and must close on
// shutdown.
type Deps struct {
	Sessions kvstore.Store
	Drafts   *draftService.Coalescer
	Notifier *notifService.Dispatcher
}

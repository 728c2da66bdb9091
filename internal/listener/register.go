package listener

import (
	"log/slog"
	"time"

	"github.com/phrazzld/roster-api/internal/events"
)

// Deps are the collaborators of the registered listeners. Only Logger is
// required.
type Deps struct {
	Logger      *slog.Logger
	Notifier    Notifier
	Idempotency IdempotencyStore
	JournalSize int
	JobMetrics  JobMetrics
	// Sink enables the exporter when set.
	Sink Sink
}

// Listeners exposes the registered listeners that other components read from.
type Listeners struct {
	Journal *EventJournal
}

// Register subscribes every listener to bus. It must be called once before
// the first publish.
func Register(bus events.Subscriber, deps Deps) *Listeners {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = NewLoggingNotifier(log)
	}
	idem := deps.Idempotency
	if idem == nil {
		idem = NewMemoryIdempotencyStore(24*time.Hour, DefaultIdempotencyCapacity)
	}

	audit := NewAuditLogger(log)
	journal := NewEventJournal(deps.JournalSize)

	// Async deliveries are held until the publishing transaction commits, so
	// the audit log and the journal never see rolled back events.
	bus.SubscribeAll("audit", events.Async, audit.Handle)
	bus.SubscribeAll("journal", events.Async, journal.Handle)
	events.OnSystem(bus, "job_reporter", events.Sync, NewJobReporter(deps.JobMetrics, log).Handle)

	events.On(bus, "welcome_notifier", events.Async, NewWelcomeNotifier(notifier, idem, log).Handle)
	events.On(bus, "contact_change_notifier", events.Async, NewContactChangeNotifier(notifier, idem, log).Handle)
	events.On(bus, "membership_notifier", events.Async, NewMembershipNotifier(notifier, idem, log).Handle)

	if deps.Sink != nil {
		bus.SubscribeAll("exporter", events.Async, NewExporter(deps.Sink, log).Handle)
	}

	return &Listeners{Journal: journal}
}

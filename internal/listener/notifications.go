package listener

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/platform/logger"
)

// deliver sends n unless key was already claimed. Claim errors fail open:
// a duplicate notification beats a lost one.
func deliver(ctx context.Context, log *slog.Logger, idem IdempotencyStore, notifier Notifier, key string, n Notification) error {
	fresh, err := idem.Claim(ctx, key)
	if err != nil {
		log.Warn("idempotency check failed, sending anyway", "key", key, "error", err)
		fresh = true
	}
	if !fresh {
		log.Debug("notification already sent", "key", key)
		return nil
	}
	if err := notifier.Notify(ctx, n); err != nil {
		if rerr := idem.Release(ctx, key); rerr != nil {
			log.Warn("failed to release idempotency key", "key", key, "error", rerr)
		}
		return fmt.Errorf("notify %s via %s: %w", n.Template, n.Channel, err)
	}
	return nil
}

func notificationKey(template string, eventID uuid.UUID, channel Channel) string {
	return fmt.Sprintf("%s:%s:%s", template, eventID, channel)
}

// WelcomeNotifier greets newly created people.
type WelcomeNotifier struct {
	notifier Notifier
	idem     IdempotencyStore
	logger   *slog.Logger
}

// NewWelcomeNotifier creates a WelcomeNotifier.
func NewWelcomeNotifier(n Notifier, idem IdempotencyStore, l *slog.Logger) *WelcomeNotifier {
	return &WelcomeNotifier{notifier: n, idem: idem, logger: l.With("component", "welcome_notifier")}
}

// Handle sends the welcome email for e.
func (w *WelcomeNotifier) Handle(ctx context.Context, e events.PersonCreated) error {
	log := logger.FromContextOrDefault(ctx, w.logger)
	return deliver(ctx, log, w.idem, w.notifier, notificationKey(TemplateWelcome, e.EventID(), ChannelEmail), Notification{
		Channel:   ChannelEmail,
		Recipient: e.Email.String(),
		Template:  TemplateWelcome,
		Data:      map[string]string{"name": e.Name},
	})
}

// ContactChangeNotifier confirms changed contact details. An email change is
// announced to the new address and a phone change to the new number. Removing
// a phone sends nothing.
type ContactChangeNotifier struct {
	notifier Notifier
	idem     IdempotencyStore
	logger   *slog.Logger
}

// NewContactChangeNotifier creates a ContactChangeNotifier.
func NewContactChangeNotifier(n Notifier, idem IdempotencyStore, l *slog.Logger) *ContactChangeNotifier {
	return &ContactChangeNotifier{notifier: n, idem: idem, logger: l.With("component", "contact_change_notifier")}
}

// Handle sends the change notices for e, if any.
func (c *ContactChangeNotifier) Handle(ctx context.Context, e events.PersonUpdated) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if e.EmailChanged() {
		err := deliver(ctx, log, c.idem, c.notifier, notificationKey(TemplateEmailChanged, e.EventID(), ChannelEmail), Notification{
			Channel:   ChannelEmail,
			Recipient: e.NewEmail.String(),
			Template:  TemplateEmailChanged,
			Data:      map[string]string{"name": e.NewName},
		})
		if err != nil {
			return err
		}
	}

	if e.PhoneChanged() && e.NewPhone != nil {
		return deliver(ctx, log, c.idem, c.notifier, notificationKey(TemplatePhoneChanged, e.EventID(), ChannelSMS), Notification{
			Channel:   ChannelSMS,
			Recipient: e.NewPhone.String(),
			Template:  TemplatePhoneChanged,
			Data:      map[string]string{"name": e.NewName},
		})
	}
	return nil
}

// MembershipNotifier tells a person they joined an organization.
type MembershipNotifier struct {
	notifier Notifier
	idem     IdempotencyStore
	logger   *slog.Logger
}

// NewMembershipNotifier creates a MembershipNotifier.
func NewMembershipNotifier(n Notifier, idem IdempotencyStore, l *slog.Logger) *MembershipNotifier {
	return &MembershipNotifier{notifier: n, idem: idem, logger: l.With("component", "membership_notifier")}
}

// Handle sends the membership notice for e.
func (m *MembershipNotifier) Handle(ctx context.Context, e events.MemberAdded) error {
	log := logger.FromContextOrDefault(ctx, m.logger)
	return deliver(ctx, log, m.idem, m.notifier, notificationKey(TemplateMemberAdded, e.EventID(), ChannelEmail), Notification{
		Channel:   ChannelEmail,
		Recipient: e.PersonEmail.String(),
		Template:  TemplateMemberAdded,
		Data: map[string]string{
			"organization": e.OrganizationName,
			"role":         string(e.Role),
		},
	})
}

package listener

import (
	"context"
	"log/slog"

	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/redact"
)

// Channel is the medium a notification is sent through.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Notification templates.
const (
	TemplateWelcome      = "welcome"
	TemplateEmailChanged = "email_changed"
	TemplatePhoneChanged = "phone_changed"
	TemplateMemberAdded  = "member_added"
)

// Notification is a message to one recipient.
type Notification struct {
	Channel   Channel
	Recipient string
	Template  string
	Data      map[string]string
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LoggingNotifier writes notifications to the log instead of sending them.
// Recipients are masked.
type LoggingNotifier struct {
	logger *slog.Logger
}

// NewLoggingNotifier creates a LoggingNotifier.
func NewLoggingNotifier(l *slog.Logger) *LoggingNotifier {
	if l == nil {
		l = slog.Default()
	}
	return &LoggingNotifier{logger: l.With("component", "notifier")}
}

// Notify implements Notifier.
func (n *LoggingNotifier) Notify(ctx context.Context, msg Notification) error {
	log := logger.FromContextOrDefault(ctx, n.logger)
	log.Info("notification sent",
		"channel", string(msg.Channel),
		"recipient", maskRecipient(msg),
		"template", msg.Template)
	return nil
}

func maskRecipient(msg Notification) string {
	switch msg.Channel {
	case ChannelEmail:
		return redact.MaskEmail(msg.Recipient)
	case ChannelSMS:
		return redact.MaskPhone(msg.Recipient)
	default:
		return redact.String(msg.Recipient)
	}
}

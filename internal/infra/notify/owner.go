package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xavierca1/gym-leadbot/internal/entity"
	"github.com/xavierca1/gym-leadbot/internal/infra/mail"
	"github.com/xavierca1/gym-leadbot/pkg/logger"
)

type TextSender interface {
	SendText(ctx context.Context, to, text string) error
}

type EmailSender interface {
	SendOwnerAlert(to string, data mail.AlertEmailData) error
}

// OwnerNotifier delivers alerts to the business owner over WhatsApp, and
// trial alerts also by e-mail when configured.
type OwnerNotifier struct {
	WhatsApp     TextSender
	Email        EmailSender
	OwnerNumber  string
	OwnerEmail   string
	BusinessName string
	Location     *time.Location
}

func NewOwnerNotifier(wa TextSender, email EmailSender, ownerNumber, ownerEmail, businessName string, loc *time.Location) *OwnerNotifier {
	if loc == nil {
		loc = time.Local
	}
	return &OwnerNotifier{
		WhatsApp:     wa,
		Email:        email,
		OwnerNumber:  entity.NormalizePhone(ownerNumber),
		OwnerEmail:   ownerEmail,
		BusinessName: businessName,
		Location:     loc,
	}
}

func (n *OwnerNotifier) Notify(ctx context.Context, alert entity.OwnerAlert) error {
	var errs []error

	if n.OwnerNumber != "" && n.WhatsApp != nil {
		if err := n.WhatsApp.SendText(ctx, n.OwnerNumber, FormatAlert(alert, n.Location)); err != nil {
			errs = append(errs, fmt.Errorf("whatsapp: %w", err))
		}
	} else {
		logger.Debug().Str("kind", string(alert.Kind)).Msg("owner number not configured, alert not sent")
	}

	if alert.Kind != entity.AlertActivity && n.Email != nil && n.OwnerEmail != "" {
		data := mail.AlertEmailData{
			BusinessName: n.BusinessName,
			Title:        alertTitle(alert.Kind),
			Name:         alert.Name,
			Phone:        alert.Phone,
			VisitTime:    alert.VisitTime,
			At:           alert.At.In(n.Location).Format(entity.LastUpdateLayout),
		}
		if err := n.Email.SendOwnerAlert(n.OwnerEmail, data); err != nil {
			errs = append(errs, fmt.Errorf("email: %w", err))
		}
	}

	return errors.Join(errs...)
}

func alertTitle(kind entity.AlertKind) string {
	switch kind {
	case entity.AlertTrialBooked:
		return "🔥 TRIAL BOOKED!"
	case entity.AlertTrialConfirmed:
		return "✅ TRIAL CONFIRMED!"
	default:
		return "🔔 New Lead Activity"
	}
}

// FormatAlert renders the WhatsApp text for an alert.
func FormatAlert(a entity.OwnerAlert, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	at := a.At.In(loc).Format(entity.LastUpdateLayout)

	switch a.Kind {
	case entity.AlertTrialBooked:
		return fmt.Sprintf("%s\n\n👤 Name: %s\n📱 Phone: %s\n📅 Visit: %s\n⏰ Time: %s\n",
			alertTitle(a.Kind), a.Name, a.Phone, a.VisitTime, at)
	case entity.AlertTrialConfirmed:
		return fmt.Sprintf("%s\n\n👤 Name: %s\n📱 Phone: %s\n⏰ Time: %s\n",
			alertTitle(a.Kind), a.Name, a.Phone, at)
	default:
		return fmt.Sprintf("%s\n\n📱 Phone: %s\n💬 Message: %s\n🔥 Lead Type: %s\n⏰ Time: %s\n",
			alertTitle(a.Kind), a.Phone, a.Message, a.Tier, at)
	}
}

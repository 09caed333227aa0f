package usecase

import (
	"context"

	"github.com/xavierca1/gym-leadbot/internal/entity"
)

// SessionStore keeps one conversation state per normalized phone.
type SessionStore interface {
	// Update loads the session for phone (creating it in MENU when absent),
	// applies fn and persists the result. Calls for the same phone are
	// serialized. If fn returns an error nothing is persisted.
	Update(ctx context.Context, phone string, fn func(s *entity.Session) error) (*entity.Session, error)
	Get(ctx context.Context, phone string) (*entity.Session, error)
}

// FingerprintStore remembers the last event fingerprint per sender.
type FingerprintStore interface {
	// Swap stores fp for sender and returns the previous value ("" if none).
	Swap(ctx context.Context, sender, fp string) (string, error)
}

type LeadStore = entity.LeadRepositoryInterface

// Messenger is the outbound messaging channel.
type Messenger interface {
	SendText(ctx context.Context, to, text string) error
	SendImage(ctx context.Context, to, imageURL, caption string) error
	SendButtons(ctx context.Context, to, prompt string, options []entity.ButtonOption) error
	TemplateSender
}

type TemplateSender interface {
	SendTemplate(ctx context.Context, to, templateID string, params []string) error
}

type OwnerNotifier interface {
	Notify(ctx context.Context, alert entity.OwnerAlert) error
}

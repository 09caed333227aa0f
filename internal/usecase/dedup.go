package usecase

import (
	"context"

	"github.com/xavierca1/gym-leadbot/internal/entity"
	"github.com/xavierca1/gym-leadbot/pkg/logger"
)

// DedupGuard drops an inbound event identical to the sender's previous one.
// Only the last fingerprint per sender is kept, so A, B, A is processed
// three times.
type DedupGuard struct {
	Store FingerprintStore
}

func NewDedupGuard(store FingerprintStore) *DedupGuard {
	return &DedupGuard{Store: store}
}

// Fingerprint is sender-(buttonID or message).
func Fingerprint(sender, message, buttonID string) string {
	key := buttonID
	if key == "" {
		key = message
	}
	return sender + "-" + key
}

// IsDuplicate records the event and reports whether it repeats the previous
// one. A store failure lets the event through.
func (g *DedupGuard) IsDuplicate(ctx context.Context, ev InboundEvent) bool {
	sender := entity.NormalizePhone(ev.Sender)
	fp := Fingerprint(sender, ev.Message, ev.ButtonID)

	prev, err := g.Store.Swap(ctx, sender, fp)
	if err != nil {
		logger.Warn().Err(err).Str("phone", sender).Msg("⚠️ dedup store unavailable, processing event")
		return false
	}
	return prev == fp
}

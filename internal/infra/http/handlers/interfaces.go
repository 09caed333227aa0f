package handlers

import (
	"context"

	"github.com/xavierca1/gym-leadbot/internal/entity"
	"github.com/xavierca1/gym-leadbot/internal/usecase"
)

type MessageEngine interface {
	Execute(ctx context.Context, input usecase.HandleMessageInput) (*usecase.HandleMessageOutput, error)
}

type Deduplicator interface {
	IsDuplicate(ctx context.Context, ev usecase.InboundEvent) bool
}

type ReplySender interface {
	Deliver(ctx context.Context, to string, reply entity.ReplyDirective) error
}

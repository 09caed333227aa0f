package usecase

import "github.com/xavierca1/gym-leadbot/internal/entity"

type HandleMessageInput struct {
	Phone    string `json:"phone"`
	Message  string `json:"message"`
	ButtonID string `json:"button_id,omitempty"`
}

type HandleMessageOutput struct {
	Reply   entity.ReplyDirective `json:"reply"`
	Tier    entity.Tier           `json:"tier"`
	Session entity.Session        `json:"session"`
}

// InboundEvent is a parsed channel event before it reaches the engine.
type InboundEvent struct {
	Sender   string
	Message  string
	ButtonID string
}

type FollowUpReport struct {
	Scanned       int
	Skipped       int
	RemindersSent int
	ReviewsSent   int
	Failed        int
}

package entity

// ReplyKind tells the rendering layer how to present a reply.
type ReplyKind string

const (
	ReplyText            ReplyKind = "text"
	ReplyMenu            ReplyKind = "menu"
	ReplyMenuRepeat      ReplyKind = "menu_repeat"
	ReplyTrialButtons    ReplyKind = "trial_buttons"
	ReplyGymImages       ReplyKind = "gym_images"
	ReplyTransformations ReplyKind = "transformations"
)

type ReplyDirective struct {
	Kind ReplyKind `json:"type"`
	Text string    `json:"text,omitempty"`
	Name string    `json:"name,omitempty"`
}

func TextReply(text string) ReplyDirective {
	return ReplyDirective{Kind: ReplyText, Text: text}
}

// ButtonOption is one quick-reply button.
type ButtonOption struct {
	Title        string `json:"title" yaml:"title"`
	PostbackText string `json:"postbackText" yaml:"postback"`
}

package whatsapp

import "github.com/xavierca1/gym-leadbot/internal/entity"

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type imageMessage struct {
	Type        string `json:"type"`
	OriginalURL string `json:"originalUrl"`
	PreviewURL  string `json:"previewUrl"`
	Caption     string `json:"caption"`
}

type quickReplyMessage struct {
	Type    string                `json:"type"`
	Content textMessage           `json:"content"`
	Options []entity.ButtonOption `json:"options"`
}

type templateRef struct {
	ID     string   `json:"id"`
	Params []string `json:"params"`
}

// SendMessageResponse is what Gupshup answers on accepted sends.
type SendMessageResponse struct {
	Status    string `json:"status"`
	MessageID string `json:"messageId"`
	Message   string `json:"message,omitempty"`
}

// InboundEvent is the Gupshup v2 webhook envelope.
type InboundEvent struct {
	App     string         `json:"app"`
	Type    string         `json:"type"`
	Payload InboundPayload `json:"payload"`
}

type InboundPayload struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Type   string `json:"type"`
	Sender struct {
		Phone string `json:"phone"`
		Name  string `json:"name"`
	} `json:"sender"`
	Payload struct {
		Text         string `json:"text"`
		Title        string `json:"title"`
		PostbackText string `json:"postbackText"`
	} `json:"payload"`
}

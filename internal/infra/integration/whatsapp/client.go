package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/gym-leadbot/internal/entity"
	"github.com/xavierca1/gym-leadbot/pkg/logger"
)

const DefaultBaseURL = "https://api.gupshup.io/wa/api/v1"

// Client sends WhatsApp messages through the Gupshup API.
type Client struct {
	apiKey       string
	appName      string
	sourceNumber string
	baseURL      string
	httpClient   *http.Client
}

type ClientConfig struct {
	APIKey       string
	AppName      string
	SourceNumber string
	BaseURL      string
	HTTPClient   *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		apiKey:       cfg.APIKey,
		appName:      cfg.AppName,
		sourceNumber: entity.NormalizePhone(cfg.SourceNumber),
		baseURL:      base,
		httpClient:   hc,
	}
}

func (c *Client) SendText(ctx context.Context, to, text string) error {
	return c.sendMessage(ctx, to, textMessage{Type: "text", Text: text})
}

func (c *Client) SendImage(ctx context.Context, to, imageURL, caption string) error {
	return c.sendMessage(ctx, to, imageMessage{
		Type:        "image",
		OriginalURL: imageURL,
		PreviewURL:  imageURL,
		Caption:     caption,
	})
}

// SendButtons sends a quick-reply prompt (WhatsApp allows up to 3 options).
func (c *Client) SendButtons(ctx context.Context, to, prompt string, options []entity.ButtonOption) error {
	if len(options) == 0 || len(options) > 3 {
		return fmt.Errorf("gupshup: quick reply needs 1 to 3 options, got %d", len(options))
	}
	return c.sendMessage(ctx, to, quickReplyMessage{
		Type:    "quick_reply",
		Content: textMessage{Type: "text", Text: prompt},
		Options: options,
	})
}

func (c *Client) SendTemplate(ctx context.Context, to, templateID string, params []string) error {
	if params == nil {
		params = []string{}
	}
	tpl, err := json.Marshal(templateRef{ID: templateID, Params: params})
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("source", c.sourceNumber)
	form.Set("destination", entity.NormalizePhone(to))
	form.Set("template", string(tpl))
	if c.appName != "" {
		form.Set("src.name", c.appName)
	}

	return c.post(ctx, c.baseURL+"/template/msg", form, "template")
}

func (c *Client) sendMessage(ctx context.Context, to string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		logger.Error().Err(err).Msg("❌ gupshup: failed to encode message")
		return err
	}

	form := url.Values{}
	form.Set("channel", "whatsapp")
	form.Set("source", c.sourceNumber)
	form.Set("destination", entity.NormalizePhone(to))
	form.Set("message", string(body))
	form.Set("src.name", c.appName)

	return c.post(ctx, c.baseURL+"/msg", form, "message")
}

func (c *Client) post(ctx context.Context, endpoint string, form url.Values, kind string) error {
	if c.apiKey == "" || c.sourceNumber == "" {
		logger.Warn().Msg("⚠️ gupshup: API key or source number not configured")
		return fmt.Errorf("gupshup not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("kind", kind).Msg("❌ gupshup: request failed")
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error().Int("status", resp.StatusCode).Str("kind", kind).Str("body", string(respBody)).Msg("❌ gupshup: API error")
		return fmt.Errorf("gupshup api error: %d", resp.StatusCode)
	}

	var result SendMessageResponse
	if err := json.Unmarshal(respBody, &result); err == nil && result.Status == "error" {
		return fmt.Errorf("gupshup: %s", result.Message)
	}

	logger.Debug().
		Str("kind", kind).
		Str("destination", form.Get("destination")).
		Str("message_id", result.MessageID).
		Msg("✅ gupshup: message accepted")
	return nil
}

// ParseInbound turns a webhook body into an event. ok is false for
// non-message events and for messages without a sender.
func ParseInbound(ev InboundEvent) (sender, message, buttonID string, ok bool) {
	if ev.Type != "message" {
		return "", "", "", false
	}
	sender = ev.Payload.Sender.Phone
	if sender == "" {
		sender = ev.Payload.Source
	}
	if sender == "" {
		return "", "", "", false
	}

	switch ev.Payload.Type {
	case "text":
		message = ev.Payload.Payload.Text
	case "button_reply", "quick_reply":
		buttonID = ev.Payload.Payload.PostbackText
		message = ev.Payload.Payload.Title
		if message == "" {
			message = ev.Payload.Payload.Text
		}
	}
	return sender, message, buttonID, true
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xavierca1/gym-leadbot/internal/entity"
)

const (
	trialPromptFmt      = "Nice %s 😊\nAap kab visit karna chahoge?"
	trialPlainOptionFmt = "Reply 1 for Today, 2 for Tomorrow or OTHER for some other day."
)

// ReplyDeliverer renders reply directives onto a Messenger.
type ReplyDeliverer struct {
	Messenger Messenger
	Content   *entity.Content
}

func NewReplyDeliverer(m Messenger, content *entity.Content) *ReplyDeliverer {
	return &ReplyDeliverer{Messenger: m, Content: content}
}

// Deliver sends every message of a reply. It keeps going after a failed
// send and returns the joined errors.
func (d *ReplyDeliverer) Deliver(ctx context.Context, to string, reply entity.ReplyDirective) error {
	c := d.Content
	switch reply.Kind {
	case entity.ReplyMenu:
		return errors.Join(
			d.Messenger.SendButtons(ctx, to, c.WelcomeText, c.MainMenu),
			d.Messenger.SendButtons(ctx, to, c.MoreOptionsText, c.MoreOptions),
		)
	case entity.ReplyMenuRepeat:
		return d.Messenger.SendButtons(ctx, to, c.MoreOptionsText, c.MoreOptions)
	case entity.ReplyTrialButtons:
		return d.Messenger.SendButtons(ctx, to, fmt.Sprintf(trialPromptFmt, reply.Name), c.VisitOptions)
	case entity.ReplyTransformations:
		return d.sendGallery(ctx, to, c.Transformations)
	case entity.ReplyGymImages:
		return d.sendGallery(ctx, to, c.GymPhotos)
	default:
		return d.Messenger.SendText(ctx, to, reply.Text)
	}
}

func (d *ReplyDeliverer) sendGallery(ctx context.Context, to string, g entity.Gallery) error {
	errs := []error{d.Messenger.SendText(ctx, to, g.Caption)}
	for _, url := range g.Images {
		errs = append(errs, d.Messenger.SendImage(ctx, to, url, ""))
	}
	return errors.Join(errs...)
}

// PlainText renders a reply for channels without buttons or images.
func PlainText(reply entity.ReplyDirective, c *entity.Content) string {
	switch reply.Kind {
	case entity.ReplyMenu:
		return c.WelcomeText + "\n" + optionList(append(append([]entity.ButtonOption{}, c.MainMenu...), c.MoreOptions...))
	case entity.ReplyMenuRepeat:
		return c.MoreOptionsText + "\n" + optionList(c.MoreOptions)
	case entity.ReplyTrialButtons:
		return fmt.Sprintf(trialPromptFmt, reply.Name) + "\n" + trialPlainOptionFmt
	case entity.ReplyTransformations:
		return galleryText(c.Transformations)
	case entity.ReplyGymImages:
		return galleryText(c.GymPhotos)
	default:
		return reply.Text
	}
}

func optionList(opts []entity.ButtonOption) string {
	lines := make([]string, 0, len(opts))
	for _, o := range opts {
		lines = append(lines, fmt.Sprintf("%s (reply %s)", o.Title, o.PostbackText))
	}
	return strings.Join(lines, "\n")
}

func galleryText(g entity.Gallery) string {
	return g.Caption + "\n" + strings.Join(g.Images, "\n")
}

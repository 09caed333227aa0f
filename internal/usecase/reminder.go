package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/gym-leadbot/internal/entity"
	"github.com/xavierca1/gym-leadbot/pkg/logger"
)

// SendFollowUpsUseCase is one pass of the reminder scheduler: it sends due
// visit reminders and review requests and flags them as sent.
type SendFollowUpsUseCase struct {
	Leads              LeadStore
	Sender             TemplateSender
	ReminderTemplateID string
	ReviewTemplateID   string
	ReviewLink         string
	Location           *time.Location
	Now                func() time.Time
}

func NewSendFollowUpsUseCase(leads LeadStore, sender TemplateSender, reminderTemplateID, reviewTemplateID, reviewLink string, loc *time.Location) *SendFollowUpsUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &SendFollowUpsUseCase{
		Leads:              leads,
		Sender:             sender,
		ReminderTemplateID: reminderTemplateID,
		ReviewTemplateID:   reviewTemplateID,
		ReviewLink:         reviewLink,
		Location:           loc,
		Now:                time.Now,
	}
}

// Execute scans every lead once. Only a failed scan is returned; row
// failures are logged and counted.
func (uc *SendFollowUpsUseCase) Execute(ctx context.Context) (FollowUpReport, error) {
	var report FollowUpReport

	leads, err := uc.Leads.ScanAll(ctx)
	if err != nil {
		return report, &TechnicalError{Code: CodeLeadScanFailed, Message: "scan leads", Err: err}
	}

	now := uc.Now().In(uc.Location)
	for _, lead := range leads {
		report.Scanned++
		if lead == nil || entity.NormalizePhone(lead.Phone) == "" {
			report.Skipped++
			continue
		}
		if err := uc.processLead(ctx, lead, now, &report); err != nil {
			report.Failed++
			logger.Error().Err(err).Str("phone", lead.Phone).Msg("❌ follow-up failed")
		}
	}

	return report, nil
}

func (uc *SendFollowUpsUseCase) processLead(ctx context.Context, lead *entity.Lead, now time.Time, report *FollowUpReport) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	phone := entity.NormalizePhone(lead.Phone)

	sent, err := uc.dispatchIfDue(ctx, phone, lead.ReminderTime, lead.ReminderSent, now,
		uc.ReminderTemplateID, []string{lead.Name}, entity.ColumnReminderSent)
	if err != nil {
		return fmt.Errorf("reminder: %w", err)
	}
	if sent {
		report.RemindersSent++
		logger.Info().Str("phone", phone).Msg("✅ reminder sent")
	}

	sent, err = uc.dispatchIfDue(ctx, phone, lead.ReviewTime, lead.ReviewSent, now,
		uc.ReviewTemplateID, []string{lead.Name, uc.ReviewLink}, entity.ColumnReviewSent)
	if err != nil {
		return fmt.Errorf("review: %w", err)
	}
	if sent {
		report.ReviewsSent++
		logger.Info().Str("phone", phone).Msg("⭐ review request sent")
	}
	return nil
}

// dispatchIfDue sends the template when due and only then flips the flag,
// so a crash in between re-sends on the next pass.
func (uc *SendFollowUpsUseCase) dispatchIfDue(ctx context.Context, phone, dueAt, flag string, now time.Time, templateID string, params []string, flagCol entity.LeadColumn) (bool, error) {
	dueAt = strings.TrimSpace(dueAt)
	if dueAt == "" || flag != entity.FlagPending {
		return false, nil
	}

	due, err := time.ParseInLocation(entity.DueTimeLayout, dueAt, uc.Location)
	if err != nil {
		return false, fmt.Errorf("parse due time %q: %w", dueAt, err)
	}
	if now.Before(due) {
		return false, nil
	}

	if err := uc.Sender.SendTemplate(ctx, phone, templateID, params); err != nil {
		return false, fmt.Errorf("send template: %w", err)
	}
	if err := uc.Leads.UpdateColumn(ctx, phone, flagCol, entity.FlagSent); err != nil {
		return false, fmt.Errorf("mark sent: %w", err)
	}
	return true, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/gym-leadbot/internal/entity"
	"github.com/xavierca1/gym-leadbot/pkg/logger"
)

const (
	interestFreeTrial    = "Free Trial"
	interestTrialBooking = "Free Trial Booking"

	trialStatusBookedPrefix = "Trial booked"
	trialStatusConfirmed    = "Trial Confirmed"

	lastMessageTrialBooked  = "Trial booked"
	lastMessageVisitConfirm = "Visit Confirmed via Reminder"

	msgAskName         = "Great! 💪 Aapka naam kya hai?"
	msgSelectButtons   = "⚠️ Please select from given buttons."
	msgTypeMenu        = "🙂 Please type MENU to see options."
	msgFallback        = "⚠️ Please select a valid option.\n\nType MENU to see options."
	msgTrialBookedFmt  = "✅ Thanks %s!\n\nYour free trial request has been received 💪\nOur team from *%s* will contact you soon.\n\n📌 Reminder: Your slot will be reserved for 48 hours.\n\nReply *MENU* anytime for options."
	msgVisitConfirmFmt = "✅ Great %s!\n\nYour visit has been successfully confirmed 💪🔥\n\nWe look forward to seeing you at *%s*.\n\nIf you need any help, just type MENU 😊"
)

// HandleMessageUseCase is the dialogue engine: one call per inbound message.
type HandleMessageUseCase struct {
	Sessions SessionStore
	Leads    LeadStore
	Notifier OwnerNotifier
	Content  *entity.Content
	Location *time.Location
	Now      func() time.Time
}

func NewHandleMessageUseCase(
	sessions SessionStore,
	leads LeadStore,
	notifier OwnerNotifier,
	content *entity.Content,
	loc *time.Location,
) *HandleMessageUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &HandleMessageUseCase{
		Sessions: sessions,
		Leads:    leads,
		Notifier: notifier,
		Content:  content,
		Location: loc,
		Now:      time.Now,
	}
}

// turn is the working set of a single Execute call.
type turn struct {
	phone   string
	raw     string
	token   string
	session *entity.Session
	now     time.Time
}

// Execute classifies the message, alerts the owner, upserts the lead and
// then applies exactly one dialogue rule. Lead store and alert failures are
// logged and never change the reply.
func (uc *HandleMessageUseCase) Execute(ctx context.Context, input HandleMessageInput) (*HandleMessageOutput, error) {
	phone := entity.NormalizePhone(input.Phone)
	if phone == "" {
		return nil, &DomainError{Code: CodeInvalidInput, Message: "phone is required"}
	}

	var out HandleMessageOutput
	sess, err := uc.Sessions.Update(ctx, phone, func(s *entity.Session) error {
		t := &turn{
			phone:   phone,
			raw:     input.Message,
			token:   normalizeToken(input.Message, input.ButtonID),
			session: s,
			now:     uc.Now().In(uc.Location),
		}
		s.LastSeen = t.now

		tier := ClassifyLead(t.token, s.State)
		s.Lead.LeadType = tier

		uc.notify(ctx, entity.OwnerAlert{
			Kind:    entity.AlertActivity,
			Phone:   phone,
			Message: input.Message,
			Tier:    tier,
			At:      t.now,
		})
		uc.upsert(ctx, entity.LeadUpsert{
			Phone:       phone,
			Name:        s.Lead.Name,
			Interest:    s.Lead.Interest,
			LeadType:    tier,
			TrialStatus: s.Lead.TrialStatus,
			LastMessage: input.Message,
			At:          t.now,
		})

		out.Tier = tier
		out.Reply = uc.dispatch(ctx, t)
		return nil
	})
	if err != nil {
		return nil, &TechnicalError{Code: CodeSessionFailure, Message: "session store failed", Err: err}
	}

	out.Session = *sess
	logger.Debug().
		Str("phone", phone).
		Str("state", string(sess.State)).
		Str("tier", string(out.Tier)).
		Str("reply", string(out.Reply.Kind)).
		Msg("message handled")
	return &out, nil
}

func (uc *HandleMessageUseCase) dispatch(ctx context.Context, t *turn) entity.ReplyDirective {
	state := t.session.State
	row, ok := transitions[state]
	if !ok {
		logger.Warn().Str("phone", t.phone).Str("state", string(state)).Msg("⚠️ unknown dialogue state, resetting to MENU")
		t.session.State = entity.StateMenu
		row = transitions[entity.StateMenu]
	}
	return row[categorize(t.token)](uc, ctx, t)
}

func (uc *HandleMessageUseCase) startTrial(_ context.Context, t *turn) entity.ReplyDirective {
	t.session.State = entity.StateAskName
	t.session.Lead.Interest = interestFreeTrial
	return entity.TextReply(msgAskName)
}

func (uc *HandleMessageUseCase) captureName(_ context.Context, t *turn) entity.ReplyDirective {
	t.session.Lead.Name = ExtractName(t.raw)
	t.session.State = entity.StateAskVisitTime
	return entity.ReplyDirective{Kind: entity.ReplyTrialButtons, Name: t.session.Lead.Name}
}

func (uc *HandleMessageUseCase) captureVisitTime(ctx context.Context, t *turn) entity.ReplyDirective {
	visit, ok := visitAliases[t.token]
	if !ok {
		return entity.TextReply(msgSelectButtons)
	}

	lead := &t.session.Lead
	lead.VisitTime = visit
	lead.TrialStatus = trialStatusBookedPrefix + " - " + visit

	uc.recordTrialBooking(ctx, t, ScheduleFollowUps(visit, t.now, uc.Location))

	uc.notify(ctx, entity.OwnerAlert{
		Kind:      entity.AlertTrialBooked,
		Phone:     t.phone,
		Name:      lead.Name,
		VisitTime: visit,
		At:        t.now,
	})

	t.session.State = entity.StateMenu
	return entity.TextReply(fmt.Sprintf(msgTrialBookedFmt, lead.Name, uc.Content.BusinessName))
}

// recordTrialBooking writes the HOT lead and both follow-up schedules. If a
// schedule write fails the earlier schedule is cleared so the scheduler
// never sees half a booking.
func (uc *HandleMessageUseCase) recordTrialBooking(ctx context.Context, t *turn, sched FollowUpSchedule) {
	if uc.Leads == nil {
		return
	}
	lead := t.session.Lead
	tx := NewTransaction()

	tx.AddOperation("upsert_lead", func(ctx context.Context) error {
		return uc.Leads.Upsert(ctx, entity.LeadUpsert{
			Phone:       t.phone,
			Name:        lead.Name,
			Interest:    interestTrialBooking,
			LeadType:    entity.TierHot,
			TrialStatus: lead.TrialStatus,
			LastMessage: lastMessageTrialBooked,
			At:          t.now,
		})
	}, nil)

	tx.AddOperation("schedule_reminder",
		uc.setColumns(t.phone, entity.ColumnReminderTime, sched.ReminderTime, entity.ColumnReminderSent, entity.FlagPending),
		uc.setColumns(t.phone, entity.ColumnReminderTime, "", entity.ColumnReminderSent, ""))

	tx.AddOperation("schedule_review",
		uc.setColumns(t.phone, entity.ColumnReviewTime, sched.ReviewTime, entity.ColumnReviewSent, entity.FlagPending),
		nil)

	if err := tx.Execute(ctx); err != nil {
		logger.Error().Err(err).Str("phone", t.phone).Msg("❌ failed to record trial booking")
		return
	}
	logger.Info().
		Str("phone", t.phone).
		Str("reminder_time", sched.ReminderTime).
		Str("review_time", sched.ReviewTime).
		Msg("✅ trial booked, follow-ups scheduled")
}

func (uc *HandleMessageUseCase) setColumns(phone string, timeCol entity.LeadColumn, timeVal string, flagCol entity.LeadColumn, flagVal string) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := uc.Leads.UpdateColumn(ctx, phone, timeCol, timeVal); err != nil {
			return err
		}
		return uc.Leads.UpdateColumn(ctx, phone, flagCol, flagVal)
	}
}

func (uc *HandleMessageUseCase) greet(_ context.Context, t *turn) entity.ReplyDirective {
	t.session.State = entity.StateMenu
	if !t.session.WelcomeSent {
		t.session.WelcomeSent = true
		return entity.ReplyDirective{Kind: entity.ReplyMenu}
	}
	return entity.ReplyDirective{Kind: entity.ReplyMenuRepeat}
}

func (uc *HandleMessageUseCase) answerInfo(_ context.Context, t *turn) entity.ReplyDirective {
	intent, _ := matchInfoIntent(t.token)
	t.session.Lead.Interest = intent.Interest
	return intent.Reply(uc.Content)
}

func (uc *HandleMessageUseCase) confirmVisit(ctx context.Context, t *turn) entity.ReplyDirective {
	lead := &t.session.Lead
	if !strings.HasPrefix(lead.TrialStatus, trialStatusBookedPrefix) {
		return entity.TextReply(msgTypeMenu)
	}

	lead.TrialStatus = trialStatusConfirmed
	uc.upsert(ctx, entity.LeadUpsert{
		Phone:       t.phone,
		Name:        lead.Name,
		Interest:    lead.Interest,
		LeadType:    entity.TierHot,
		TrialStatus: trialStatusConfirmed,
		LastMessage: lastMessageVisitConfirm,
		At:          t.now,
	})
	uc.notify(ctx, entity.OwnerAlert{
		Kind:  entity.AlertTrialConfirmed,
		Phone: t.phone,
		Name:  lead.Name,
		At:    t.now,
	})

	return entity.TextReply(fmt.Sprintf(msgVisitConfirmFmt, lead.Name, uc.Content.BusinessName))
}

func (uc *HandleMessageUseCase) fallback(context.Context, *turn) entity.ReplyDirective {
	return entity.TextReply(msgFallback)
}

func (uc *HandleMessageUseCase) upsert(ctx context.Context, lead entity.LeadUpsert) {
	if uc.Leads == nil {
		return
	}
	if err := uc.Leads.Upsert(ctx, lead); err != nil {
		logger.Error().Err(err).Str("phone", lead.Phone).Msg("❌ lead upsert failed")
	}
}

func (uc *HandleMessageUseCase) notify(ctx context.Context, alert entity.OwnerAlert) {
	if uc.Notifier == nil {
		return
	}
	if err := uc.Notifier.Notify(ctx, alert); err != nil {
		logger.Error().Err(err).Str("phone", alert.Phone).Str("kind", string(alert.Kind)).Msg("❌ owner alert failed")
	}
}

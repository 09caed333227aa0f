package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/gym-leadbot/internal/entity"
)

const (
	reminderTpl = "tpl-reminder"
	reviewTpl   = "tpl-review"
)

func newFollowUps(leads *fakeLeads, sender *MockMessenger, now time.Time) *SendFollowUpsUseCase {
	uc := NewSendFollowUpsUseCase(leads, sender, reminderTpl, reviewTpl, "https://reviews.example", time.UTC)
	uc.Now = func() time.Time { return now }
	return uc
}

func TestFollowUpsSendDueReminder(t *testing.T) {
	leads := newFakeLeads()
	leads.put(entity.Lead{Phone: "91111", Name: "Asha", ReminderTime: "2026-03-01 11:00", ReminderSent: "NO", ReviewTime: "2026-03-03 10:00", ReviewSent: "NO"})
	sender := new(MockMessenger)
	sender.On("SendTemplate", mock.Anything, "91111", reminderTpl, []string{"Asha"}).Return(nil).Once()

	report, err := newFollowUps(leads, sender, time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.RemindersSent)
	assert.Equal(t, 0, report.ReviewsSent)
	row, _ := leads.FindByPhone(context.Background(), "91111")
	assert.Equal(t, entity.FlagSent, row.ReminderSent)
	assert.Equal(t, entity.FlagPending, row.ReviewSent)
	sender.AssertExpectations(t)
}

func TestFollowUpsSendReviewWithLink(t *testing.T) {
	leads := newFakeLeads()
	leads.put(entity.Lead{Phone: "91111", Name: "Asha", ReminderTime: "2026-03-01 11:00", ReminderSent: "YES", ReviewTime: "2026-03-03 10:00", ReviewSent: "NO"})
	sender := new(MockMessenger)
	sender.On("SendTemplate", mock.Anything, "91111", reviewTpl, []string{"Asha", "https://reviews.example"}).Return(nil).Once()

	report, err := newFollowUps(leads, sender, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.ReviewsSent)
	sender.AssertExpectations(t)
}

func TestFollowUpsNothingDue(t *testing.T) {
	leads := newFakeLeads()
	leads.put(entity.Lead{Phone: "91111", ReminderTime: "2026-03-01 11:00", ReminderSent: "NO"})
	sender := new(MockMessenger)

	report, err := newFollowUps(leads, sender, time.Date(2026, 3, 1, 10, 59, 0, 0, time.UTC)).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, FollowUpReport{Scanned: 1}, report)
	sender.AssertNotCalled(t, "SendTemplate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFollowUpsSentFlagIsNeverResent(t *testing.T) {
	leads := newFakeLeads()
	leads.put(entity.Lead{Phone: "91111", ReminderTime: "2026-03-01 11:00", ReminderSent: "NO"})
	sender := new(MockMessenger)
	sender.On("SendTemplate", mock.Anything, "91111", reminderTpl, mock.Anything).Return(nil).Once()
	uc := newFollowUps(leads, sender, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background())
	require.NoError(t, err)
	report, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.RemindersSent)
	sender.AssertNumberOfCalls(t, "SendTemplate", 1)
}

func TestFollowUpsSkipMalformedRowsAndContinue(t *testing.T) {
	leads := newFakeLeads()
	leads.put(entity.Lead{Phone: "", ReminderTime: "2026-03-01 11:00", ReminderSent: "NO"})
	leads.put(entity.Lead{Phone: "91222", ReminderTime: "tomorrow-ish", ReminderSent: "NO"})
	leads.put(entity.Lead{Phone: "91333", Name: "Ravi", ReminderTime: "2026-03-01 11:00", ReminderSent: "NO"})
	sender := new(MockMessenger)
	sender.On("SendTemplate", mock.Anything, "91333", reminderTpl, []string{"Ravi"}).Return(nil)

	report, err := newFollowUps(leads, sender, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.RemindersSent)
}

func TestFollowUpsSendFailureLeavesFlagPending(t *testing.T) {
	leads := newFakeLeads()
	leads.put(entity.Lead{Phone: "91111", ReminderTime: "2026-03-01 11:00", ReminderSent: "NO"})
	sender := new(MockMessenger)
	sender.On("SendTemplate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("gupshup 500"))

	report, err := newFollowUps(leads, sender, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	row, _ := leads.FindByPhone(context.Background(), "91111")
	assert.Equal(t, entity.FlagPending, row.ReminderSent)
}

func TestFollowUpsScanFailure(t *testing.T) {
	leads := newFakeLeads()
	leads.scanErr = errors.New("db down")

	_, err := newFollowUps(leads, new(MockMessenger), time.Now()).Execute(context.Background())

	assert.True(t, IsTechnicalError(err))
}

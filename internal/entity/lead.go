package entity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrLeadNotFound  = errors.New("lead not found")
	ErrUnknownColumn = errors.New("unknown lead column")
)

const (
	// DueTimeLayout is how follow-up due times are stored (business time zone).
	DueTimeLayout = "2006-01-02 15:04"
	// LastUpdateLayout is how last_update is stored.
	LastUpdateLayout = "02-01-2006 15:04"

	FlagPending = "NO"
	FlagSent    = "YES"
)

// Lead is one row of the lead store, keyed by normalized phone.
type Lead struct {
	Phone        string `json:"phone"`
	Name         string `json:"name"`
	Interest     string `json:"interest"`
	LeadType     Tier   `json:"lead_type"`
	TrialStatus  string `json:"trial_status"`
	LastMessage  string `json:"last_message"`
	LastUpdate   string `json:"last_update"`
	ReminderTime string `json:"reminder_time"`
	ReminderSent string `json:"reminder_sent"`
	ReviewTime   string `json:"review_time"`
	ReviewSent   string `json:"review_sent"`
}

// LeadUpsert carries the mutable fields written on every inbound message.
// Follow-up columns are never touched by an upsert.
type LeadUpsert struct {
	Phone       string
	Name        string
	Interest    string
	LeadType    Tier
	TrialStatus string
	LastMessage string
	At          time.Time
}

// LeadColumn names a single writable follow-up cell.
type LeadColumn string

const (
	ColumnReminderTime LeadColumn = "reminder_time"
	ColumnReminderSent LeadColumn = "reminder_sent"
	ColumnReviewTime   LeadColumn = "review_time"
	ColumnReviewSent   LeadColumn = "review_sent"
)

func (c LeadColumn) Valid() bool {
	switch c {
	case ColumnReminderTime, ColumnReminderSent, ColumnReviewTime, ColumnReviewSent:
		return true
	}
	return false
}

type LeadRepositoryInterface interface {
	FindByPhone(ctx context.Context, phone string) (*Lead, error)
	Upsert(ctx context.Context, lead LeadUpsert) error
	UpdateColumn(ctx context.Context, phone string, column LeadColumn, value string) error
	ScanAll(ctx context.Context) ([]*Lead, error)
}

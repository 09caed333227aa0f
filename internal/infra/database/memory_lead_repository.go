package database

import (
	"context"
	"sync"

	"github.com/xavierca1/gym-leadbot/internal/entity"
)

// InMemoryLeadRepository is used when no DATABASE_URL is configured and by
// the local simulator. Rows keep insertion order.
type InMemoryLeadRepository struct {
	mu    sync.RWMutex
	rows  map[string]*entity.Lead
	order []string
}

func NewInMemoryLeadRepository() *InMemoryLeadRepository {
	return &InMemoryLeadRepository{rows: make(map[string]*entity.Lead)}
}

func (r *InMemoryLeadRepository) FindByPhone(_ context.Context, phone string) (*entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.rows[phone]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *InMemoryLeadRepository) Upsert(_ context.Context, u entity.LeadUpsert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.rows[u.Phone]
	if !ok {
		l = &entity.Lead{Phone: u.Phone}
		r.rows[u.Phone] = l
		r.order = append(r.order, u.Phone)
	}
	l.Name = u.Name
	l.Interest = u.Interest
	l.LeadType = u.LeadType
	if l.LeadType == "" {
		l.LeadType = entity.TierCold
	}
	l.TrialStatus = u.TrialStatus
	l.LastMessage = u.LastMessage
	l.LastUpdate = u.At.Format(entity.LastUpdateLayout)
	return nil
}

func (r *InMemoryLeadRepository) UpdateColumn(_ context.Context, phone string, column entity.LeadColumn, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.rows[phone]
	if !ok {
		return entity.ErrLeadNotFound
	}
	switch column {
	case entity.ColumnReminderTime:
		l.ReminderTime = value
	case entity.ColumnReminderSent:
		l.ReminderSent = value
	case entity.ColumnReviewTime:
		l.ReviewTime = value
	case entity.ColumnReviewSent:
		l.ReviewSent = value
	default:
		return entity.ErrUnknownColumn
	}
	return nil
}

func (r *InMemoryLeadRepository) ScanAll(context.Context) ([]*entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Lead, 0, len(r.order))
	for _, phone := range r.order {
		cp := *r.rows[phone]
		out = append(out, &cp)
	}
	return out, nil
}

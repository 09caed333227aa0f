package usecase

import (
	"context"
	"fmt"

	"github.com/xavierca1/gym-leadbot/pkg/logger"
)

// Transaction runs a sequence of store writes. When one fails, the
// compensations of the steps that already succeeded run in reverse order.
type Transaction struct {
	steps []step
}

type step struct {
	Name       string
	Fn         func(context.Context) error
	Compensate func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

// AddOperation registers a step. compensate may be nil.
func (t *Transaction) AddOperation(name string, fn, compensate func(context.Context) error) {
	t.steps = append(t.steps, step{Name: name, Fn: fn, Compensate: compensate})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, s := range t.steps {
		if err := s.Fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", s.Name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAt int) {
	for i := failedAt - 1; i >= 0; i-- {
		s := t.steps[i]
		if s.Compensate == nil {
			continue
		}
		if err := s.Compensate(ctx); err != nil {
			logger.Warn().Err(err).Str("step", s.Name).Msg("⚠️ compensation failed, lead row may be inconsistent")
		}
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionRunsAllSteps(t *testing.T) {
	var ran []string
	tx := NewTransaction()
	tx.AddOperation("a", func(context.Context) error { ran = append(ran, "a"); return nil }, nil)
	tx.AddOperation("b", func(context.Context) error { ran = append(ran, "b"); return nil }, nil)

	assert.NoError(t, tx.Execute(context.Background()))
	assert.Equal(t, []string{"a", "b"}, ran)
}

func TestTransactionCompensatesInReverse(t *testing.T) {
	var log []string
	tx := NewTransaction()
	tx.AddOperation("a",
		func(context.Context) error { log = append(log, "a"); return nil },
		func(context.Context) error { log = append(log, "undo a"); return nil })
	tx.AddOperation("b",
		func(context.Context) error { log = append(log, "b"); return nil },
		func(context.Context) error { log = append(log, "undo b"); return nil })
	tx.AddOperation("c",
		func(context.Context) error { return errors.New("boom") },
		func(context.Context) error { log = append(log, "undo c"); return nil })

	err := tx.Execute(context.Background())

	assert.ErrorContains(t, err, "operation 'c' failed: boom")
	assert.Equal(t, []string{"a", "b", "undo b", "undo a"}, log)
}

func TestTransactionContinuesWhenCompensationFails(t *testing.T) {
	undone := false
	tx := NewTransaction()
	tx.AddOperation("a", func(context.Context) error { return nil },
		func(context.Context) error { undone = true; return nil })
	tx.AddOperation("b", func(context.Context) error { return nil },
		func(context.Context) error { return errors.New("cannot undo") })
	tx.AddOperation("c", func(context.Context) error { return errors.New("boom") }, nil)

	assert.Error(t, tx.Execute(context.Background()))
	assert.True(t, undone)
}

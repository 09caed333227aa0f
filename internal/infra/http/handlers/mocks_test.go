package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/gym-leadbot/internal/entity"
	"github.com/xavierca1/gym-leadbot/internal/usecase"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Execute(ctx context.Context, input usecase.HandleMessageInput) (*usecase.HandleMessageOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.HandleMessageOutput)
	return out, args.Error(1)
}

type MockDedup struct {
	mock.Mock
}

func (m *MockDedup) IsDuplicate(ctx context.Context, ev usecase.InboundEvent) bool {
	return m.Called(ctx, ev).Bool(0)
}

type MockDeliverer struct {
	mock.Mock
}

func (m *MockDeliverer) Deliver(ctx context.Context, to string, reply entity.ReplyDirective) error {
	return m.Called(ctx, to, reply).Error(0)
}

type MockLeadRepo struct {
	mock.Mock
}

func (m *MockLeadRepo) FindByPhone(ctx context.Context, phone string) (*entity.Lead, error) {
	args := m.Called(ctx, phone)
	lead, _ := args.Get(0).(*entity.Lead)
	return lead, args.Error(1)
}

func (m *MockLeadRepo) Upsert(ctx context.Context, lead entity.LeadUpsert) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepo) UpdateColumn(ctx context.Context, phone string, column entity.LeadColumn, value string) error {
	return m.Called(ctx, phone, column, value).Error(0)
}

func (m *MockLeadRepo) ScanAll(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	leads, _ := args.Get(0).([]*entity.Lead)
	return leads, args.Error(1)
}

func output(reply entity.ReplyDirective, tier entity.Tier) *usecase.HandleMessageOutput {
	return &usecase.HandleMessageOutput{Reply: reply, Tier: tier}
}

var chatContent = &entity.Content{
	BusinessName:    "Iron Den",
	WelcomeText:     "Welcome to Iron Den",
	FeesText:        "Fees: 1500/month",
	MoreOptionsText: "More options",
	MainMenu: []entity.ButtonOption{
		{Title: "Fees", PostbackText: "FEES"},
	},
	MoreOptions: []entity.ButtonOption{
		{Title: "Location", PostbackText: "LOCATION"},
	},
}

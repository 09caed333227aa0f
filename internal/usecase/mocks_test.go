package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/gym-leadbot/internal/entity"
)

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]entity.Session
	err      error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]entity.Session{}}
}

func (f *fakeSessions) Update(_ context.Context, phone string, fn func(*entity.Session) error) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[phone]
	if !ok {
		s = *entity.NewSession(phone)
	}
	if err := fn(&s); err != nil {
		return nil, err
	}
	f.sessions[phone] = s
	return &s, nil
}

func (f *fakeSessions) Get(_ context.Context, phone string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[phone]
	if !ok {
		return entity.NewSession(phone), nil
	}
	return &s, nil
}

type columnWrite struct {
	Phone  string
	Column entity.LeadColumn
	Value  string
}

// fakeLeads records writes and applies them to an in-memory table.
type fakeLeads struct {
	mu        sync.Mutex
	rows      map[string]*entity.Lead
	order     []string
	upserts   []entity.LeadUpsert
	writes    []columnWrite
	upsertErr error
	columnErr map[entity.LeadColumn]error
	scanErr   error
}

func newFakeLeads() *fakeLeads {
	return &fakeLeads{rows: map[string]*entity.Lead{}, columnErr: map[entity.LeadColumn]error{}}
}

func (f *fakeLeads) FindByPhone(_ context.Context, phone string) (*entity.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.rows[phone]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLeads) Upsert(_ context.Context, u entity.LeadUpsert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, u)
	if f.upsertErr != nil {
		return f.upsertErr
	}
	l, ok := f.rows[u.Phone]
	if !ok {
		l = &entity.Lead{Phone: u.Phone}
		f.rows[u.Phone] = l
		f.order = append(f.order, u.Phone)
	}
	l.Name, l.Interest, l.LeadType, l.TrialStatus, l.LastMessage = u.Name, u.Interest, u.LeadType, u.TrialStatus, u.LastMessage
	l.LastUpdate = u.At.Format(entity.LastUpdateLayout)
	return nil
}

func (f *fakeLeads) UpdateColumn(_ context.Context, phone string, col entity.LeadColumn, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, columnWrite{phone, col, value})
	if err := f.columnErr[col]; err != nil {
		return err
	}
	l, ok := f.rows[phone]
	if !ok {
		return entity.ErrLeadNotFound
	}
	switch col {
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

func (f *fakeLeads) ScanAll(context.Context) ([]*entity.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	out := make([]*entity.Lead, 0, len(f.order))
	for _, p := range f.order {
		cp := *f.rows[p]
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeLeads) put(l entity.Lead) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[l.Phone]; !ok {
		f.order = append(f.order, l.Phone)
	}
	f.rows[l.Phone] = &l
}

func (f *fakeLeads) lastUpsert() entity.LeadUpsert {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upserts[len(f.upserts)-1]
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, alert entity.OwnerAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockNotifier) alerts(kind entity.AlertKind) []entity.OwnerAlert {
	var out []entity.OwnerAlert
	for _, c := range m.Calls {
		a := c.Arguments.Get(1).(entity.OwnerAlert)
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendText(ctx context.Context, to, text string) error {
	return m.Called(ctx, to, text).Error(0)
}

func (m *MockMessenger) SendImage(ctx context.Context, to, imageURL, caption string) error {
	return m.Called(ctx, to, imageURL, caption).Error(0)
}

func (m *MockMessenger) SendButtons(ctx context.Context, to, prompt string, options []entity.ButtonOption) error {
	return m.Called(ctx, to, prompt, options).Error(0)
}

func (m *MockMessenger) SendTemplate(ctx context.Context, to, templateID string, params []string) error {
	return m.Called(ctx, to, templateID, params).Error(0)
}

type MockFingerprints struct {
	mock.Mock
}

func (m *MockFingerprints) Swap(ctx context.Context, sender, fp string) (string, error) {
	args := m.Called(ctx, sender, fp)
	return args.String(0), args.Error(1)
}

var testContent = &entity.Content{
	BusinessName:    "Iron Den",
	ReviewLink:      "https://reviews.example/irondem",
	WelcomeText:     "Welcome to Iron Den",
	FeesText:        "FEES: 1000/month",
	TimingsText:     "Open 5am-10pm",
	LocationText:    "Sector 23",
	ReviewText:      "Please review us",
	MainMenu:        []entity.ButtonOption{{Title: "Fees", PostbackText: "FEES"}, {Title: "Free Trial", PostbackText: "TRIAL"}, {Title: "Timings", PostbackText: "TIMINGS"}},
	MoreOptionsText: "More options 👇",
	MoreOptions:     []entity.ButtonOption{{Title: "Location", PostbackText: "LOCATION"}, {Title: "Transformations", PostbackText: "TRANSFORM"}, {Title: "Gym Photos", PostbackText: "GYM_PHOTOS"}},
	VisitOptions:    []entity.ButtonOption{{Title: "Today", PostbackText: "visit_today"}, {Title: "Tomorrow", PostbackText: "visit_tomorrow"}, {Title: "Some Other Day", PostbackText: "visit_other"}},
	GymPhotos:       entity.Gallery{Caption: "Our gym", Images: []string{"https://img/g1.jpg", "https://img/g2.jpg"}},
	Transformations: entity.Gallery{Caption: "Results", Images: []string{"https://img/t1.jpg"}},
}

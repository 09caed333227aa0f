package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/gym-leadbot/internal/entity"
)

type inputCategory int

const (
	inputTrial inputCategory = iota
	inputGreeting
	inputInfo
	inputConfirm
	inputOther
)

var inputCategories = []inputCategory{inputTrial, inputGreeting, inputInfo, inputConfirm, inputOther}

func (c inputCategory) String() string {
	switch c {
	case inputTrial:
		return "trial"
	case inputGreeting:
		return "greeting"
	case inputInfo:
		return "info"
	case inputConfirm:
		return "confirm"
	default:
		return "other"
	}
}

type transitionFunc func(uc *HandleMessageUseCase, ctx context.Context, t *turn) entity.ReplyDirective

// transitions is the whole dialogue: state x input category -> handler.
// A trial trigger restarts the booking from any state; inside the booking
// flow every other input is an answer to the pending question.
var transitions = map[entity.DialogueState]map[inputCategory]transitionFunc{
	entity.StateMenu: {
		inputTrial:    (*HandleMessageUseCase).startTrial,
		inputGreeting: (*HandleMessageUseCase).greet,
		inputInfo:     (*HandleMessageUseCase).answerInfo,
		inputConfirm:  (*HandleMessageUseCase).confirmVisit,
		inputOther:    (*HandleMessageUseCase).fallback,
	},
	entity.StateAskName: {
		inputTrial:    (*HandleMessageUseCase).startTrial,
		inputGreeting: (*HandleMessageUseCase).captureName,
		inputInfo:     (*HandleMessageUseCase).captureName,
		inputConfirm:  (*HandleMessageUseCase).captureName,
		inputOther:    (*HandleMessageUseCase).captureName,
	},
	entity.StateAskVisitTime: {
		inputTrial:    (*HandleMessageUseCase).startTrial,
		inputGreeting: (*HandleMessageUseCase).captureVisitTime,
		inputInfo:     (*HandleMessageUseCase).captureVisitTime,
		inputConfirm:  (*HandleMessageUseCase).captureVisitTime,
		inputOther:    (*HandleMessageUseCase).captureVisitTime,
	},
}

var (
	trialTriggers   = set("trial", "free trial", "book trial")
	greetings       = set("hi", "hello", "hey", "menu", "start", "or bhai")
	confirmTriggers = set("yes", "confirm_visit", "confirm")

	visitAliases = map[string]string{
		"visit_today":    entity.VisitToday,
		"today":          entity.VisitToday,
		"1":              entity.VisitToday,
		"visit_tomorrow": entity.VisitTomorrow,
		"tomorrow":       entity.VisitTomorrow,
		"2":              entity.VisitTomorrow,
		"visit_other":    entity.VisitSomeOtherDay,
		"other":          entity.VisitSomeOtherDay,
		"some other day": entity.VisitSomeOtherDay,
	}
)

type infoIntent struct {
	Interest string
	Keywords []string
	Reply    func(c *entity.Content) entity.ReplyDirective
}

// Checked in order; the first intent with a matching substring wins.
var infoIntents = []infoIntent{
	{"Fees", []string{"fees", "fee", "price", "membership", "plans"},
		func(c *entity.Content) entity.ReplyDirective { return entity.TextReply(c.FeesText) }},
	{"Timings", []string{"timings", "timing", "time", "open"},
		func(c *entity.Content) entity.ReplyDirective { return entity.TextReply(c.TimingsText) }},
	{"Location", []string{"location", "address", "where", "jagah"},
		func(c *entity.Content) entity.ReplyDirective { return entity.TextReply(c.LocationText) }},
	{"Review", []string{"review"},
		func(c *entity.Content) entity.ReplyDirective { return entity.TextReply(c.ReviewText) }},
	{"Gym Photos", []string{"photo", "image", "photos", "images"},
		func(*entity.Content) entity.ReplyDirective { return entity.ReplyDirective{Kind: entity.ReplyGymImages} }},
	{"Transformations", []string{"transform", "result"},
		func(*entity.Content) entity.ReplyDirective { return entity.ReplyDirective{Kind: entity.ReplyTransformations} }},
}

func matchInfoIntent(token string) (infoIntent, bool) {
	for _, in := range infoIntents {
		if containsAny(token, in.Keywords) {
			return in, true
		}
	}
	return infoIntent{}, false
}

// categorize mirrors rule precedence: trial, greeting, info, confirm.
func categorize(token string) inputCategory {
	switch {
	case trialTriggers[token]:
		return inputTrial
	case greetings[token]:
		return inputGreeting
	}
	if _, ok := matchInfoIntent(token); ok {
		return inputInfo
	}
	if confirmTriggers[token] {
		return inputConfirm
	}
	return inputOther
}

func normalizeToken(message, buttonID string) string {
	if strings.TrimSpace(buttonID) != "" {
		return strings.ToLower(strings.TrimSpace(buttonID))
	}
	return strings.ToLower(strings.TrimSpace(message))
}

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

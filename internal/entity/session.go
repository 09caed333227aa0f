package entity

import "time"

// Tier is the lead temperature.
type Tier string

const (
	TierCold Tier = "COLD"
	TierWarm Tier = "WARM"
	TierHot  Tier = "HOT"
)

// DialogueState is where a contact sits in the conversation.
type DialogueState string

const (
	StateMenu         DialogueState = "MENU"
	StateAskName      DialogueState = "ASK_NAME"
	StateAskVisitTime DialogueState = "ASK_VISIT_TIME"
)

var DialogueStates = []DialogueState{StateMenu, StateAskName, StateAskVisitTime}

// Visit windows offered after a trial booking.
const (
	VisitToday        = "Today"
	VisitTomorrow     = "Tomorrow"
	VisitSomeOtherDay = "Some Other Day"
)

// LeadFacts are what the conversation has learned about a contact.
type LeadFacts struct {
	Name        string `json:"name"`
	Interest    string `json:"interest"`
	LeadType    Tier   `json:"lead_type"`
	TrialStatus string `json:"trial_status"`
	VisitTime   string `json:"visit_time"`
}

// Session is the per-contact conversation state.
type Session struct {
	Phone       string        `json:"phone"`
	State       DialogueState `json:"state"`
	Lead        LeadFacts     `json:"lead"`
	WelcomeSent bool          `json:"welcome_sent"`
	LastSeen    time.Time     `json:"last_seen"`
}

func NewSession(phone string) *Session {
	return &Session{
		Phone: phone,
		State: StateMenu,
		Lead:  LeadFacts{LeadType: TierCold},
	}
}

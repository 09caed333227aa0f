package entity

import "time"

type AlertKind string

const (
	AlertActivity       AlertKind = "ACTIVITY"
	AlertTrialBooked    AlertKind = "TRIAL_BOOKED"
	AlertTrialConfirmed AlertKind = "TRIAL_CONFIRMED"
)

// OwnerAlert is a notification for the business owner.
type OwnerAlert struct {
	Kind      AlertKind `json:"kind"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name,omitempty"`
	Message   string    `json:"message,omitempty"`
	Tier      Tier      `json:"tier,omitempty"`
	VisitTime string    `json:"visit_time,omitempty"`
	At        time.Time `json:"at"`
}

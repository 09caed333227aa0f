package usecase

import (
	"time"

	"github.com/xavierca1/gym-leadbot/internal/entity"
)

// FollowUpDelay is how long after booking the reminder and the review
// request become due.
type FollowUpDelay struct {
	Reminder time.Duration
	Review   time.Duration
}

var followUpDelays = map[string]FollowUpDelay{
	entity.VisitToday:        {Reminder: 1 * time.Hour, Review: 48 * time.Hour},
	entity.VisitTomorrow:     {Reminder: 16 * time.Hour, Review: 72 * time.Hour},
	entity.VisitSomeOtherDay: {Reminder: 48 * time.Hour, Review: 168 * time.Hour},
}

// DelayFor returns the delays for a visit window. Unknown windows get the
// Some Other Day delays.
func DelayFor(visit string) FollowUpDelay {
	if d, ok := followUpDelays[visit]; ok {
		return d
	}
	return followUpDelays[entity.VisitSomeOtherDay]
}

// FollowUpSchedule holds formatted due times ready for the lead store.
type FollowUpSchedule struct {
	ReminderTime string
	ReviewTime   string
}

func ScheduleFollowUps(visit string, now time.Time, loc *time.Location) FollowUpSchedule {
	if loc != nil {
		now = now.In(loc)
	}
	d := DelayFor(visit)
	return FollowUpSchedule{
		ReminderTime: now.Add(d.Reminder).Format(entity.DueTimeLayout),
		ReviewTime:   now.Add(d.Review).Format(entity.DueTimeLayout),
	}
}

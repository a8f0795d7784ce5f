package trip

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// hourFormat is how activity times are displayed inside a day section.
const hourFormat = "15:04"

// BuildSections turns server-grouped activities into display sections. Day
// grouping and in-day ordering are taken from the directory service as-is;
// the scheduler does not re-sort. IsPast is computed against now at build
// time.
func BuildSections(days []DayActivities, now time.Time) []DaySection {
	sections := make([]DaySection, 0, len(days))
	for _, day := range days {
		section := DaySection{
			DayNumber:  day.Date.Day(),
			DayName:    day.Date.Weekday().String(),
			Activities: make([]ActivityView, 0, len(day.Activities)),
		}
		for _, act := range day.Activities {
			section.Activities = append(section.Activities, ActivityView{
				ID:     act.ID,
				Title:  act.Title,
				Hour:   act.OccursAt.Format(hourFormat) + "h",
				IsPast: act.OccursAt.Before(now),
			})
		}
		sections = append(sections, section)
	}
	return sections
}

// ActivityDraft is the in-progress input for a new activity. Date is a
// DayFormat string, Hour an hour-of-day in decimal.
type ActivityDraft struct {
	Title string
	Date  string
	Hour  string
}

// OccursAt validates the draft and composes the instant to submit: the
// chosen day plus the hour offset. All three fields are required; the hour
// must be 0-23.
func (d ActivityDraft) OccursAt() (time.Time, error) {
	if strings.TrimSpace(d.Title) == "" || d.Date == "" || d.Hour == "" {
		return time.Time{}, fmt.Errorf("%w: fill in title, date and hour", ErrValidation)
	}
	day, err := time.ParseInLocation(DayFormat, d.Date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", ErrValidation, d.Date)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(d.Hour))
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("%w: hour must be 0-23", ErrValidation)
	}
	return day.Add(time.Duration(hour) * time.Hour), nil
}

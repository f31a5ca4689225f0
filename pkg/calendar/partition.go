package calendar

import (
	"time"

	"github.com/labchat/labchat-server/pkg/model"
)

// Partition splits events into single-day and multi-day buckets. Membership
// is decided by calendar-day equality of start and end, never by duration:
// a two hour event crossing midnight is multi-day.
func Partition(events []model.Event) (singleDay, multiDay []model.Event) {
	for _, event := range events {
		if sameCalendarDay(event.StartDate, event.EndDate) {
			singleDay = append(singleDay, event)
		} else {
			multiDay = append(multiDay, event)
		}
	}
	return singleDay, multiDay
}

func sameCalendarDay(a, b time.Time) bool {
	aYear, aMonth, aDay := a.Date()
	bYear, bMonth, bDay := b.Date()
	return aYear == bYear && aMonth == bMonth && aDay == bDay
}

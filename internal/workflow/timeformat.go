package workflow

import (
	"time"

	"ultron_backend/internal/prospects/repository"
)

// meetingTimeLayout renders timestamps the way French business emails do,
// e.g. "05/09/2026 à 14h30".
const meetingTimeLayout = "02/01/2006 à 15h04"

// meetingTimeFrom extracts the meeting timestamp from a prospect. The
// metadata key holds a full timestamp and wins over the date-only
// expected-close field when both are present.
func meetingTimeFrom(p repository.Prospect) (time.Time, bool) {
	if raw := repository.MetadataString(p.Metadata, metaMeetingDateTime); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, true
		}
	}
	if p.ExpectedCloseDate != nil {
		return *p.ExpectedCloseDate, true
	}
	return time.Time{}, false
}

// formatMeetingTime renders an instant in the business timezone. The process
// may run in UTC; customers live in one named timezone.
func (e *Engine) formatMeetingTime(t time.Time) string {
	return t.In(e.deps.Location).Format(meetingTimeLayout)
}

package form

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// StartTimeLayout is the text layout of the show form's start_time field.
const StartTimeLayout = "2006-01-02 15:04:05"

var startTimeLayouts = []string{
	StartTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04", // <input type="datetime-local">
	"2006-01-02 15:04",
}

// ShowForm holds the raw values of the show creation form.
type ShowForm struct {
	ArtistID  string
	VenueID   string
	StartTime string
}

// NewShowForm returns an empty form whose start time defaults to now.
func NewShowForm(now time.Time) ShowForm {
	return ShowForm{StartTime: now.UTC().Format(StartTimeLayout)}
}

func ShowFormFromValues(v url.Values) ShowForm {
	return ShowForm{
		ArtistID:  v.Get("artist_id"),
		VenueID:   v.Get("venue_id"),
		StartTime: v.Get("start_time"),
	}
}

// Show converts the form into a record.  Referenced ids are not checked
// here; the store's foreign keys are the only guard.
func (f ShowForm) Show() (model.Show, error) {
	venueID, err := strconv.ParseUint(strings.TrimSpace(f.VenueID), 10, 64)
	if err != nil {
		return model.Show{}, fmt.Errorf("venue_id %q: %w", f.VenueID, err)
	}
	artistID, err := strconv.ParseUint(strings.TrimSpace(f.ArtistID), 10, 64)
	if err != nil {
		return model.Show{}, fmt.Errorf("artist_id %q: %w", f.ArtistID, err)
	}
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return model.Show{}, err
	}
	return model.Show{VenueID: venueID, ArtistID: artistID, StartTime: start}, nil
}

// ParseStartTime reads a start time in any accepted layout as UTC,
// truncated to the second.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("start_time: %s", msgRequired)
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("start_time %q: not a valid datetime value", s)
}

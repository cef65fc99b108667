package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntry_State(t *testing.T) {
	in := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)
	out := in.Add(8 * time.Hour)

	var absent *Entry
	assert.Equal(t, StateAbsent, absent.State())
	assert.Equal(t, StateAbsent, (&Entry{}).State())
	assert.Equal(t, StateCheckedIn, (&Entry{CheckIn: &in}).State())
	assert.Equal(t, StateCheckedOut, (&Entry{CheckIn: &in, CheckOut: &out}).State())

	assert.True(t, (&Entry{CheckIn: &in}).CanCheckOut())
	assert.False(t, (&Entry{CheckIn: &in, CheckOut: &out}).CanCheckOut())
	assert.False(t, absent.CanCheckOut())
}

func TestCalendarDate(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	late := time.Date(2024, 6, 10, 23, 45, 0, 0, loc)

	got := CalendarDate(late)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), got)
	assert.True(t, CalendarDate(late.Add(-20*time.Hour)).Equal(got))
}

func TestWorkedHours(t *testing.T) {
	in := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

	cases := []struct {
		name   string
		out    time.Time
		want   string
		wantOK bool
	}{
		{"full day", in.Add(8*time.Hour + 30*time.Minute), "8.5", true},
		{"rounded", in.Add(20 * time.Minute), "0.33", true},
		{"zero", in, "0", false},
		{"clock skew", in.Add(-time.Hour), "-1", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hours, ok := WorkedHours(in, tc.out)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, hours.String())
		})
	}
}

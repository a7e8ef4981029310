package reservation

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidTime      = errors.New("time must be HH:mm")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidPartySize = errors.New("party size must be at least 1")
	ErrIncompleteRequester = errors.New("requester email, name, unit and national ID are all required")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// DayDate is a calendar date with no time component, kept in its
// zero-padded YYYY-MM-DD wire form so comparisons stay lexicographic.
type DayDate struct {
	value string
}

func NewDayDate(value string) (DayDate, error) {
	// time.Parse accepts non-padded fields, so pin the width first.
	if len(value) != len(dateLayout) {
		return DayDate{}, ErrInvalidDate
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return DayDate{}, ErrInvalidDate
	}
	return DayDate{value: value}, nil
}

func (d DayDate) String() string {
	return d.value
}

func (d DayDate) IsZero() bool {
	return d.value == ""
}

// MinuteTime is a time of day in zero-padded 24-hour HH:mm form.
type MinuteTime struct {
	value string
}

func NewMinuteTime(value string) (MinuteTime, error) {
	// "9:30" parses fine but breaks lexicographic comparison; require HH:mm.
	if len(value) != len(timeLayout) {
		return MinuteTime{}, ErrInvalidTime
	}
	if _, err := time.Parse(timeLayout, value); err != nil {
		return MinuteTime{}, ErrInvalidTime
	}
	return MinuteTime{value: value}, nil
}

func (t MinuteTime) String() string {
	return t.value
}

// Before relies on the fixed-width zero-padded format.
func (t MinuteTime) Before(other MinuteTime) bool {
	return t.value < other.value
}

// TimeRange is a half-open [start,end) interval within a single day.
type TimeRange struct {
	start MinuteTime
	end   MinuteTime
}

func NewTimeRange(start, end MinuteTime) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{start: start, end: end}, nil
}

func (r TimeRange) Start() MinuteTime {
	return r.start
}

func (r TimeRange) End() MinuteTime {
	return r.end
}

// Overlaps is the half-open interval test: two ranges conflict iff
// startA < endB && endA > startB. Ranges that merely share a boundary
// do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

// StartsAt resolves the range start against a calendar date in the
// community's timezone. Used by the cancellation policy. Both operands
// are canonical by construction, so the parse cannot fail; a zero time
// would only surface through reconstructed rows with corrupt columns.
func (r TimeRange) StartsAt(date DayDate, loc *time.Location) time.Time {
	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, date.String()+" "+r.start.String(), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// PartySize is the number of attendees declared for the reservation.
type PartySize int

func NewPartySize(n int) (PartySize, error) {
	if n < 1 {
		return 0, ErrInvalidPartySize
	}
	return PartySize(n), nil
}

func (p PartySize) Int() int {
	return int(p)
}

// Requester identifies the resident who submitted the request. All four
// fields come from the authenticated session, never from the request body,
// and must be present together.
type Requester struct {
	email      string
	name       string
	unit       string
	nationalID string
}

func NewRequester(email, name, unit, nationalID string) (Requester, error) {
	r := Requester{
		email:      strings.TrimSpace(email),
		name:       strings.TrimSpace(name),
		unit:       strings.TrimSpace(unit),
		nationalID: strings.TrimSpace(nationalID),
	}
	if !r.IsComplete() {
		return Requester{}, ErrIncompleteRequester
	}
	return r, nil
}

// ReconstructRequester rehydrates stored fields without the completeness
// check; Approve re-validates before any decision.
func ReconstructRequester(email, name, unit, nationalID string) Requester {
	return Requester{email: email, name: name, unit: unit, nationalID: nationalID}
}

func (r Requester) Email() string      { return r.email }
func (r Requester) Name() string       { return r.name }
func (r Requester) Unit() string       { return r.unit }
func (r Requester) NationalID() string { return r.nationalID }

func (r Requester) IsComplete() bool {
	return r.email != "" && r.name != "" && r.unit != "" && r.nationalID != ""
}

// Comment is the free-text note attached to a request. Empty is fine.
type Comment struct {
	value string
}

func NewComment(value string) Comment {
	return Comment{value: strings.TrimSpace(value)}
}

func (c Comment) String() string {
	return c.value
}

func (c Comment) IsEmpty() bool {
	return c.value == ""
}

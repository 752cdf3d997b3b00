package shift

import "time"

// Weekday is an ISO-8601 weekday: Monday=1 .. Sunday=7.
type Weekday int

const (
	Monday    Weekday = 1
	Tuesday   Weekday = 2
	Wednesday Weekday = 3
	Thursday  Weekday = 4
	Friday    Weekday = 5
	Saturday  Weekday = 6
	Sunday    Weekday = 7
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return "Invalid"
	}
	return weekdayNames[w-1]
}

func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

// ISOWeekday converts a time.Time weekday (Sunday=0) to ISO numbering.
func ISOWeekday(t time.Time) Weekday {
	wd := int(t.Weekday())
	if wd == 0 {
		return Sunday
	}
	return Weekday(wd)
}

type Shift struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time

	Slots []TimeSlot
}

// TimeSlot is one recurring weekly work window inside a shift. StartTime and
// EndTime carry only a time of day; the date parts are ignored.
type TimeSlot struct {
	ID              string
	ShiftID         string
	Weekday         Weekday
	StartTime       time.Time
	EndTime         time.Time
	Percent         float64 // pay-rate multiplier, carried through untouched
	CrossesMidnight bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

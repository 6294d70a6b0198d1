package schedule

// Availability verdict codes, one per resolver check.
const (
	CodePastDate     = "past_date"
	CodeSalonClosed  = "salon_closed"
	CodeHoliday      = "holiday_closed"
	CodeOutsideHours = "outside_hours"
	CodeStaffOnLeave = "staff_on_leave"
	CodeSlotTaken    = "slot_taken"
)

// Fixed rejection reasons. The outside-hours reason is composed from
// the day's opening window, see the availability resolver.
const (
	ReasonPastDate  = "Date is in the past"
	ReasonClosedDay = "Salon is closed on this day"
	ReasonOnLeave   = "Staff unavailable (on leave)"
	ReasonSlotTaken = "Slot already booked"
)

// Verdict is the availability decision for one slot. Reason is the
// human-readable message surfaced to clients when unavailable.
type Verdict struct {
	Available bool   `json:"available"`
	Code      string `json:"code,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func Available() Verdict {
	return Verdict{Available: true}
}

func Unavailable(code, reason string) Verdict {
	return Verdict{Available: false, Code: code, Reason: reason}
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

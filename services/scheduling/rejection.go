package scheduling

// RejectionCode identifies why a booking attempt was refused. Rejections are
// expected outcomes, not faults; callers map them 1:1 to user-facing messages.
type RejectionCode string

const (
	RejectInvalidInterval       RejectionCode = "invalid_interval"
	RejectInThePast             RejectionCode = "in_the_past"
	RejectNoTemplateForDay      RejectionCode = "no_template_for_day"
	RejectOutsideTemplateWindow RejectionCode = "outside_template_window"
	RejectOnLeave               RejectionCode = "on_leave"
	RejectBusyConflict          RejectionCode = "busy_conflict"
	RejectAppointmentConflict   RejectionCode = "appointment_conflict"
)

// Rejection is a structured refusal with a stable reason string.
type Rejection struct {
	Code   RejectionCode `json:"code"`
	Reason string        `json:"reason"`
}

var rejectionReasons = map[RejectionCode]string{
	RejectInvalidInterval:       "start time must be before end time",
	RejectInThePast:             "cannot book appointments in the past",
	RejectNoTemplateForDay:      "doctor does not work on this day",
	RejectOutsideTemplateWindow: "time is outside doctor's working hours",
	RejectOnLeave:               "doctor is on leave on this date",
	RejectBusyConflict:          "doctor is busy during this time",
	RejectAppointmentConflict:   "time slot is already booked",
}

func reject(code RejectionCode) *Rejection {
	return &Rejection{Code: code, Reason: rejectionReasons[code]}
}

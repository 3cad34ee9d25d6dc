package helper

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

/* ===============================
   Academic calendar
=================================*/

// CurrentAcademicYear: the academic year is the calendar year, e.g. "2026".
func CurrentAcademicYear(now time.Time) string {
	return strconv.Itoa(now.Year())
}

// CurrentTerm derives the term from the calendar month:
// Jan–Apr → Term 1, May–Aug → Term 2, Sep–Dec → Term 3.
func CurrentTerm(now time.Time) string {
	month := int(now.Month())
	switch {
	case month <= 4:
		return "Term 1"
	case month <= 8:
		return "Term 2"
	default:
		return "Term 3"
	}
}

/* ===============================
   Receipt / verification codes
=================================*/

// GenerateReceiptNumber: RCP-YYYYMMDD-NNNN with a random 4-digit suffix.
// Collisions are not checked; the unique index surfaces them.
func GenerateReceiptNumber(now time.Time) string {
	return fmt.Sprintf("RCP-%s-%04d", now.Format("20060102"), rand.Intn(10000))
}

// GenerateVerificationCode: 8-char uppercase alphanumeric, derived from a UUID.
func GenerateVerificationCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}

/* ===============================
   Gate operating hours
=================================*/

type OperatingStatus struct {
	IsOpen  bool
	Message string
}

// GateOperatingStatus: the gate issues passes Mon–Fri, 06:00–17:00 only.
func GateOperatingStatus(now time.Time) OperatingStatus {
	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		return OperatingStatus{IsOpen: false, Message: "Closed on weekends"}
	}
	hour := now.Hour()
	if hour >= 6 && hour < 17 {
		return OperatingStatus{IsOpen: true, Message: "Open"}
	}
	return OperatingStatus{IsOpen: false, Message: "Closed - Operating hours: 6:00 AM - 5:00 PM"}
}

/* ===============================
   Display formatting
=================================*/

// FormatTime12h renders "03:04 PM" for verification messages.
func FormatTime12h(t time.Time) string {
	return t.Format("03:04 PM")
}

// FormatDateLong renders "January 2, 2006" for allowed-until messages.
func FormatDateLong(t time.Time) string {
	return t.Format("January 2, 2006")
}

package service

import (
	"time"

	"github.com/google/uuid"

	schedulemodel "github.com/Davie-07/school-management-system/internals/features/academics/schedules/model"
)

// TeachingDays is the span a weekly timetable covers.
var TeachingDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Overlaps reports whether two "HH:MM" intervals intersect. Back-to-back
// sessions (one ends exactly when the other starts) do not conflict.
// Zero-padded 24h strings compare correctly as strings.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// ConflictsWith reports whether the candidate session collides with an
// existing one: same date and overlapping times, when they share either the
// teacher or the venue. Cancelled sessions never conflict.
func ConflictsWith(candidate, existing *schedulemodel.Schedule) bool {
	if existing.ScheduleStatus == schedulemodel.ScheduleStatusCancelled {
		return false
	}
	if !sameDay(candidate.ScheduleDate, existing.ScheduleDate) {
		return false
	}
	if existing.ScheduleTeacherID != candidate.ScheduleTeacherID &&
		existing.ScheduleVenue != candidate.ScheduleVenue {
		return false
	}
	return Overlaps(candidate.ScheduleStartTime, candidate.ScheduleEndTime,
		existing.ScheduleStartTime, existing.ScheduleEndTime)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WeekStart returns midnight on the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}

// BuildTimetable buckets sessions by weekday name, Monday through Friday.
// Weekend sessions are dropped. Input order is preserved within each day.
func BuildTimetable(schedules []schedulemodel.Schedule) map[string][]schedulemodel.Schedule {
	timetable := make(map[string][]schedulemodel.Schedule, len(TeachingDays))
	for _, dayName := range TeachingDays {
		timetable[dayName] = []schedulemodel.Schedule{}
	}
	for i := range schedules {
		name := schedules[i].ScheduleDate.Weekday().String()
		if _, ok := timetable[name]; ok {
			timetable[name] = append(timetable[name], schedules[i])
		}
	}
	return timetable
}

// MarkAttendance records or replaces the student's mark on the session.
func MarkAttendance(sch *schedulemodel.Schedule, studentID uuid.UUID, status schedulemodel.AttendanceStatus, now time.Time) {
	marked := now
	if i := sch.AttendeeFor(studentID); i >= 0 {
		sch.ScheduleAttendees[i].Status = status
		sch.ScheduleAttendees[i].MarkedAt = &marked
		return
	}
	sch.ScheduleAttendees = append(sch.ScheduleAttendees, schedulemodel.Attendee{
		StudentID: studentID,
		Status:    status,
		MarkedAt:  &marked,
	})
}

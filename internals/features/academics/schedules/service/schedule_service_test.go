package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schedulemodel "github.com/Davie-07/school-management-system/internals/features/academics/schedules/model"
)

func session(teacher uuid.UUID, venue, start, end string, day time.Time) schedulemodel.Schedule {
	return schedulemodel.Schedule{
		ScheduleID:        uuid.New(),
		ScheduleTeacherID: teacher,
		ScheduleVenue:     venue,
		ScheduleDate:      day,
		ScheduleStartTime: start,
		ScheduleEndTime:   end,
		ScheduleStatus:    schedulemodel.ScheduleStatusScheduled,
	}
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps("09:00", "11:00", "10:00", "12:00"))
	assert.True(t, Overlaps("10:00", "12:00", "09:00", "11:00"))
	assert.True(t, Overlaps("09:00", "11:00", "09:30", "10:30"))

	// back-to-back is allowed
	assert.False(t, Overlaps("09:00", "11:00", "11:00", "13:00"))
	assert.False(t, Overlaps("11:00", "13:00", "09:00", "11:00"))
}

func TestConflictsWith(t *testing.T) {
	day := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	teacher := uuid.New()

	existing := session(teacher, "LH-1", "09:00", "11:00", day)

	t.Run("same teacher overlapping", func(t *testing.T) {
		candidate := session(teacher, "LH-2", "10:00", "12:00", day)
		assert.True(t, ConflictsWith(&candidate, &existing))
	})

	t.Run("same venue overlapping", func(t *testing.T) {
		candidate := session(uuid.New(), "LH-1", "10:00", "12:00", day)
		assert.True(t, ConflictsWith(&candidate, &existing))
	})

	t.Run("different teacher and venue", func(t *testing.T) {
		candidate := session(uuid.New(), "LH-9", "10:00", "12:00", day)
		assert.False(t, ConflictsWith(&candidate, &existing))
	})

	t.Run("different day", func(t *testing.T) {
		candidate := session(teacher, "LH-1", "10:00", "12:00", day.AddDate(0, 0, 1))
		assert.False(t, ConflictsWith(&candidate, &existing))
	})

	t.Run("cancelled sessions never block", func(t *testing.T) {
		cancelled := existing
		cancelled.ScheduleStatus = schedulemodel.ScheduleStatusCancelled
		candidate := session(teacher, "LH-1", "10:00", "12:00", day)
		assert.False(t, ConflictsWith(&candidate, &cancelled))
	})
}

func TestWeekStart(t *testing.T) {
	// Wednesday 11 March 2026
	wednesday := time.Date(2026, time.March, 11, 15, 30, 0, 0, time.UTC)
	monday := WeekStart(wednesday)
	assert.Equal(t, time.Monday, monday.Weekday())
	assert.Equal(t, 9, monday.Day())
	assert.Equal(t, 0, monday.Hour())

	// Sunday belongs to the week that started the previous Monday
	sunday := time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 9, WeekStart(sunday).Day())

	// Monday maps to itself
	assert.Equal(t, 9, WeekStart(monday).Day())
}

func TestBuildTimetableBucketsByWeekday(t *testing.T) {
	teacher := uuid.New()
	monday := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	schedules := []schedulemodel.Schedule{
		session(teacher, "LH-1", "09:00", "11:00", monday),
		session(teacher, "LH-1", "14:00", "16:00", monday),
		session(teacher, "LH-2", "09:00", "11:00", monday.AddDate(0, 0, 2)), // Wednesday
		session(teacher, "LH-2", "09:00", "11:00", monday.AddDate(0, 0, 5)), // Saturday, dropped
	}

	timetable := BuildTimetable(schedules)
	require.Len(t, timetable, 5)
	assert.Len(t, timetable["Monday"], 2)
	assert.Len(t, timetable["Wednesday"], 1)
	assert.Empty(t, timetable["Tuesday"])
	assert.Empty(t, timetable["Friday"])
}

func TestMarkAttendanceUpsertsByStudent(t *testing.T) {
	day := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	sch := session(uuid.New(), "LH-1", "09:00", "11:00", day)
	student := uuid.New()
	now := time.Now()

	MarkAttendance(&sch, student, schedulemodel.AttendanceAbsent, now)
	require.Len(t, sch.ScheduleAttendees, 1)
	assert.Equal(t, schedulemodel.AttendanceAbsent, sch.ScheduleAttendees[0].Status)

	MarkAttendance(&sch, student, schedulemodel.AttendancePresent, now.Add(time.Minute))
	require.Len(t, sch.ScheduleAttendees, 1)
	assert.Equal(t, schedulemodel.AttendancePresent, sch.ScheduleAttendees[0].Status)

	MarkAttendance(&sch, uuid.New(), schedulemodel.AttendanceLate, now)
	assert.Len(t, sch.ScheduleAttendees, 2)
}

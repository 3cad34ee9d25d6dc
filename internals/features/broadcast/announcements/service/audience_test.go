package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	announcementmodel "github.com/Davie-07/school-management-system/internals/features/broadcast/announcements/model"
)

func TestMatchesRoles(t *testing.T) {
	student := Recipient{UserID: uuid.New(), Role: "student"}
	finance := Recipient{UserID: uuid.New(), Role: "finance"}

	all := announcementmodel.Audience{Roles: []string{"all"}}
	assert.True(t, Matches(all, student))
	assert.True(t, Matches(all, finance))

	studentsOnly := announcementmodel.Audience{Roles: []string{"student"}}
	assert.True(t, Matches(studentsOnly, student))
	assert.False(t, Matches(studentsOnly, finance))
}

func TestMatchesStudentCourseAndLevel(t *testing.T) {
	courseID := uuid.New()
	levelID := uuid.New()
	student := Recipient{UserID: uuid.New(), Role: "student", CourseID: &courseID, LevelID: &levelID}

	assert.True(t, Matches(announcementmodel.Audience{CourseIDs: []uuid.UUID{courseID}}, student))
	assert.True(t, Matches(announcementmodel.Audience{LevelIDs: []uuid.UUID{levelID}}, student))
	assert.False(t, Matches(announcementmodel.Audience{CourseIDs: []uuid.UUID{uuid.New()}}, student))

	// staff never match on course or level
	teacher := Recipient{UserID: uuid.New(), Role: "teacher", CourseID: &courseID}
	assert.False(t, Matches(announcementmodel.Audience{CourseIDs: []uuid.UUID{courseID}}, teacher))
}

func TestMatchesSpecificUsers(t *testing.T) {
	teacher := Recipient{UserID: uuid.New(), Role: "teacher"}
	assert.True(t, Matches(announcementmodel.Audience{SpecificUsers: []uuid.UUID{teacher.UserID}}, teacher))
	assert.False(t, Matches(announcementmodel.Audience{SpecificUsers: []uuid.UUID{uuid.New()}}, teacher))
}

func TestMatchesEmptyAudience(t *testing.T) {
	assert.False(t, Matches(announcementmodel.Audience{}, Recipient{UserID: uuid.New(), Role: "admin"}))
}

func TestMarkReadIsIdempotent(t *testing.T) {
	userID := uuid.New()
	now := time.Now()
	receipts := []announcementmodel.ReadReceipt{}

	require.True(t, MarkRead(&receipts, userID, now))
	assert.False(t, MarkRead(&receipts, userID, now.Add(time.Minute)))
	assert.Len(t, receipts, 1)
	assert.True(t, HasRead(receipts, userID))
	assert.False(t, HasRead(receipts, uuid.New()))
}

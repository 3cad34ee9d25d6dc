package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanMutateAdminBypasses(t *testing.T) {
	other := uuid.New()

	ok := CanMutate(
		Actor{ID: uuid.New(), Role: "admin"},
		Resource{OwnerTeacherID: &other},
	)

	assert.True(t, ok)
}

func TestCanMutateTeacherOwnsResource(t *testing.T) {
	teacherID := uuid.New()

	assert.True(t, CanMutate(
		Actor{ID: teacherID, Role: "teacher"},
		Resource{OwnerTeacherID: &teacherID},
	))
}

func TestCanMutateTeacherAssignedToCourse(t *testing.T) {
	courseID := uuid.New()
	owner := uuid.New()

	actor := Actor{
		ID:                uuid.New(),
		Role:              "teacher",
		AssignedCourseIDs: []string{uuid.NewString(), courseID.String()},
	}

	assert.True(t, CanMutate(actor, Resource{OwnerTeacherID: &owner, CourseID: &courseID}))
}

func TestCanMutateTeacherDeniedOnForeignResource(t *testing.T) {
	owner := uuid.New()
	courseID := uuid.New()

	actor := Actor{ID: uuid.New(), Role: "teacher", AssignedCourseIDs: []string{uuid.NewString()}}

	assert.False(t, CanMutate(actor, Resource{OwnerTeacherID: &owner, CourseID: &courseID}))
}

func TestCanMutateDeniesNonTeachingRoles(t *testing.T) {
	res := Resource{}

	for _, role := range []string{"student", "finance", "gatepass", ""} {
		assert.False(t, CanMutate(Actor{ID: uuid.New(), Role: role}, res), role)
	}
}

func TestCanReadStudentScoped(t *testing.T) {
	studentID := uuid.New()

	assert.True(t, CanReadStudentScoped(Actor{ID: studentID, Role: "student"}, studentID))
	assert.False(t, CanReadStudentScoped(Actor{ID: uuid.New(), Role: "student"}, studentID))
	assert.True(t, CanReadStudentScoped(Actor{ID: uuid.New(), Role: "finance"}, studentID))
	assert.True(t, CanReadStudentScoped(Actor{ID: uuid.New(), Role: "admin"}, studentID))
}

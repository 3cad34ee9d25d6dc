package authz

import (
	"github.com/google/uuid"

	"github.com/Davie-07/school-management-system/internals/constants"
)

// Actor is the caller as seen by access control.
type Actor struct {
	ID                uuid.UUID
	Role              string
	AssignedCourseIDs []string // course ids as strings, teachers only
}

// Resource describes the thing being accessed. Leave fields nil when the
// resource has no such association.
type Resource struct {
	OwnerTeacherID *uuid.UUID // teacher field on exams/schedules
	CourseID       *uuid.UUID
	StudentID      *uuid.UUID // owning student on fees/results/gatepasses
}

// CanMutate is the single ownership rule applied before every mutating
// operation on exams, results and schedules: admins bypass, teachers must
// own the resource or be assigned to its course, everyone else is denied.
func CanMutate(actor Actor, res Resource) bool {
	switch actor.Role {
	case constants.RoleAdmin:
		return true
	case constants.RoleTeacher:
		if res.OwnerTeacherID != nil && *res.OwnerTeacherID == actor.ID {
			return true
		}
		if res.CourseID != nil {
			for _, id := range actor.AssignedCourseIDs {
				if id == res.CourseID.String() {
					return true
				}
			}
		}
		return false
	default:
		return false
	}
}

// CanReadStudentScoped guards student-owned reads (fee records, results,
// gatepass history): students see only their own, staff see everything.
func CanReadStudentScoped(actor Actor, studentID uuid.UUID) bool {
	if actor.Role != constants.RoleStudent {
		return true
	}
	return actor.ID == studentID
}

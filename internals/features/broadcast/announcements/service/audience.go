package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/Davie-07/school-management-system/internals/constants"
	announcementmodel "github.com/Davie-07/school-management-system/internals/features/broadcast/announcements/model"
)

// Recipient is the reader an audience is evaluated against.
type Recipient struct {
	UserID   uuid.UUID
	Role     string
	CourseID *uuid.UUID
	LevelID  *uuid.UUID
}

// Matches decides whether the recipient is in the audience. Students match
// on role, course, level or direct targeting; staff match on role or direct
// targeting only. An audience that names nothing matches nobody.
func Matches(aud announcementmodel.Audience, r Recipient) bool {
	for _, role := range aud.Roles {
		if role == "all" || role == r.Role {
			return true
		}
	}
	for _, id := range aud.SpecificUsers {
		if id == r.UserID {
			return true
		}
	}
	if r.Role != constants.RoleStudent {
		return false
	}
	if r.CourseID != nil {
		for _, id := range aud.CourseIDs {
			if id == *r.CourseID {
				return true
			}
		}
	}
	if r.LevelID != nil {
		for _, id := range aud.LevelIDs {
			if id == *r.LevelID {
				return true
			}
		}
	}
	return false
}

// HasRead reports whether the user already has a read receipt.
func HasRead(receipts []announcementmodel.ReadReceipt, userID uuid.UUID) bool {
	for i := range receipts {
		if receipts[i].UserID == userID {
			return true
		}
	}
	return false
}

// MarkRead appends a receipt unless one exists. Reports whether it changed
// the slice.
func MarkRead(receipts *[]announcementmodel.ReadReceipt, userID uuid.UUID, now time.Time) bool {
	if HasRead(*receipts, userID) {
		return false
	}
	*receipts = append(*receipts, announcementmodel.ReadReceipt{UserID: userID, ReadAt: now})
	return true
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — priority & lifecycle
============================== */

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type AnnouncementStatus string

const (
	AnnouncementDraft     AnnouncementStatus = "draft"
	AnnouncementPublished AnnouncementStatus = "published"
	AnnouncementArchived  AnnouncementStatus = "archived"
)

/* ==============================
   JSONB documents
============================== */

// Audience selects who an announcement is delivered to. The dimensions are
// OR-ed: matching any one of them is enough.
type Audience struct {
	Roles         []string    `json:"roles,omitempty"` // "all" or role names
	CourseIDs     []uuid.UUID `json:"course_ids,omitempty"`
	LevelIDs      []uuid.UUID `json:"level_ids,omitempty"`
	SpecificUsers []uuid.UUID `json:"specific_users,omitempty"`
}

type Attachment struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Type     string `json:"type"`
}

// ReadReceipt marks that a user opened the item.
type ReadReceipt struct {
	UserID uuid.UUID `json:"user_id"`
	ReadAt time.Time `json:"read_at"`
}

/* ==============================
   MODEL
============================== */

type Announcement struct {
	// PK
	AnnouncementID uuid.UUID `gorm:"column:announcement_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"announcement_id"`

	AnnouncementTitle    string   `gorm:"column:announcement_title;type:varchar(200);not null" json:"announcement_title"`
	AnnouncementContent  string   `gorm:"column:announcement_content;type:text;not null" json:"announcement_content"`
	AnnouncementPriority Priority `gorm:"column:announcement_priority;type:varchar(10);not null;default:'medium'" json:"announcement_priority"`

	AnnouncementAudience    datatypes.JSONType[Audience]    `gorm:"column:announcement_audience;type:jsonb" json:"announcement_audience"`
	AnnouncementAttachments datatypes.JSONSlice[Attachment] `gorm:"column:announcement_attachments;type:jsonb" json:"announcement_attachments"`

	AnnouncementValidFrom  time.Time  `gorm:"column:announcement_valid_from;type:timestamptz;not null;default:now()" json:"announcement_valid_from"`
	AnnouncementValidUntil *time.Time `gorm:"column:announcement_valid_until;type:timestamptz;index" json:"announcement_valid_until,omitempty"`

	AnnouncementStatus AnnouncementStatus               `gorm:"column:announcement_status;type:varchar(12);not null;default:'published';index" json:"announcement_status"`
	AnnouncementReadBy datatypes.JSONSlice[ReadReceipt] `gorm:"column:announcement_read_by;type:jsonb" json:"announcement_read_by"`

	AnnouncementCreatedBy uuid.UUID `gorm:"column:announcement_created_by;type:uuid;not null;index" json:"announcement_created_by"`

	// Audit
	AnnouncementCreatedAt time.Time      `gorm:"column:announcement_created_at;type:timestamptz;not null;default:now();index" json:"announcement_created_at"`
	AnnouncementUpdatedAt time.Time      `gorm:"column:announcement_updated_at;type:timestamptz;not null;default:now()" json:"announcement_updated_at"`
	AnnouncementDeletedAt gorm.DeletedAt `gorm:"column:announcement_deleted_at;type:timestamptz;index" json:"-"`
}

func (Announcement) TableName() string { return "announcements" }

func (m *Announcement) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.AnnouncementCreatedAt.IsZero() {
		m.AnnouncementCreatedAt = now
	}
	if m.AnnouncementValidFrom.IsZero() {
		m.AnnouncementValidFrom = now
	}
	m.AnnouncementUpdatedAt = now
	return nil
}

func (m *Announcement) BeforeUpdate(tx *gorm.DB) error {
	m.AnnouncementUpdatedAt = time.Now()
	return nil
}

// IsCurrent reports whether the announcement is still deliverable: published
// and not past its valid-until date.
func (m *Announcement) IsCurrent(now time.Time) bool {
	if m.AnnouncementStatus != AnnouncementPublished {
		return false
	}
	return m.AnnouncementValidUntil == nil || !m.AnnouncementValidUntil.Before(now)
}

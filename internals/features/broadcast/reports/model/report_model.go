package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	announcementmodel "github.com/Davie-07/school-management-system/internals/features/broadcast/announcements/model"
)

/* ==============================
   ENUM — report type, routing, lifecycle
============================== */

type ReportType string

const (
	ReportExamMisprint   ReportType = "exam_misprint"
	ReportSuggestion     ReportType = "suggestion"
	ReportComplaint      ReportType = "complaint"
	ReportTechnicalIssue ReportType = "technical_issue"
	ReportOther          ReportType = "other"
)

type TargetDashboard string

const (
	DashboardAdmin   TargetDashboard = "admin"
	DashboardTeacher TargetDashboard = "teacher"
	DashboardFinance TargetDashboard = "finance"
	DashboardGeneral TargetDashboard = "general"
)

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportInReview ReportStatus = "in_review"
	ReportResolved ReportStatus = "resolved"
	ReportRejected ReportStatus = "rejected"
	ReportArchived ReportStatus = "archived"
)

/* ==============================
   JSONB documents
============================== */

// ReportResponse is the staff reply that closes out a report.
type ReportResponse struct {
	RespondedBy uuid.UUID `json:"responded_by"`
	Message     string    `json:"message"`
	Action      string    `json:"action,omitempty"`
	RespondedAt time.Time `json:"responded_at"`
}

/* ==============================
   MODEL
============================== */

type Report struct {
	// PK
	ReportID uuid.UUID `gorm:"column:report_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"report_id"`

	ReportReporterID uuid.UUID `gorm:"column:report_reporter_id;type:uuid;not null;index:idx_report_reporter_status" json:"report_reporter_id"`

	ReportType            ReportType      `gorm:"column:report_type;type:varchar(20);not null;index" json:"report_type"`
	ReportTargetDashboard TargetDashboard `gorm:"column:report_target_dashboard;type:varchar(10);not null;index" json:"report_target_dashboard"`
	ReportTargetUserID    *uuid.UUID      `gorm:"column:report_target_user_id;type:uuid;index" json:"report_target_user_id,omitempty"`
	ReportRelatedExamID   *uuid.UUID      `gorm:"column:report_related_exam_id;type:uuid" json:"report_related_exam_id,omitempty"`

	ReportSubject     string `gorm:"column:report_subject;type:varchar(200);not null" json:"report_subject"`
	ReportDescription string `gorm:"column:report_description;type:text;not null" json:"report_description"`

	ReportAttachments datatypes.JSONSlice[announcementmodel.Attachment] `gorm:"column:report_attachments;type:jsonb" json:"report_attachments"`

	ReportPriority announcementmodel.Priority `gorm:"column:report_priority;type:varchar(10);not null;default:'medium'" json:"report_priority"`
	ReportStatus   ReportStatus               `gorm:"column:report_status;type:varchar(12);not null;default:'pending';index:idx_report_reporter_status" json:"report_status"`

	ReportResponse *datatypes.JSONType[ReportResponse]                 `gorm:"column:report_response;type:jsonb" json:"report_response,omitempty"`
	ReportReadBy   datatypes.JSONSlice[announcementmodel.ReadReceipt] `gorm:"column:report_read_by;type:jsonb" json:"report_read_by"`

	// Audit
	ReportCreatedAt time.Time      `gorm:"column:report_created_at;type:timestamptz;not null;default:now();index" json:"report_created_at"`
	ReportUpdatedAt time.Time      `gorm:"column:report_updated_at;type:timestamptz;not null;default:now()" json:"report_updated_at"`
	ReportDeletedAt gorm.DeletedAt `gorm:"column:report_deleted_at;type:timestamptz;index" json:"-"`
}

func (Report) TableName() string { return "reports" }

func (m *Report) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.ReportCreatedAt.IsZero() {
		m.ReportCreatedAt = now
	}
	m.ReportUpdatedAt = now
	return nil
}

func (m *Report) BeforeUpdate(tx *gorm.DB) error {
	m.ReportUpdatedAt = time.Now()
	return nil
}

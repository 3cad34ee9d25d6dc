package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	announcementmodel "github.com/Davie-07/school-management-system/internals/features/broadcast/announcements/model"
	reportmodel "github.com/Davie-07/school-management-system/internals/features/broadcast/reports/model"
)

/* ==============================
   REQUEST DTO
============================== */

type ReportCreateDTO struct {
	ReportType      string  `json:"reportType" validate:"required,oneof=exam_misprint suggestion complaint technical_issue other"`
	TargetDashboard string  `json:"targetDashboard" validate:"required,oneof=admin teacher finance general"`
	TargetUserID    *string `json:"targetUser" validate:"omitempty,uuid4"`
	RelatedExamID   *string `json:"relatedExam" validate:"omitempty,uuid4"`

	Subject     string `json:"subject" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`

	Attachments []AttachmentDTO `json:"attachments" validate:"omitempty,dive"`
}

type AttachmentDTO struct {
	Filename string `json:"filename" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
	Type     string `json:"type"`
}

type ReportRespondDTO struct {
	Message string `json:"message" validate:"required"`
	Action  string `json:"action"`
	Status  string `json:"status" validate:"omitempty,oneof=pending in_review resolved rejected archived"`
}

type ReportStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=pending in_review resolved rejected archived"`
}

/* ==============================
   MAPPING
============================== */

func (r *ReportCreateDTO) ToModel(reporterID uuid.UUID) reportmodel.Report {
	rpt := reportmodel.Report{
		ReportReporterID:      reporterID,
		ReportType:            reportmodel.ReportType(r.ReportType),
		ReportTargetDashboard: reportmodel.TargetDashboard(r.TargetDashboard),
		ReportSubject:         r.Subject,
		ReportDescription:     r.Description,
		ReportPriority:        announcementmodel.PriorityMedium,
		ReportStatus:          reportmodel.ReportPending,
		ReportReadBy:          datatypes.NewJSONSlice([]announcementmodel.ReadReceipt{}),
	}
	if r.Priority != "" {
		rpt.ReportPriority = announcementmodel.Priority(r.Priority)
	}
	if r.TargetUserID != nil {
		if id, err := uuid.Parse(*r.TargetUserID); err == nil {
			rpt.ReportTargetUserID = &id
		}
	}
	if r.RelatedExamID != nil {
		if id, err := uuid.Parse(*r.RelatedExamID); err == nil {
			rpt.ReportRelatedExamID = &id
		}
	}
	// Misprint disputes always land on the teacher dashboard.
	if rpt.ReportType == reportmodel.ReportExamMisprint {
		rpt.ReportTargetDashboard = reportmodel.DashboardTeacher
	}
	attachments := make([]announcementmodel.Attachment, 0, len(r.Attachments))
	for _, a := range r.Attachments {
		attachments = append(attachments, announcementmodel.Attachment{
			Filename: a.Filename,
			URL:      a.URL,
			Type:     a.Type,
		})
	}
	rpt.ReportAttachments = datatypes.NewJSONSlice(attachments)
	return rpt
}

package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	announcementmodel "github.com/Davie-07/school-management-system/internals/features/broadcast/announcements/model"
)

/* ==============================
   REQUEST DTO
============================== */

type AudienceDTO struct {
	Roles         []string `json:"roles" validate:"omitempty,dive,oneof=all student teacher admin finance gatepass"`
	CourseIDs     []string `json:"courses" validate:"omitempty,dive,uuid4"`
	LevelIDs      []string `json:"levels" validate:"omitempty,dive,uuid4"`
	SpecificUsers []string `json:"specificUsers" validate:"omitempty,dive,uuid4"`
}

type AttachmentDTO struct {
	Filename string `json:"filename" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
	Type     string `json:"type"`
}

type AnnouncementCreateDTO struct {
	Title    string `json:"title" validate:"required,min=3,max=200"`
	Content  string `json:"content" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`

	Audience    *AudienceDTO    `json:"targetAudience"`
	Attachments []AttachmentDTO `json:"attachments" validate:"omitempty,dive"`

	ValidFrom  *time.Time `json:"validFrom"`
	ValidUntil *time.Time `json:"validUntil"`

	Status string `json:"status" validate:"omitempty,oneof=draft published archived"`
}

type AnnouncementUpdateDTO struct {
	Title    *string `json:"title" validate:"omitempty,min=3,max=200"`
	Content  *string `json:"content"`
	Priority *string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`

	Audience    *AudienceDTO    `json:"targetAudience"`
	Attachments []AttachmentDTO `json:"attachments" validate:"omitempty,dive"`

	ValidFrom  *time.Time `json:"validFrom"`
	ValidUntil *time.Time `json:"validUntil"`

	Status *string `json:"status" validate:"omitempty,oneof=draft published archived"`
}

/* ==============================
   MAPPING
============================== */

func (a *AudienceDTO) ToModel() announcementmodel.Audience {
	aud := announcementmodel.Audience{Roles: a.Roles}
	for _, id := range a.CourseIDs {
		if parsed, err := uuid.Parse(id); err == nil {
			aud.CourseIDs = append(aud.CourseIDs, parsed)
		}
	}
	for _, id := range a.LevelIDs {
		if parsed, err := uuid.Parse(id); err == nil {
			aud.LevelIDs = append(aud.LevelIDs, parsed)
		}
	}
	for _, id := range a.SpecificUsers {
		if parsed, err := uuid.Parse(id); err == nil {
			aud.SpecificUsers = append(aud.SpecificUsers, parsed)
		}
	}
	return aud
}

func toAttachments(in []AttachmentDTO) []announcementmodel.Attachment {
	out := make([]announcementmodel.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, announcementmodel.Attachment{
			Filename: a.Filename,
			URL:      a.URL,
			Type:     a.Type,
		})
	}
	return out
}

func (r *AnnouncementCreateDTO) ToModel(createdBy uuid.UUID) announcementmodel.Announcement {
	ann := announcementmodel.Announcement{
		AnnouncementTitle:     r.Title,
		AnnouncementContent:   r.Content,
		AnnouncementPriority:  announcementmodel.PriorityMedium,
		AnnouncementStatus:    announcementmodel.AnnouncementPublished,
		AnnouncementCreatedBy: createdBy,
		AnnouncementReadBy:    datatypes.NewJSONSlice([]announcementmodel.ReadReceipt{}),
	}
	if r.Priority != "" {
		ann.AnnouncementPriority = announcementmodel.Priority(r.Priority)
	}
	if r.Status != "" {
		ann.AnnouncementStatus = announcementmodel.AnnouncementStatus(r.Status)
	}
	// Without an explicit audience the announcement goes to everyone.
	aud := announcementmodel.Audience{Roles: []string{"all"}}
	if r.Audience != nil {
		aud = r.Audience.ToModel()
	}
	ann.AnnouncementAudience = datatypes.NewJSONType(aud)
	ann.AnnouncementAttachments = datatypes.NewJSONSlice(toAttachments(r.Attachments))
	if r.ValidFrom != nil {
		ann.AnnouncementValidFrom = *r.ValidFrom
	}
	ann.AnnouncementValidUntil = r.ValidUntil
	return ann
}

func ApplyAnnouncementUpdate(ann *announcementmodel.Announcement, r *AnnouncementUpdateDTO) {
	if r.Title != nil {
		ann.AnnouncementTitle = *r.Title
	}
	if r.Content != nil {
		ann.AnnouncementContent = *r.Content
	}
	if r.Priority != nil {
		ann.AnnouncementPriority = announcementmodel.Priority(*r.Priority)
	}
	if r.Audience != nil {
		ann.AnnouncementAudience = datatypes.NewJSONType(r.Audience.ToModel())
	}
	if r.Attachments != nil {
		ann.AnnouncementAttachments = datatypes.NewJSONSlice(toAttachments(r.Attachments))
	}
	if r.ValidFrom != nil {
		ann.AnnouncementValidFrom = *r.ValidFrom
	}
	if r.ValidUntil != nil {
		ann.AnnouncementValidUntil = r.ValidUntil
	}
	if r.Status != nil {
		ann.AnnouncementStatus = announcementmodel.AnnouncementStatus(*r.Status)
	}
}

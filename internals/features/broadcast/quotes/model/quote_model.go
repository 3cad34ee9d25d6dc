package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuoteCategory string

const (
	QuoteMotivational QuoteCategory = "motivational"
	QuoteEducational  QuoteCategory = "educational"
	QuoteSuccess      QuoteCategory = "success"
	QuoteLeadership   QuoteCategory = "leadership"
	QuoteWisdom       QuoteCategory = "wisdom"
	QuoteGeneral      QuoteCategory = "general"
)

// Quote rotates on the dashboards, one per teaching day. DayOfWeek "All"
// makes a quote eligible every day.
type Quote struct {
	QuoteID uuid.UUID `gorm:"column:quote_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"quote_id"`

	QuoteText     string        `gorm:"column:quote_text;type:text;not null" json:"quote_text"`
	QuoteAuthor   string        `gorm:"column:quote_author;type:varchar(120);not null" json:"quote_author"`
	QuoteCategory QuoteCategory `gorm:"column:quote_category;type:varchar(20);not null;default:'general';index" json:"quote_category"`

	QuoteDayOfWeek string `gorm:"column:quote_day_of_week;type:varchar(10);not null;default:'All';index:idx_quote_day_active" json:"quote_day_of_week"`
	QuoteIsActive  bool   `gorm:"column:quote_is_active;not null;default:true;index:idx_quote_day_active" json:"quote_is_active"`

	QuoteDisplayCount  int        `gorm:"column:quote_display_count;not null;default:0" json:"quote_display_count"`
	QuoteLastDisplayed *time.Time `gorm:"column:quote_last_displayed;type:timestamptz" json:"quote_last_displayed,omitempty"`

	QuoteCreatedBy *uuid.UUID `gorm:"column:quote_created_by;type:uuid" json:"quote_created_by,omitempty"`

	QuoteCreatedAt time.Time      `gorm:"column:quote_created_at;type:timestamptz;not null;default:now()" json:"quote_created_at"`
	QuoteUpdatedAt time.Time      `gorm:"column:quote_updated_at;type:timestamptz;not null;default:now()" json:"quote_updated_at"`
	QuoteDeletedAt gorm.DeletedAt `gorm:"column:quote_deleted_at;type:timestamptz;index" json:"-"`
}

func (Quote) TableName() string { return "quotes" }

func (m *Quote) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.QuoteCreatedAt.IsZero() {
		m.QuoteCreatedAt = now
	}
	m.QuoteUpdatedAt = now
	return nil
}

func (m *Quote) BeforeUpdate(tx *gorm.DB) error {
	m.QuoteUpdatedAt = time.Now()
	return nil
}

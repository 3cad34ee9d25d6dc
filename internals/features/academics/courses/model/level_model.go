package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Level is a year/stage within a course, e.g. "Year 1".
type Level struct {
	LevelID       uuid.UUID      `gorm:"column:level_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"level_id"`
	LevelName     string         `gorm:"column:level_name;type:varchar(60);not null" json:"level_name"`
	LevelCourseID uuid.UUID      `gorm:"column:level_course_id;type:uuid;not null;index;uniqueIndex:uniq_course_level_order,priority:1" json:"level_course_id"`
	LevelOrder    int            `gorm:"column:level_order;not null;default:1;uniqueIndex:uniq_course_level_order,priority:2" json:"level_order"`
	LevelCreatedAt time.Time     `gorm:"column:level_created_at;type:timestamptz;not null;default:now()" json:"level_created_at"`
	LevelDeletedAt gorm.DeletedAt `gorm:"column:level_deleted_at;type:timestamptz;index" json:"-"`
}

func (Level) TableName() string { return "levels" }

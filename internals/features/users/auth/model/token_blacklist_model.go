package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenBlacklist holds tokens invalidated by logout until they would have
// expired anyway; a cron job purges old rows.
type TokenBlacklist struct {
	TokenBlacklistID        uuid.UUID      `gorm:"column:token_blacklist_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"token_blacklist_id"`
	TokenBlacklistToken     string         `gorm:"column:token_blacklist_token;type:text;not null;index" json:"token_blacklist_token"`
	TokenBlacklistExpiredAt time.Time      `gorm:"column:token_blacklist_expired_at;type:timestamptz;not null;index" json:"token_blacklist_expired_at"`
	TokenBlacklistCreatedAt time.Time      `gorm:"column:token_blacklist_created_at;type:timestamptz;not null;default:now()" json:"token_blacklist_created_at"`
	TokenBlacklistDeletedAt gorm.DeletedAt `gorm:"column:token_blacklist_deleted_at;type:timestamptz;index" json:"-"`
}

func (TokenBlacklist) TableName() string { return "token_blacklist" }

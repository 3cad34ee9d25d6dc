package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	authmodel "github.com/Davie-07/school-management-system/internals/features/users/auth/model"
)

const cleanupBatchSize = 100

// StartBlacklistCleanup schedules a daily purge of blacklisted tokens that
// have been expired longer than TOKEN_BLACKLIST_TTL_DAYS (default 7).
// The returned cron is already started; stop it during shutdown.
func StartBlacklistCleanup(db *gorm.DB) *cron.Cron {
	ttlDays := 7
	if val := os.Getenv("TOKEN_BLACKLIST_TTL_DAYS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			ttlDays = parsed
		}
	}

	c := cron.New()
	if _, err := c.AddFunc("@daily", func() {
		purgeExpiredTokens(db, ttlDays)
	}); err != nil {
		log.Printf("[CLEANUP] failed to schedule token blacklist purge: %v", err)
		return c
	}
	c.Start()
	return c
}

func purgeExpiredTokens(db *gorm.DB, ttlDays int) {
	deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

	for {
		var expired []authmodel.TokenBlacklist
		if err := db.
			Where("token_blacklist_expired_at < ?", deleteBefore).
			Limit(cleanupBatchSize).
			Find(&expired).Error; err != nil {
			log.Printf("[CLEANUP] failed to list expired tokens: %v", err)
			return
		}
		if len(expired) == 0 {
			return
		}
		if err := db.Unscoped().Delete(&expired).Error; err != nil {
			log.Printf("[CLEANUP] failed to delete expired tokens: %v", err)
			return
		}
		log.Printf("[CLEANUP] purged %d expired blacklist tokens", len(expired))
		if len(expired) < cleanupBatchSize {
			return
		}
	}
}

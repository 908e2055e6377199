package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"kerjaku_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler deletes blacklist rows whose tokens expired
// more than TOKEN_BLACKLIST_TTL_DAYS ago. Runs every 24 hours.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ttlDays := 7
		if val := os.Getenv("TOKEN_BLACKLIST_TTL_DAYS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil {
				ttlDays = parsed
			}
		}

		for {
			log.Println("[CLEANUP] Sweeping token_blacklist...")

			deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

			var expiredTokens []model.TokenBlacklistModel
			if err := db.
				Where("expired_at < ? AND deleted_at IS NULL", deleteBefore).
				Limit(100).
				Find(&expiredTokens).Error; err != nil {
				log.Printf("[CLEANUP ERROR] Failed to fetch expired tokens: %v", err)
			} else if len(expiredTokens) > 0 {
				if err := db.Delete(&expiredTokens).Error; err != nil {
					log.Printf("[CLEANUP ERROR] Failed to delete tokens: %v", err)
				} else {
					log.Printf("[CLEANUP] Removed %d expired blacklist tokens", len(expiredTokens))
				}
			} else {
				log.Println("[CLEANUP] Nothing to sweep")
			}

			// also reap long-dead refresh sessions
			if err := db.Where("expires_at < ? OR revoked_at < ?", deleteBefore, deleteBefore).
				Delete(&model.RefreshTokenModel{}).Error; err != nil {
				log.Printf("[CLEANUP ERROR] Failed to reap refresh tokens: %v", err)
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}

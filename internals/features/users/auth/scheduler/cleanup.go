package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"thinkeep_backend/internals/features/users/auth/repository"
)

// StartTokenCleanupScheduler purges expired blacklist entries and refresh
// tokens once a day in the background.
func StartTokenCleanupScheduler(db *gorm.DB) {
	interval := 24 * time.Hour
	if val := os.Getenv("TOKEN_CLEANUP_INTERVAL_HOURS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			interval = time.Duration(parsed) * time.Hour
		}
	}

	repo := repository.NewAuthRepository(db)

	go func() {
		for {
			log.Println("[CLEANUP] purging expired tokens...")
			now := time.Now()

			if n, err := repo.DeleteExpiredBlacklistEntries(now); err != nil {
				log.Printf("[CLEANUP ERROR] blacklist purge failed: %v", err)
			} else if n > 0 {
				log.Printf("[CLEANUP] %d blacklist entries removed", n)
			}

			if n, err := repo.DeleteExpiredRefreshTokens(now); err != nil {
				log.Printf("[CLEANUP ERROR] refresh token purge failed: %v", err)
			} else if n > 0 {
				log.Printf("[CLEANUP] %d refresh tokens removed", n)
			}

			time.Sleep(interval)
		}
	}()
}

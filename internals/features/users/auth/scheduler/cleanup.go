package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	"ichiba_backend/internals/features/users/auth/repository"
)

// StartBlacklistCleanupScheduler prunes expired blacklist rows so the table
// does not grow unbounded. Returns a stop func for graceful shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB, interval time.Duration) func() {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				n, err := repository.DeleteExpiredBlacklistEntries(db)
				if err != nil {
					log.Printf("[WARN] blacklist cleanup failed: %v", err)
					continue
				}
				if n > 0 {
					log.Printf("🧹 blacklist cleanup removed %d expired rows", n)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}

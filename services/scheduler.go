// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartSessionCleanupScheduler purges expired sessions in the background so
// the user_sessions table doesn't grow without bound.
func (s *AuthService) StartSessionCleanupScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every hour: drop sessions past their expiry
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			removed, err := s.CleanExpiredSessions()
			if err != nil {
				log.Printf("[Scheduler] Session cleanup error: %v", err)
				return
			}
			if removed > 0 {
				log.Printf("🧹 [Scheduler] Removed %d expired sessions", removed)
			}
		}),
	)
}

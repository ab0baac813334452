package workers

import (
	"context"
	"log"
	"time"

	"github.com/ignaciovargasDEV/prode-2026/services"
)

// RankingWarmer keeps the Redis-cached global leaderboard warm so reads stay
// cheap between match finalizations.
type RankingWarmer struct {
	Ranking *services.RankingService
}

func NewRankingWarmer(ranking *services.RankingService) *RankingWarmer {
	return &RankingWarmer{Ranking: ranking}
}

// PollRanking recomputes and re-caches the global ranking on a fixed
// interval until ctx is cancelled. Run it in a goroutine from main.
func PollRanking(ctx context.Context, w *RankingWarmer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// warm once at startup so the first read doesn't pay for the recompute
	if _, err := w.Ranking.RefreshGlobal(ctx); err != nil {
		log.Printf("⚠️ [RANKING_WARMER] Initial refresh failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("🛑 [RANKING_WARMER] Stopping")
			return
		case <-ticker.C:
			if _, err := w.Ranking.RefreshGlobal(ctx); err != nil {
				log.Printf("⚠️ [RANKING_WARMER] Refresh failed: %v", err)
			}
		}
	}
}

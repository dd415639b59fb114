package billing

import (
	"context"
	"log"
	"time"
)

// RunDowngradeSweeper applies due plan downgrades on a fixed interval until
// ctx is cancelled. It is started from cmd/api alongside the server.
func RunDowngradeSweeper(ctx context.Context, service Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := service.ApplyDueDowngrades(ctx, time.Now())
			if err != nil {
				log.Printf("downgrade sweeper: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("downgrade sweeper: applied %d scheduled downgrade(s)", n)
			}
		}
	}
}

package session

import (
	"context"
	"log"
	"time"
)

// StartSweeper purges expired sessions from the store every interval until
// the context is cancelled. It runs independently of request handling and
// only goes through the store's own operations, so sweep deletions and
// concurrent reads stay serializable at the storage layer. Errors are
// logged and the loop keeps running.
func StartSweeper(ctx context.Context, store Store, interval time.Duration) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
				if err := store.DeleteExpired(sweepCtx); err != nil {
					log.Printf("session sweep failed: %v", err)
				}
				cancel()
			}
		}
	}()
}

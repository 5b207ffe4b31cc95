package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartOrphanTaskCleaner periodically deletes tasks whose parent list no
// longer exists. The foreign key keeps new rows consistent; the sweep covers
// rows created before the constraint was in place.
func StartOrphanTaskCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				res, err := db.ExecContext(ctx, `
                    DELETE FROM tasks
                     WHERE NOT EXISTS (
                           SELECT 1 FROM lists WHERE lists.id = tasks.list_id
                     )
                `)
				if err != nil {
					log.Error("failed to clean orphaned tasks", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned orphaned tasks", zap.Int64("removed", rows))
				}
			}
		}
	}()
}

package jobs

import (
	"context"
	"time"

	"eventhub-backend/internal/logger"
)

// ExpireEmailInvites marks PENDING email invites whose deadline has passed
// as EXPIRED. Acceptance already refuses expired invites on read; this job
// keeps listings and stored state honest.
func (jr *JobRunner) ExpireEmailInvites() {
	jr.runWithRecovery("ExpireEmailInvites", func() {
		ctx := context.Background()

		count, err := jr.store.EmailInvites.ExpirePending(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to expire email invites", "error", err)
			return
		}
		logger.Info("Expired email invites", "count", count)
	})
}

// RevokeExpiredLinks revokes PENDING invite links whose deadline has
// passed. The Consume predicate already refuses them; this job reclaims
// the rows so listings show the terminal state.
func (jr *JobRunner) RevokeExpiredLinks() {
	jr.runWithRecovery("RevokeExpiredLinks", func() {
		ctx := context.Background()

		count, err := jr.store.InviteLinks.RevokeExpired(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to revoke expired invite links", "error", err)
			return
		}
		logger.Info("Revoked expired invite links", "count", count)
	})
}

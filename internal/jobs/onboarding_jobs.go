package jobs

import (
	"context"
	"time"

	"vendorhub/internal/logger"
)

// PurgeExpiredInvitations removes invitation tokens past their expiry
// that never turned into a draft
func (jr *JobRunner) PurgeExpiredInvitations() {
	jr.runWithRecovery("PurgeExpiredInvitations", func() {
		ctx := context.Background()

		deleted, err := jr.store.DeleteExpired(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to purge expired invitations", "error", err)
			return
		}
		logger.Info("Purged expired invitations", "count", deleted)
	})
}

// PurgeSubmittedSnapshots drops cached draft snapshots for submissions
// older than the retention window
func (jr *JobRunner) PurgeSubmittedSnapshots() {
	jr.runWithRecovery("PurgeSubmittedSnapshots", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Scheduler.SubmittedRetentionDays)

		draftIDs, err := jr.store.ListSubmittedBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list submitted drafts", "error", err)
			return
		}

		count := 0
		for _, draftID := range draftIDs {
			if err := jr.cache.Delete(ctx, draftID); err != nil {
				logger.Error("Failed to delete draft snapshot", "draft_id", draftID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Purged submitted draft snapshots", "count", count)
	})
}

// PurgeStaleUploads deletes staged tax documents that were never
// attached to a submitted draft
func (jr *JobRunner) PurgeStaleUploads() {
	jr.runWithRecovery("PurgeStaleUploads", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Scheduler.StaleUploadDays)

		keys, err := jr.fileStore.ListStale(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale uploads", "error", err)
			return
		}

		count := 0
		for _, key := range keys {
			if err := jr.fileStore.DeleteFile(ctx, key); err != nil {
				logger.Error("Failed to delete stale upload", "key", key, "error", err)
				continue
			}
			count++
		}
		logger.Info("Purged stale uploads", "count", count)
	})
}

// SendDraftReminders emails vendors whose drafts have sat idle
func (jr *JobRunner) SendDraftReminders() {
	jr.runWithRecovery("SendDraftReminders", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Scheduler.ReminderIdleDays)

		drafts, err := jr.store.ListIdle(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list idle drafts", "error", err)
			return
		}

		count := 0
		for _, draft := range drafts {
			if draft.Invite == nil || draft.Invite.Email == "" {
				continue
			}
			err := jr.email.SendDraftReminder(ctx, draft.Invite.Email, draft.Invite.FirstName, draft.Step)
			if err != nil {
				logger.Error("Failed to send draft reminder",
					"draft_id", draft.DraftID,
					"email", draft.Invite.Email,
					"error", err)
				continue
			}
			count++
		}
		logger.Info("Sent draft reminders", "count", count)
	})
}

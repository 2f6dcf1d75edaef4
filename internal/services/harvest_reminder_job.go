package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/repository"
)

const harvestReminderWindowDays = 7

// HarvestReminderJob scans the logbook for crops due for harvest within
// the next week. Runs daily from the scheduler; reminders are recorded in
// the service log (no external notification channel is wired).
type HarvestReminderJob struct {
	farmLogRepo repository.IFarmLogRepository
	userRepo    repository.IUserRepository
}

func NewHarvestReminderJob(farmLogRepo repository.IFarmLogRepository, userRepo repository.IUserRepository) *HarvestReminderJob {
	return &HarvestReminderJob{
		farmLogRepo: farmLogRepo,
		userRepo:    userRepo,
	}
}

func (j *HarvestReminderJob) Run(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("HarvestReminderJob: recovered from panic", "panic", r)
		}
	}()

	now := time.Now()
	until := now.AddDate(0, 0, harvestReminderWindowDays)

	logs, err := j.farmLogRepo.GetLogsWithHarvestBetween(now, until)
	if err != nil {
		slog.Error("harvest reminder scan failed", "error", err)
		return err
	}

	slog.Info("harvest reminder scan complete", "upcoming_harvests", len(logs))

	for _, entry := range logs {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		user, err := j.userRepo.GetUserByID(entry.UserID)
		if err != nil {
			slog.Warn("harvest reminder: owner lookup failed",
				"farm_log_id", entry.ID, "user_id", entry.UserID, "error", err)
			continue
		}

		slog.Info("harvest due soon",
			"user_id", user.ID,
			"user_name", user.Name,
			"crop", entry.CropName,
			"expected_harvest_date", entry.ExpectedHarvestDate.Format("2006-01-02"))
	}

	return nil
}

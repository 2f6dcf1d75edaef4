package services

import (
	"fmt"
	"time"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/repository"

	"github.com/google/uuid"
)

const sowingDateLayout = "2006-01-02"

type IFarmLogService interface {
	AddLog(userID string, req models.CreateFarmLogRequest) (*models.FarmLog, error)
	GetLogs(userID string) ([]*models.FarmLog, error)
	DeleteLog(userID, logID string) error
}

type FarmLogService struct {
	farmLogRepo repository.IFarmLogRepository
}

func NewFarmLogService(farmLogRepo repository.IFarmLogRepository) IFarmLogService {
	return &FarmLogService{
		farmLogRepo: farmLogRepo,
	}
}

func (s *FarmLogService) AddLog(userID string, req models.CreateFarmLogRequest) (*models.FarmLog, error) {
	sowingDate, err := time.Parse(sowingDateLayout, req.SowingDate)
	if err != nil {
		return nil, fmt.Errorf("invalid sowing date: %w", err)
	}

	harvestDate, err := resolveHarvestDate(sowingDate, req)
	if err != nil {
		return nil, err
	}

	log := &models.FarmLog{
		ID:                  uuid.New().String(),
		UserID:              userID,
		CropName:            req.CropName,
		SowingDate:          sowingDate,
		ExpectedHarvestDate: harvestDate,
		MoneySpent:          req.MoneySpent,
		MoneyEarned:         req.MoneyEarned,
		Notes:               req.Notes,
	}

	if err := s.farmLogRepo.CreateFarmLog(log); err != nil {
		return nil, err
	}

	return log, nil
}

func (s *FarmLogService) GetLogs(userID string) ([]*models.FarmLog, error) {
	return s.farmLogRepo.GetFarmLogsByUserID(userID)
}

func (s *FarmLogService) DeleteLog(userID, logID string) error {
	return s.farmLogRepo.DeleteFarmLog(logID, userID)
}

// resolveHarvestDate prefers an explicit harvest date; otherwise it is
// derived from the crop duration in days when given.
func resolveHarvestDate(sowingDate time.Time, req models.CreateFarmLogRequest) (*time.Time, error) {
	if req.ExpectedHarvestDate != "" {
		harvest, err := time.Parse(sowingDateLayout, req.ExpectedHarvestDate)
		if err != nil {
			return nil, fmt.Errorf("invalid expected harvest date: %w", err)
		}
		return &harvest, nil
	}
	if req.DurationDays > 0 {
		harvest := sowingDate.AddDate(0, 0, req.DurationDays)
		return &harvest, nil
	}
	return nil, nil
}

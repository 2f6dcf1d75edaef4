package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"

	"github.com/jmoiron/sqlx"
)

type IFarmLogRepository interface {
	CreateFarmLog(log *models.FarmLog) error
	GetFarmLogsByUserID(userID string) ([]*models.FarmLog, error)
	GetFarmLogByID(id string) (*models.FarmLog, error)
	DeleteFarmLog(id, userID string) error
	GetLogsWithHarvestBetween(from, to time.Time) ([]*models.FarmLog, error)
}

type FarmLogRepository struct {
	db *sqlx.DB
}

func NewFarmLogRepository(db *sqlx.DB) IFarmLogRepository {
	return &FarmLogRepository{
		db: db,
	}
}

func (r *FarmLogRepository) CreateFarmLog(log *models.FarmLog) error {
	query := `
		INSERT INTO farm_logs (id, user_id, crop_name, sowing_date, expected_harvest_date,
		                      money_spent, money_earned, notes, created_at)
		VALUES (:id, :user_id, :crop_name, :sowing_date, :expected_harvest_date,
		        :money_spent, :money_earned, :notes, :created_at)
	`

	log.CreatedAt = time.Now()

	_, err := r.db.NamedExec(query, log)
	if err != nil {
		return fmt.Errorf("failed to create farm log: %w", err)
	}

	return nil
}

func (r *FarmLogRepository) GetFarmLogsByUserID(userID string) ([]*models.FarmLog, error) {
	var logs []*models.FarmLog
	query := `SELECT * FROM farm_logs WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&logs, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get farm logs: %w", err)
	}

	return logs, nil
}

func (r *FarmLogRepository) GetFarmLogByID(id string) (*models.FarmLog, error) {
	var log models.FarmLog
	query := `SELECT * FROM farm_logs WHERE id = $1`

	err := r.db.Get(&log, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("farm log not found")
		}
		return nil, fmt.Errorf("failed to get farm log: %w", err)
	}

	return &log, nil
}

func (r *FarmLogRepository) DeleteFarmLog(id, userID string) error {
	query := `DELETE FROM farm_logs WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete farm log: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("farm log not found")
	}

	return nil
}

func (r *FarmLogRepository) GetLogsWithHarvestBetween(from, to time.Time) ([]*models.FarmLog, error) {
	var logs []*models.FarmLog
	query := `
		SELECT * FROM farm_logs
		WHERE expected_harvest_date IS NOT NULL
		  AND expected_harvest_date BETWEEN $1 AND $2
		ORDER BY expected_harvest_date ASC
	`

	err := r.db.Select(&logs, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get farm logs by harvest window: %w", err)
	}

	return logs, nil
}

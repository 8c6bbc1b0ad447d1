package database

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/arnavshah/day-planner-go/pkg/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RosterRun stores one generated roster
type RosterRun struct {
	ID        string `gorm:"primaryKey;size:36"`
	Date      string `gorm:"index;not null"`
	Template  string `gorm:"not null"`
	Payload   []byte
	CreatedAt time.Time
}

// SaveRun stores a roster under a new run id
func SaveRun(db *gorm.DB, template string, roster *models.Roster) (string, error) {
	payload, err := json.Marshal(roster)
	if err != nil {
		return "", err
	}
	run := RosterRun{
		ID:       uuid.NewString(),
		Date:     roster.Date,
		Template: template,
		Payload:  payload,
	}
	if err := db.Create(&run).Error; err != nil {
		return "", err
	}
	return run.ID, nil
}

// GetRun loads a stored roster and the template it was built from
func GetRun(db *gorm.DB, id string) (*models.Roster, string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, "", ErrNotFound
	}
	var run RosterRun
	if err := db.First(&run, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	var roster models.Roster
	if err := json.Unmarshal(run.Payload, &roster); err != nil {
		return nil, "", err
	}
	return &roster, run.Template, nil
}

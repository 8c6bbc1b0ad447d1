package database

import (
	"errors"
	"time"

	"github.com/arnavshah/day-planner-go/pkg/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// WorkerRecord represents the workers table
type WorkerRecord struct {
	ID             uint                        `gorm:"primaryKey"`
	Name           string                      `gorm:"not null;index"`
	Qualifications []string                    `gorm:"serializer:json"`
	Availability   []models.AvailabilityWindow `gorm:"serializer:json"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName keeps the table name stable across renames of the struct
func (WorkerRecord) TableName() string { return "workers" }

// ToModel converts the record into the engine's worker type
func (r WorkerRecord) ToModel() models.Worker {
	return models.Worker{
		ID:             r.ID,
		Name:           r.Name,
		Qualifications: r.Qualifications,
		Availability:   r.Availability,
	}
}

func recordFrom(w models.Worker) WorkerRecord {
	return WorkerRecord{
		ID:             w.ID,
		Name:           w.Name,
		Qualifications: w.Qualifications,
		Availability:   w.Availability,
	}
}

// ListWorkers returns every stored worker in insertion order
func ListWorkers(db *gorm.DB) ([]models.Worker, error) {
	var records []WorkerRecord
	if err := db.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	workers := make([]models.Worker, len(records))
	for i, r := range records {
		workers[i] = r.ToModel()
	}
	return workers, nil
}

// CreateWorker stores a new worker and returns it with its id
func CreateWorker(db *gorm.DB, w models.Worker) (models.Worker, error) {
	rec := recordFrom(w)
	rec.ID = 0
	if err := db.Create(&rec).Error; err != nil {
		return models.Worker{}, err
	}
	return rec.ToModel(), nil
}

// CreateWorkers stores a batch of workers in one transaction
func CreateWorkers(db *gorm.DB, workers []models.Worker) (int, error) {
	if len(workers) == 0 {
		return 0, nil
	}
	records := make([]WorkerRecord, len(workers))
	for i, w := range workers {
		records[i] = recordFrom(w)
		records[i].ID = 0
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// UpdateWorker replaces the fields of an existing worker that are set in w
func UpdateWorker(db *gorm.DB, id uint, w models.Worker) (models.Worker, error) {
	var rec WorkerRecord
	if err := db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Worker{}, ErrNotFound
		}
		return models.Worker{}, err
	}
	if w.Name != "" {
		rec.Name = w.Name
	}
	if w.Qualifications != nil {
		rec.Qualifications = w.Qualifications
	}
	if w.Availability != nil {
		rec.Availability = w.Availability
	}
	if err := db.Save(&rec).Error; err != nil {
		return models.Worker{}, err
	}
	return rec.ToModel(), nil
}

// DeleteWorker removes a worker by id
func DeleteWorker(db *gorm.DB, id uint) error {
	res := db.Delete(&WorkerRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package models

import (
	"usatag/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobTask records every deferred update pushed to a queue backend.
type JobTask struct {
	ID         string          `gorm:"primarykey" json:"id"`
	Name       string          `json:"name"`
	Backend    string          `json:"backend"`
	PurchaseID string          `gorm:"index" json:"purchaseId"`
	Payload    types.JSONB     `gorm:"type:jsonb" json:"payload"`
	Status     types.JobStatus `gorm:"type:text;default:'pending'" json:"status"`
	Error      string          `json:"error,omitempty"`

	types.Timestamps
}

func (j *JobTask) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Status == "" {
		j.Status = types.JOB_PENDING
	}
	return nil
}

// All lists the tables created at boot.
func All() []any {
	return []any{
		&User{},
		&Purchase{},
		&PlateDetailsCode{},
		&JobTask{},
	}
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssessmentResult is one recorded answer event. Rows are append-only:
// created once per submission and never updated or deleted.
type AssessmentResult struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// Seq is the insertion sequence assigned by the database; it breaks ties
	// between rows sharing a CreatedAt.
	Seq            int64     `gorm:"->" json:"-"`
	UserID         string    `gorm:"size:36;not null;index:idx_results_user_subject_created,priority:1" json:"user_id"`
	SubjectID      string    `gorm:"size:36;not null;index:idx_results_user_subject_created,priority:2" json:"subject_id"`
	ModelID        string    `gorm:"size:36;not null" json:"model_id"`
	QuestionID     string    `gorm:"size:36;not null" json:"question_id"`
	SelectedAnswer int       `gorm:"not null" json:"selected_answer"`
	IsCorrect      bool      `gorm:"not null" json:"is_correct"`
	TimeSpent      *int      `json:"time_spent"` // seconds, nil when the client did not report it
	CreatedAt      time.Time `gorm:"not null;index:idx_results_user_subject_created,priority:3" json:"created_at"`
}

// TableName sets the GORM table name.
func (AssessmentResult) TableName() string {
	return "assessment_results"
}

// BeforeCreate assigns a fresh identifier when none was set.
func (r *AssessmentResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// HasRecordedTime reports whether the row contributes to average time spent.
// With countZero=false a recorded 0 is treated like a missing value.
func (r *AssessmentResult) HasRecordedTime(countZero bool) bool {
	if r.TimeSpent == nil {
		return false
	}
	return countZero || *r.TimeSpent != 0
}

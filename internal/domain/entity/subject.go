package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subject is a topic category (anatomy, automobile, physics, ...).
type Subject struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"size:1000;not null;default:''" json:"description"`
	Category    string    `gorm:"size:50;not null;default:''" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName sets the GORM table name.
func (Subject) TableName() string {
	return "subjects"
}

// BeforeCreate assigns a fresh identifier when none was set.
func (s *Subject) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Model3D is a 3D asset tied to one subject and annotated with labels.
type Model3D struct {
	ID          string      `gorm:"primaryKey;size:36" json:"id"`
	Title       string      `gorm:"size:200;not null" json:"title"`
	Description string      `gorm:"size:1000;not null;default:''" json:"description"`
	ModelURL    string      `gorm:"size:1000;not null" json:"model_url"`
	SubjectID   string      `gorm:"size:36;not null;index" json:"subject_id"`
	Labels      StringArray `gorm:"type:jsonb;not null" json:"labels"`
	CreatedAt   time.Time   `json:"created_at"`
}

// TableName sets the GORM table name.
func (Model3D) TableName() string {
	return "models"
}

// BeforeCreate assigns a fresh identifier when none was set.
func (m *Model3D) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Labels == nil {
		m.Labels = StringArray{}
	}
	return nil
}

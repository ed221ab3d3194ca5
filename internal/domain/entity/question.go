package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray is a []string stored as JSONB.
type StringArray []string

// Scan implements sql.Scanner.
func (o *StringArray) Scan(value interface{}) error {
	if value == nil {
		*o = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB value: expected []byte or string")
	}

	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value implements driver.Valuer. Empty and nil arrays are stored as [] rather than null.
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// Question difficulty tags.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// IsValidDifficulty reports whether d is one of easy, medium or hard.
func IsValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question is a multiple-choice item tied to one subject and one 3D model.
// Questions are immutable once created.
type Question struct {
	ID            string      `gorm:"primaryKey;size:36" json:"id"`
	SubjectID     string      `gorm:"size:36;not null;index" json:"subject_id"`
	ModelID       string      `gorm:"size:36;not null;index" json:"model_id"`
	QuestionText  string      `gorm:"size:1000;not null" json:"question_text"`
	Options       StringArray `gorm:"type:jsonb;not null" json:"options"`
	CorrectAnswer int         `gorm:"not null" json:"correct_answer"`
	Difficulty    string      `gorm:"size:10;not null;default:'medium';index" json:"difficulty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// TableName sets the GORM table name.
func (Question) TableName() string {
	return "questions"
}

// BeforeCreate assigns a fresh identifier when none was set.
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// IsCorrect reports whether selectedOption is the stored correct index.
// Out-of-range selections are simply incorrect.
func (q *Question) IsCorrect(selectedOption int) bool {
	return selectedOption == q.CorrectAnswer
}

// IsValidOption reports whether selectedOption addresses one of the options.
func (q *Question) IsValidOption(selectedOption int) bool {
	return selectedOption >= 0 && selectedOption < len(q.Options)
}

// CorrectOptionText returns the literal text of the correct option.
func (q *Question) CorrectOptionText() (string, bool) {
	if !q.IsValidOption(q.CorrectAnswer) {
		return "", false
	}
	return q.Options[q.CorrectAnswer], true
}

// Validate checks the invariants enforced at creation time.
func (q *Question) Validate() error {
	if q.SubjectID == "" || q.ModelID == "" {
		return fmt.Errorf("subject_id and model_id are required")
	}
	if q.QuestionText == "" {
		return fmt.Errorf("question_text is required")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("at least two options are required")
	}
	if !q.IsValidOption(q.CorrectAnswer) {
		return fmt.Errorf("correct_answer %d is out of range for %d options", q.CorrectAnswer, len(q.Options))
	}
	if !IsValidDifficulty(q.Difficulty) {
		return fmt.Errorf("difficulty must be one of easy, medium, hard")
	}
	return nil
}

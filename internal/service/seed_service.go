package service

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/arlearn/assessment-api/internal/domain/entity"
)

// Seed outcome messages.
const (
	SeedAlreadyInitialized = "Data already initialized"
	SeedInitialized        = "Sample data initialized successfully"
)

const gltfSampleBase = "https://raw.githubusercontent.com/KhronosGroup/glTF-Sample-Models/master/2.0/"

// SeedService loads the sample catalog
type SeedService struct {
	db *gorm.DB
}

// NewSeedService creates the seeder
func NewSeedService(db *gorm.DB) *SeedService {
	return &SeedService{db: db}
}

// SeedSampleData inserts the sample subjects, models and questions in one transaction.
// It does nothing when any subject already exists; concurrent callers seed at most once.
// The returned message describes the outcome.
func (s *SeedService) SeedSampleData(ctx context.Context) (string, error) {
	seeded := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serializes concurrent seeders; readers are not blocked.
		if err := tx.Exec("LOCK TABLE subjects IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
			return fmt.Errorf("failed to lock subjects: %w", err)
		}
		var existing int64
		if err := tx.Model(&entity.Subject{}).Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to count subjects: %w", err)
		}
		if existing > 0 {
			return nil
		}

		subjects := sampleSubjects()
		if err := tx.Create(&subjects).Error; err != nil {
			return fmt.Errorf("failed to create subjects: %w", err)
		}

		models := sampleModels(subjects)
		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("failed to create models: %w", err)
		}

		questions := sampleQuestions(subjects, models)
		if err := tx.Create(&questions).Error; err != nil {
			return fmt.Errorf("failed to create questions: %w", err)
		}

		seeded = true
		log.Printf("[SeedService] inserted %d subjects, %d models, %d questions",
			len(subjects), len(models), len(questions))
		return nil
	})
	if err != nil {
		return "", err
	}
	if !seeded {
		return SeedAlreadyInitialized, nil
	}
	return SeedInitialized, nil
}

func sampleSubjects() []entity.Subject {
	return []entity.Subject{
		{Name: "Human Anatomy", Description: "Explore detailed 3D models of human body parts", Category: "anatomy"},
		{Name: "Automobile Engineering", Description: "Learn about car components and systems", Category: "automobile"},
		{Name: "Physics", Description: "Understand physical concepts through 3D visualization", Category: "physics"},
	}
}

func sampleModels(subjects []entity.Subject) []entity.Model3D {
	anatomy, automobile := subjects[0].ID, subjects[1].ID
	return []entity.Model3D{
		{
			Title:       "Human Heart",
			Description: "Detailed 3D model of the human heart showing chambers and valves",
			ModelURL:    gltfSampleBase + "BoxAnimated/glTF/BoxAnimated.gltf",
			SubjectID:   anatomy,
			Labels:      entity.StringArray{"Heart", "Cardiovascular", "Circulatory System"},
		},
		{
			Title:       "Human Brain",
			Description: "Explore the structure of the human brain",
			ModelURL:    gltfSampleBase + "Duck/glTF/Duck.gltf",
			SubjectID:   anatomy,
			Labels:      entity.StringArray{"Brain", "Nervous System", "Neuroscience"},
		},
		{
			Title:       "Car Engine",
			Description: "Internal combustion engine with detailed components",
			ModelURL:    gltfSampleBase + "CesiumMilkTruck/glTF/CesiumMilkTruck.gltf",
			SubjectID:   automobile,
			Labels:      entity.StringArray{"Engine", "Combustion", "Mechanics"},
		},
		{
			Title:       "Gearbox System",
			Description: "Transmission system showing gear mechanics",
			ModelURL:    gltfSampleBase + "BoxTextured/glTF/BoxTextured.gltf",
			SubjectID:   automobile,
			Labels:      entity.StringArray{"Gearbox", "Transmission", "Mechanics"},
		},
	}
}

func sampleQuestions(subjects []entity.Subject, models []entity.Model3D) []entity.Question {
	anatomy, automobile := subjects[0].ID, subjects[1].ID
	return []entity.Question{
		{
			SubjectID:     anatomy,
			ModelID:       models[0].ID,
			QuestionText:  "How many chambers does the human heart have?",
			Options:       entity.StringArray{"2", "3", "4", "5"},
			CorrectAnswer: 2,
			Difficulty:    entity.DifficultyEasy,
		},
		{
			SubjectID:     anatomy,
			ModelID:       models[0].ID,
			QuestionText:  "Which chamber pumps oxygenated blood to the body?",
			Options:       entity.StringArray{"Right Atrium", "Left Atrium", "Right Ventricle", "Left Ventricle"},
			CorrectAnswer: 3,
			Difficulty:    entity.DifficultyMedium,
		},
		{
			SubjectID:     anatomy,
			ModelID:       models[1].ID,
			QuestionText:  "Which part of the brain controls balance and coordination?",
			Options:       entity.StringArray{"Cerebrum", "Cerebellum", "Medulla", "Pons"},
			CorrectAnswer: 1,
			Difficulty:    entity.DifficultyMedium,
		},
		{
			SubjectID:     automobile,
			ModelID:       models[2].ID,
			QuestionText:  "What does a car engine convert fuel into?",
			Options:       entity.StringArray{"Electricity", "Heat only", "Mechanical energy", "Sound"},
			CorrectAnswer: 2,
			Difficulty:    entity.DifficultyEasy,
		},
		{
			SubjectID:     automobile,
			ModelID:       models[3].ID,
			QuestionText:  "What is the primary function of a gearbox?",
			Options:       entity.StringArray{"Cool the engine", "Transfer power and change speed", "Filter oil", "Generate electricity"},
			CorrectAnswer: 1,
			Difficulty:    entity.DifficultyMedium,
		},
	}
}

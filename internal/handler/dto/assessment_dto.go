package dto

// SubmitAssessmentRequest is the body of POST /api/assessments/submit.
// subject_id, model_id and time_spent may also arrive as query parameters.
type SubmitAssessmentRequest struct {
	QuestionID     string `json:"question_id" binding:"required"`
	SelectedAnswer *int   `json:"selected_answer" binding:"required"`
	SubjectID      string `json:"subject_id,omitempty"`
	ModelID        string `json:"model_id,omitempty"`
	TimeSpent      *int   `json:"time_spent,omitempty" binding:"omitempty,min=0"`
}

// CreateSubjectRequest is the body of POST /api/subjects
type CreateSubjectRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
	Category    string `json:"category" binding:"max=50"`
}

// CreateModelRequest is the body of POST /api/models
type CreateModelRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=1000"`
	ModelURL    string   `json:"model_url" binding:"required,url"`
	SubjectID   string   `json:"subject_id" binding:"required"`
	Labels      []string `json:"labels"`
}

// CreateQuestionRequest is the body of POST /api/questions
type CreateQuestionRequest struct {
	SubjectID     string   `json:"subject_id" binding:"required"`
	ModelID       string   `json:"model_id" binding:"required"`
	QuestionText  string   `json:"question_text" binding:"required,max=1000"`
	Options       []string `json:"options" binding:"required,min=2,max=10"`
	CorrectAnswer *int     `json:"correct_answer" binding:"required,min=0"`
	Difficulty    string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

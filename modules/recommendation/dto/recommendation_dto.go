package dto

import "github.com/google/uuid"

const (
	SourceAI       = "ai"
	SourceBaseline = "baseline"
)

type RecommendationItem struct {
	UserID          uuid.UUID `json:"user_id"`
	CardID          uuid.UUID `json:"card_id"`
	FullName        string    `json:"full_name"`
	Company         string    `json:"company"`
	JobTitle        string    `json:"job_title"`
	ProfileImageURL *string   `json:"profile_image_url"`
	Keywords        []string  `json:"keywords"`
	Interests       []string  `json:"interests"`
	Hobbies         []string  `json:"hobbies"`
	Score           float64   `json:"score"`
	Reason          string    `json:"reason,omitempty"`
}

type RecommendationResponse struct {
	EventID uuid.UUID            `json:"event_id"`
	Source  string               `json:"source"`
	Items   []RecommendationItem `json:"items"`
}

// AIProfile is the profile shape exchanged with the AI service.
type AIProfile struct {
	UserID       uuid.UUID `json:"user_id"`
	FullName     string    `json:"full_name"`
	Company      string    `json:"company"`
	JobTitle     string    `json:"job_title"`
	Introduction string    `json:"introduction"`
	MBTI         string    `json:"mbti"`
	Keywords     []string  `json:"keywords"`
	Interests    []string  `json:"interests"`
	Hobbies      []string  `json:"hobbies"`
}

type AIRecommendationRequest struct {
	UserProfile AIProfile   `json:"user_profile" validate:"required"`
	Candidates  []AIProfile `json:"candidates" validate:"required,min=1,max=500"`
}

type AIRecommendation struct {
	UserID uuid.UUID `json:"user_id"`
	Score  float64   `json:"score"`
	Reason string    `json:"reason"`
}

type AIRecommendationResponse struct {
	Recommendations []AIRecommendation `json:"recommendations"`
}

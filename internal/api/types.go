package api

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Application statuses as the backend knows them.
const (
	StatusApplied   = "Applied"
	StatusInterview = "Interview"
	StatusOffer     = "Offer"
	StatusRejected  = "Rejected"
	StatusGhosted   = "Ghosted"
)

var Statuses = []string{StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusGhosted}

type User struct {
	ID     string   `json:"id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	XP     int      `json:"xp"`
	Level  int      `json:"level"`
	Badges []string `json:"badges"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Application struct {
	ID           string   `json:"id"`
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Status       string   `json:"status"`
	Location     string   `json:"location,omitempty"`
	SalaryRange  string   `json:"salary_range,omitempty"`
	URL          string   `json:"url,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	AppliedDate  string   `json:"applied_date,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
	TechStack    []string `json:"tech_stack,omitempty"`
	XPEarned     int      `json:"xp_earned,omitempty"`
	FollowupSent bool     `json:"followup_sent,omitempty"`
}

// ApplicationInput is the create/update payload. Validated locally before
// any request goes out.
type ApplicationInput struct {
	Company     string   `json:"company" validate:"required"`
	Role        string   `json:"role" validate:"required"`
	Status      string   `json:"status" validate:"required,oneof=Applied Interview Offer Rejected Ghosted"`
	Location    string   `json:"location,omitempty"`
	SalaryRange string   `json:"salary_range,omitempty"`
	URL         string   `json:"url,omitempty" validate:"omitempty,url"`
	Notes       string   `json:"notes,omitempty"`
	AppliedDate string   `json:"applied_date,omitempty"`
	TechStack   []string `json:"tech_stack"`
}

var validate = validator.New()

// Validate checks the payload client-side, returning a ValidationError
// with a readable message instead of validator internals.
func (in *ApplicationInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Msg: err.Error()}
	}
	var msgs []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, strings.ToLower(fe.Field())+" is required")
		case "oneof":
			msgs = append(msgs, strings.ToLower(fe.Field())+" must be one of "+fe.Param())
		case "url":
			msgs = append(msgs, strings.ToLower(fe.Field())+" must be a valid URL")
		default:
			msgs = append(msgs, strings.ToLower(fe.Field())+" is invalid")
		}
	}
	return &ValidationError{Msg: strings.Join(msgs, "; ")}
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type WeekCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

type UserStats struct {
	XP     int      `json:"xp"`
	Level  int      `json:"level"`
	Badges []string `json:"badges"`
}

type Analytics struct {
	TotalApplications  int            `json:"total_applications"`
	StatusBreakdown    []StatusCount  `json:"status_breakdown"`
	WeeklyApplications []WeekCount    `json:"weekly_applications"`
	TopCompanies       []CompanyCount `json:"top_companies"`
	ResponseRate       float64        `json:"response_rate"`
	InterviewRate      float64        `json:"interview_rate"`
	OfferRate          float64        `json:"offer_rate"`
	FollowupPending    int            `json:"followup_pending"`
	UserStats          UserStats      `json:"user_stats"`
}

// Chat modes.
const (
	ModeAssistant = "assistant"
	ModeInterview = "interview"
)

// ChatRequest carries the running session id; nil on the first turn so the
// backend mints one.
type ChatRequest struct {
	Message   string  `json:"message"`
	SessionID *string `json:"session_id"`
	Mode      string  `json:"mode"`
	JobID     string  `json:"job_id,omitempty"`
}

type ChatResponse struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
}

// ScrapedJob is the extracted-field shape shared by scrape-job and parse-pdf.
type ScrapedJob struct {
	Company     string   `json:"company"`
	Role        string   `json:"role"`
	Location    string   `json:"location"`
	SalaryRange string   `json:"salary_range"`
	URL         string   `json:"url"`
	Notes       string   `json:"notes"`
	TechStack   []string `json:"tech_stack"`
}

type FollowupDraft struct {
	AppID      string `json:"app_id"`
	EmailDraft string `json:"email_draft"`
	Company    string `json:"company"`
	Role       string `json:"role"`
}

type ResumeAnalysis struct {
	ATSScore          int      `json:"ats_score"`
	ScoreLabel        string   `json:"score_label"`
	ScoreColor        string   `json:"score_color"`
	MatchingKeywords  []string `json:"matching_keywords"`
	MissingKeywords   []string `json:"missing_keywords"`
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"improvements"`
	TailoredSummary   string   `json:"tailored_summary"`
	OverallAssessment string   `json:"overall_assessment"`
}

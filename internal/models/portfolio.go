package models

import "time"

// Project statuses.
const (
	ProjectStatusDraft     = "draft"
	ProjectStatusPublished = "published"
)

// Project is a portfolio project entry.
type Project struct {
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	Description  string    `json:"description"`
	TechStacks   string    `json:"tech_stacks"` // comma-separated tech stack names
	RepoURL      string    `json:"repo_url,omitempty"`
	DemoURL      string    `json:"demo_url,omitempty"`
	Status       string    `json:"status"`
	DisplayOrder int       `json:"display_order"`
	Featured     bool      `json:"featured"`
}

// Academic is an academic history entry.
type Academic struct {
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"` // nil while in progress
	ID          string     `json:"id"`
	Institution string     `json:"institution"`
	Degree      string     `json:"degree"`
	Field       string     `json:"field"`
	Notes       string     `json:"notes,omitempty"`
	GPA         float64    `json:"gpa,omitempty"`
}

// TechStack is a technology the portfolio owner works with.
type TechStack struct {
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"` // language, framework, tool, ...
	IconURL      string    `json:"icon_url,omitempty"`
	Proficiency  int       `json:"proficiency"` // 1..5
	DisplayOrder int       `json:"display_order"`
}

// Testimonial is a quote shown on the public site once approved.
type Testimonial struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Position  string    `json:"position,omitempty"`
	Company   string    `json:"company,omitempty"`
	Quote     string    `json:"quote"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Approved  bool      `json:"approved"`
}

// Media is an uploaded file stored on local disk.
type Media struct {
	CreatedAt    time.Time `json:"created_at"`
	ID           string    `json:"id"`
	FileName     string    `json:"file_name"` // name on disk
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
}

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	Spam      bool      `json:"spam"` // honeypot tripped
}

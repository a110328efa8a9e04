package competition

import (
	"time"

	"github.com/DhavalSuthar-24/clubportal/internal/models"
	"github.com/google/uuid"
)

const (
	StatusDraft    = "draft"
	StatusOpen     = "open"
	StatusClosed   = "closed"
	StatusFinished = "finished"
)

// VisibleStatuses are the statuses members may see. Drafts never leave the directiva.
var VisibleStatuses = []string{StatusOpen, StatusClosed}

func IsVisible(status string) bool {
	return status == StatusOpen || status == StatusClosed
}

// Competition is organised by a club, referenced by name only.
type Competition struct {
	models.BaseModel
	Name        string      `json:"name" gorm:"not null"`
	Organizer   string      `json:"organizer"`
	StartDate   models.Date `json:"start_date" gorm:"type:date" swaggertype:"string"`
	EndDate     models.Date `json:"end_date" gorm:"type:date" swaggertype:"string"`
	Status      string      `json:"status" gorm:"default:'draft'"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Stages      []Stage     `json:"stages,omitempty" gorm:"foreignKey:CompetitionID"`
}

func (Competition) TableName() string { return "competitions" }

type Stage struct {
	models.BaseModel
	CompetitionID uuid.UUID   `json:"competition_id" gorm:"type:uuid;index"`
	Name          string      `json:"name"`
	Date          models.Date `json:"date" gorm:"type:date" swaggertype:"string"`
	Events        []Event     `json:"events,omitempty" gorm:"foreignKey:StageID"`
}

func (Stage) TableName() string { return "competition_stages" }

type Event struct {
	models.BaseModel
	StageID  uuid.UUID `json:"stage_id" gorm:"type:uuid;index"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

func (Event) TableName() string { return "competition_events" }

// Enrollment registers a user to one event. Duplicates are not prevented.
type Enrollment struct {
	models.BaseModel
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	EventID uuid.UUID `json:"event_id" gorm:"type:uuid;index"`
}

func (Enrollment) TableName() string { return "competition_enrollments" }

// ListItem is a competition row with the caller's enrollment state.
type ListItem struct {
	Competition
	Inscrito bool `json:"inscrito"`
}

type CalendarEntry struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Start  string    `json:"start"`
	End    string    `json:"end,omitempty"`
	Status string    `json:"status"`
}

func toCalendarEntry(c Competition) CalendarEntry {
	return CalendarEntry{
		ID:     c.ID,
		Title:  c.Name,
		Start:  c.StartDate.String(),
		End:    c.EndDate.String(),
		Status: c.Status,
	}
}

// CompetitionRequest is the full editable state of a competition; updates overwrite every field.
type CompetitionRequest struct {
	Name        string      `json:"name" binding:"required,max=200" example:"Copa Primavera"`
	Organizer   string      `json:"organizer" binding:"omitempty,max=200" example:"Club Natación Ñuñoa"`
	StartDate   models.Date `json:"start_date" swaggertype:"string" example:"2026-11-07"`
	EndDate     models.Date `json:"end_date" swaggertype:"string" example:"2026-11-08"`
	Status      string      `json:"status" binding:"required,oneof=draft open closed finished" example:"open"`
	Location    string      `json:"location" binding:"omitempty,max=200"`
	Description string      `json:"description" binding:"omitempty,max=5000"`
}

type StageRequest struct {
	Name string      `json:"name" binding:"required,max=200" example:"Jornada 1"`
	Date models.Date `json:"date" swaggertype:"string" example:"2026-11-07"`
}

type EventRequest struct {
	Name     string `json:"name" binding:"required,max=200" example:"50m libre"`
	Category string `json:"category" binding:"omitempty,max=100" example:"Master B"`
}

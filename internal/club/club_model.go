package club

import "github.com/DhavalSuthar-24/clubportal/internal/models"

// Club is a reference entry for organizer dropdowns. Competitions keep the
// name as text, so removing a club leaves them untouched.
type Club struct {
	models.BaseModel
	Name string `json:"name" gorm:"not null"`
}

func (Club) TableName() string { return "clubs" }

type CreateClubRequest struct {
	Name string `json:"name" binding:"required,max=200" example:"Club Natación Ñuñoa"`
}

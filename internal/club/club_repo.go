package club

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrClubNotFound = errors.New("club not found")

type ClubRepository interface {
	ListClubs(ctx context.Context) ([]Club, error)
	CreateClub(ctx context.Context, c *Club) error
	DeleteClub(ctx context.Context, id uuid.UUID) error
}

type clubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) ListClubs(ctx context.Context) ([]Club, error) {
	var clubs []Club
	err := r.db.WithContext(ctx).Order("name ASC").Find(&clubs).Error
	return clubs, err
}

func (r *clubRepository) CreateClub(ctx context.Context, c *Club) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// DeleteClub removes only the clubs row.
func (r *clubRepository) DeleteClub(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Club{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrClubNotFound
	}
	return nil
}

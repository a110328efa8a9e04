package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	CreateProfile(ctx context.Context, p *Profile) error
	GetProfileByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetRole(ctx context.Context, id uuid.UUID) (string, error)
	UpdateProfile(ctx context.Context, p *Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// CreateProfile inserts the profile unless a row with the same id exists, so
// registration and lazy creation may both run for one user.
func (r *profileRepository) CreateProfile(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(p).Error
}

func (r *profileRepository) GetProfileByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetRole reads only the rol column; the role guard calls it on every request.
func (r *profileRepository) GetRole(ctx context.Context, id uuid.UUID) (string, error) {
	var roles []string
	err := r.db.WithContext(ctx).Model(&Profile{}).
		Where("id = ?", id).
		Limit(1).
		Pluck("rol", &roles).Error
	if err != nil {
		return "", fmt.Errorf("failed to get profile role: %w", err)
	}
	if len(roles) == 0 {
		return "", ErrProfileNotFound
	}
	return roles[0], nil
}

func (r *profileRepository) UpdateProfile(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Model(&Profile{}).
		Where("id = ?", p.ID).
		Select("nombre_completo", "rut", "telefono", "fecha_nacimiento", "perfil_completo", "updated_at").
		Updates(p).Error
}

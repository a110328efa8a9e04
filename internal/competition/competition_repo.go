package competition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCompetitionNotFound = errors.New("competition not found")
	ErrStageNotFound       = errors.New("stage not found")
	ErrEventNotFound       = errors.New("event not found")
)

type CompetitionRepository interface {
	ListVisible(ctx context.Context) ([]Competition, error)
	ListAll(ctx context.Context) ([]Competition, error)
	GetCompetitionByID(ctx context.Context, id uuid.UUID) (*Competition, error)
	CreateCompetition(ctx context.Context, c *Competition) error
	UpdateCompetition(ctx context.Context, c *Competition) error
	DeleteCompetition(ctx context.Context, id uuid.UUID) error

	CreateStage(ctx context.Context, s *Stage) error
	GetStageByID(ctx context.Context, id uuid.UUID) (*Stage, error)
	CreateEvent(ctx context.Context, e *Event) error
	GetEventCompetition(ctx context.Context, eventID uuid.UUID) (*Competition, error)

	CreateEnrollment(ctx context.Context, e *Enrollment) error
	EnrolledCompetitionIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type competitionRepository struct {
	db *gorm.DB
}

func NewCompetitionRepository(db *gorm.DB) CompetitionRepository {
	return &competitionRepository{db: db}
}

func (r *competitionRepository) ListVisible(ctx context.Context) ([]Competition, error) {
	var out []Competition
	err := r.db.WithContext(ctx).
		Where("status IN ?", VisibleStatuses).
		Order("start_date DESC").
		Find(&out).Error
	return out, err
}

func (r *competitionRepository) ListAll(ctx context.Context) ([]Competition, error) {
	var out []Competition
	err := r.db.WithContext(ctx).Order("start_date DESC").Find(&out).Error
	return out, err
}

func (r *competitionRepository) GetCompetitionByID(ctx context.Context, id uuid.UUID) (*Competition, error) {
	var c Competition
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC, name ASC") }).
		Preload("Stages.Events", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *competitionRepository) CreateCompetition(ctx context.Context, c *Competition) error {
	return r.db.WithContext(ctx).Omit("Stages").Create(c).Error
}

// UpdateCompetition writes every column; concurrent edits are last-write-wins.
func (r *competitionRepository) UpdateCompetition(ctx context.Context, c *Competition) error {
	res := r.db.WithContext(ctx).Model(&Competition{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":        c.Name,
			"organizer":   c.Organizer,
			"start_date":  c.StartDate,
			"end_date":    c.EndDate,
			"status":      c.Status,
			"location":    c.Location,
			"description": c.Description,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCompetitionNotFound
	}
	return nil
}

func (r *competitionRepository) DeleteCompetition(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Competition{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCompetitionNotFound
	}
	return nil
}

func (r *competitionRepository) CreateStage(ctx context.Context, s *Stage) error {
	return r.db.WithContext(ctx).Omit("Events").Create(s).Error
}

func (r *competitionRepository) GetStageByID(ctx context.Context, id uuid.UUID) (*Stage, error) {
	var s Stage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *competitionRepository) CreateEvent(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// GetEventCompetition returns the competition an event belongs to, through its stage.
func (r *competitionRepository) GetEventCompetition(ctx context.Context, eventID uuid.UUID) (*Competition, error) {
	var c Competition
	err := r.db.WithContext(ctx).
		Joins("JOIN competition_stages AS cs ON cs.competition_id = competitions.id").
		Joins("JOIN competition_events AS ev ON ev.stage_id = cs.id").
		Where("ev.id = ?", eventID).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *competitionRepository) CreateEnrollment(ctx context.Context, e *Enrollment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// EnrolledCompetitionIDs walks enrollment -> event -> stage in one query and
// returns each competition the user reaches at most once.
func (r *competitionRepository) EnrolledCompetitionIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := enrolledCompetitionIDs(r.db.WithContext(ctx), userID, &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to load enrollments: %w", err)
	}
	return ids, nil
}

func enrolledCompetitionIDs(tx *gorm.DB, userID uuid.UUID, ids *[]uuid.UUID) *gorm.DB {
	return tx.Table("competition_enrollments AS ce").
		Joins("JOIN competition_events AS ev ON ev.id = ce.event_id").
		Joins("JOIN competition_stages AS cs ON cs.id = ev.stage_id").
		Where("ce.user_id = ?", userID).
		Distinct("cs.competition_id").
		Pluck("cs.competition_id", ids)
}

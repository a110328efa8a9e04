package competition

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
)

// fakeRepo keeps rows in memory and counts enrollment lookups.
type fakeRepo struct {
	competitions []Competition
	stages       []Stage
	events       []Event
	enrollments  []Enrollment

	enrollmentQueries int
	listErr           error
	enrollErr         error
}

func (r *fakeRepo) ListVisible(context.Context) ([]Competition, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []Competition
	for _, c := range r.competitions {
		if IsVisible(c.Status) {
			out = append(out, c)
		}
	}
	sortByStartDesc(out)
	return out, nil
}

func (r *fakeRepo) ListAll(context.Context) ([]Competition, error) {
	out := append([]Competition(nil), r.competitions...)
	sortByStartDesc(out)
	return out, nil
}

func sortByStartDesc(cs []Competition) {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].StartDate.After(cs[j].StartDate.Time) })
}

func (r *fakeRepo) GetCompetitionByID(_ context.Context, id uuid.UUID) (*Competition, error) {
	for _, c := range r.competitions {
		if c.ID == id {
			cp := c
			for _, s := range r.stages {
				if s.CompetitionID == id {
					for _, e := range r.events {
						if e.StageID == s.ID {
							s.Events = append(s.Events, e)
						}
					}
					cp.Stages = append(cp.Stages, s)
				}
			}
			return &cp, nil
		}
	}
	return nil, ErrCompetitionNotFound
}

func (r *fakeRepo) CreateCompetition(_ context.Context, c *Competition) error {
	c.ID = uuid.New()
	r.competitions = append(r.competitions, *c)
	return nil
}

func (r *fakeRepo) UpdateCompetition(_ context.Context, c *Competition) error {
	for i := range r.competitions {
		if r.competitions[i].ID == c.ID {
			r.competitions[i] = *c
			return nil
		}
	}
	return ErrCompetitionNotFound
}

func (r *fakeRepo) DeleteCompetition(_ context.Context, id uuid.UUID) error {
	for i := range r.competitions {
		if r.competitions[i].ID == id {
			r.competitions = append(r.competitions[:i], r.competitions[i+1:]...)
			return nil
		}
	}
	return ErrCompetitionNotFound
}

func (r *fakeRepo) CreateStage(_ context.Context, s *Stage) error {
	s.ID = uuid.New()
	r.stages = append(r.stages, *s)
	return nil
}

func (r *fakeRepo) GetStageByID(_ context.Context, id uuid.UUID) (*Stage, error) {
	for _, s := range r.stages {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, ErrStageNotFound
}

func (r *fakeRepo) CreateEvent(_ context.Context, e *Event) error {
	e.ID = uuid.New()
	r.events = append(r.events, *e)
	return nil
}

func (r *fakeRepo) eventByID(id uuid.UUID) (*Event, error) {
	for _, e := range r.events {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, ErrEventNotFound
}

func (r *fakeRepo) GetEventCompetition(ctx context.Context, eventID uuid.UUID) (*Competition, error) {
	ev, err := r.eventByID(eventID)
	if err != nil {
		return nil, err
	}
	st, err := r.GetStageByID(ctx, ev.StageID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	for _, c := range r.competitions {
		if c.ID == st.CompetitionID {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrEventNotFound
}

func (r *fakeRepo) CreateEnrollment(_ context.Context, e *Enrollment) error {
	e.ID = uuid.New()
	r.enrollments = append(r.enrollments, *e)
	return nil
}

// EnrolledCompetitionIDs mirrors the joined query: distinct competitions reached
// through event and stage.
func (r *fakeRepo) EnrolledCompetitionIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.enrollmentQueries++
	if r.enrollErr != nil {
		return nil, r.enrollErr
	}
	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID
	for _, en := range r.enrollments {
		if en.UserID != userID {
			continue
		}
		ev, err := r.eventByID(en.EventID)
		if err != nil {
			continue
		}
		st, err := r.GetStageByID(context.Background(), ev.StageID)
		if err != nil {
			continue
		}
		if !seen[st.CompetitionID] {
			seen[st.CompetitionID] = true
			ids = append(ids, st.CompetitionID)
		}
	}
	return ids, nil
}

var errBackend = errors.New("permission denied for table competitions")

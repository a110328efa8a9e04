package competition

import (
	"context"

	"github.com/google/uuid"
)

// EnrollmentStatus is the set of competitions a user is enrolled in.
type EnrollmentStatus map[uuid.UUID]struct{}

func (s EnrollmentStatus) Has(competitionID uuid.UUID) bool {
	_, ok := s[competitionID]
	return ok
}

type enrollmentSource interface {
	EnrolledCompetitionIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// ResolveEnrollmentStatus returns the competitions userID is enrolled in.
// A nil user has no enrollments and triggers no query.
func ResolveEnrollmentStatus(ctx context.Context, src enrollmentSource, userID *uuid.UUID) (EnrollmentStatus, error) {
	status := EnrollmentStatus{}
	if userID == nil {
		return status, nil
	}
	ids, err := src.EnrolledCompetitionIDs(ctx, *userID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		status[id] = struct{}{}
	}
	return status, nil
}

// withEnrollment marks each competition with the caller's enrollment state.
func withEnrollment(comps []Competition, status EnrollmentStatus) []ListItem {
	out := make([]ListItem, 0, len(comps))
	for _, c := range comps {
		out = append(out, ListItem{Competition: c, Inscrito: status.Has(c.ID)})
	}
	return out
}

package competition

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB renders SQL for the postgres dialect without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=club dbname=club sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestEnrolledCompetitionIDs_SingleDistinctJoin(t *testing.T) {
	db := dryRunDB(t)
	userID := uuid.New()

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var ids []uuid.UUID
		return enrolledCompetitionIDs(tx, userID, &ids)
	})

	assert.Contains(t, sql, "SELECT DISTINCT cs.competition_id FROM competition_enrollments AS ce")
	assert.Contains(t, sql, "JOIN competition_events AS ev ON ev.id = ce.event_id")
	assert.Contains(t, sql, "JOIN competition_stages AS cs ON cs.id = ev.stage_id")
	assert.Contains(t, sql, "ce.user_id = '"+userID.String()+"'")
}

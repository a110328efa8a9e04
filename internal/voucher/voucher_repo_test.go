package voucher

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

func TestMarkReviewed_OnlyMatchesPendingVouchers(t *testing.T) {
	db := dryRunDB(t)
	v := &Voucher{Estado: EstadoAprobado, Comentario: "ok"}
	v.ID = uuid.New()

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return markReviewed(tx, v)
	})

	assert.Contains(t, sql, `UPDATE "vouchers" SET`)
	assert.Contains(t, sql, "id = '"+v.ID.String()+"'")
	assert.Contains(t, sql, "estado = 'pendiente'")
	assert.Contains(t, sql, `"estado"='aprobado'`)
}

package voucher

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrVoucherNotFound = errors.New("voucher not found")
	ErrAlreadyReviewed = errors.New("voucher already reviewed")
)

type VoucherRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Voucher, error)
	List(ctx context.Context, estado string) ([]Voucher, error)
	CreateVoucher(ctx context.Context, v *Voucher) error
	Review(ctx context.Context, v *Voucher) error
}

type voucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) VoucherRepository {
	return &voucherRepository{db: db}
}

func (r *voucherRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Voucher, error) {
	var out []Voucher
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

// List returns every voucher, optionally only those in estado.
func (r *voucherRepository) List(ctx context.Context, estado string) ([]Voucher, error) {
	var out []Voucher
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if estado != "" {
		query = query.Where("estado = ?", estado)
	}
	err := query.Find(&out).Error
	return out, err
}

func (r *voucherRepository) CreateVoucher(ctx context.Context, v *Voucher) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// Review records the decision on a pending voucher. The update only matches
// while the voucher is still pendiente, so concurrent reviews cannot overwrite
// each other.
func (r *voucherRepository) Review(ctx context.Context, v *Voucher) error {
	db := r.db.WithContext(ctx)
	res := markReviewed(db, v)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var current Voucher
	if err := db.Select("id").Where("id = ?", v.ID).First(&current).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVoucherNotFound
		}
		return err
	}
	return ErrAlreadyReviewed
}

func markReviewed(tx *gorm.DB, v *Voucher) *gorm.DB {
	return tx.Model(&Voucher{}).
		Where("id = ? AND estado = ?", v.ID, EstadoPendiente).
		Updates(map[string]interface{}{
			"estado":      v.Estado,
			"comentario":  v.Comentario,
			"reviewed_by": v.ReviewedBy,
			"reviewed_at": v.ReviewedAt,
		})
}

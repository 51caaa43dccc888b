package repositories

import (
	"context"

	"github.com/anonto42/lms/backend/internal/models"
	"gorm.io/gorm"
)

// DonationRepository defines the interface for donation operations
type DonationRepository interface {
	CreateDonation(ctx context.Context, donation *models.Donation) error
	GetByOrderID(ctx context.Context, orderID string) (*models.Donation, error)
	MarkCompleted(ctx context.Context, orderID, paymentID string) error
	CompletedTotals(ctx context.Context) (*models.DonationTotals, error)
}

// PostgresDonationRepository implements DonationRepository for PostgreSQL
type PostgresDonationRepository struct {
	db *gorm.DB
}

// NewPostgresDonationRepository creates a new PostgresDonationRepository
func NewPostgresDonationRepository(db *gorm.DB) *PostgresDonationRepository {
	return &PostgresDonationRepository{db: db}
}

// CreateDonation stores a pending donation
func (r *PostgresDonationRepository) CreateDonation(ctx context.Context, donation *models.Donation) error {
	if donation.Status == "" {
		donation.Status = models.DonationPending
	}
	return translateGormError(r.db.WithContext(ctx).Create(donation).Error)
}

// GetByOrderID retrieves a donation by its payment order ID
func (r *PostgresDonationRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Donation, error) {
	var donation models.Donation
	if err := r.db.WithContext(ctx).Where("razorpay_order_id = ?", orderID).First(&donation).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &donation, nil
}

// MarkCompleted records the payment ID and flips the donation to completed
func (r *PostgresDonationRepository) MarkCompleted(ctx context.Context, orderID, paymentID string) error {
	res := r.db.WithContext(ctx).Model(&models.Donation{}).
		Where("razorpay_order_id = ?", orderID).
		Updates(map[string]interface{}{
			"razorpay_payment_id": paymentID,
			"status":              models.DonationCompleted,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CompletedTotals sums the amounts of completed donations
func (r *PostgresDonationRepository) CompletedTotals(ctx context.Context) (*models.DonationTotals, error) {
	var totals models.DonationTotals
	err := r.db.WithContext(ctx).Model(&models.Donation{}).
		Select("COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS total_count").
		Where("status = ?", models.DonationCompleted).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

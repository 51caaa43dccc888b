package repositories

import (
	"context"

	"github.com/anonto42/lms/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	UpsertByFirebaseUID(ctx context.Context, user *models.User) error
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, firebaseUID, token string) error
	GetAdmins(ctx context.Context) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// UpsertByFirebaseUID inserts the user or refreshes email and name of an
// existing row. Empty claims keep the stored values, and the stored role is
// never overwritten by a login.
func (r *PostgresUserRepository) UpsertByFirebaseUID(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "firebase_uid"}},
		DoUpdates: clause.AssignmentColumns(refreshColumns(user)),
	}).Create(user).Error
	if err != nil {
		return translateGormError(err)
	}

	stored, err := r.GetUserByFirebaseUID(ctx, user.FirebaseUID)
	if err != nil {
		return err
	}
	*user = *stored
	return nil
}

func refreshColumns(user *models.User) []string {
	columns := []string{"updated_at"}
	if user.Email != "" {
		columns = append(columns, "email")
	}
	if user.Name != "" {
		columns = append(columns, "name")
	}
	return columns
}

// GetUserByFirebaseUID retrieves a user by Firebase UID from PostgreSQL
func (r *PostgresUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

// UpdateFCMToken stores the device token used for push notifications
func (r *PostgresUserRepository) UpdateFCMToken(ctx context.Context, firebaseUID, token string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("firebase_uid = ?", firebaseUID).
		Update("fcm_token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetAdmins retrieves every user holding the admin role
func (r *PostgresUserRepository) GetAdmins(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Where("role = ?", models.RoleAdmin).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

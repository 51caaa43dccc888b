package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/lms/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CourseRepository defines the interface for course operations
type CourseRepository interface {
	CreateCourse(ctx context.Context, course *models.Course) error
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
	GetAllCourses(ctx context.Context) ([]models.Course, error)
}

// MongoCourseRepository implements CourseRepository for MongoDB
type MongoCourseRepository struct {
	collection *mongo.Collection
}

// NewMongoCourseRepository creates a new MongoCourseRepository
func NewMongoCourseRepository(db *mongo.Database) *MongoCourseRepository {
	return &MongoCourseRepository{collection: db.Collection(coursesCollection)}
}

// CreateCourse creates a new course
func (r *MongoCourseRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	course.ID = primitive.NewObjectID()
	course.CreatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, course)
	return err
}

// GetCourseByID retrieves a course by ID
func (r *MongoCourseRepository) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var course models.Course
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&course); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

// GetAllCourses retrieves every course, newest first
func (r *MongoCourseRepository) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	courses := []models.Course{}
	if err = cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

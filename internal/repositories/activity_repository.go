package repositories

import (
	"context"
	"time"

	"github.com/anonto42/lms/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository defines the interface for the append-only activity log
type ActivityRepository interface {
	CreateActivity(ctx context.Context, event *models.ActivityEvent) error
	ListActivityTimestamps(ctx context.Context, userID string, from, to time.Time) ([]time.Time, error)
	DailyActiveUsers(ctx context.Context, from time.Time) ([]models.DailyActiveUsers, error)
	TopTopics(ctx context.Context, limit int64) ([]models.TopicStat, error)
}

// MongoActivityRepository implements ActivityRepository for MongoDB
type MongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new MongoActivityRepository
func NewMongoActivityRepository(db *mongo.Database) *MongoActivityRepository {
	return &MongoActivityRepository{collection: db.Collection(activityCollection)}
}

// CreateActivity appends an event to the log
func (r *MongoActivityRepository) CreateActivity(ctx context.Context, event *models.ActivityEvent) error {
	event.ID = primitive.NewObjectID()
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// ListActivityTimestamps returns the timestamps of a user's events in [from, to), oldest first
func (r *MongoActivityRepository) ListActivityTimestamps(ctx context.Context, userID string, from, to time.Time) ([]time.Time, error) {
	filter := bson.M{
		"user_id":   userID,
		"timestamp": bson.M{"$gte": from, "$lt": to},
	}
	findOptions := options.Find().
		SetProjection(bson.M{"timestamp": 1, "_id": 0}).
		SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Timestamp time.Time `bson:"timestamp"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	timestamps := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		timestamps = append(timestamps, row.Timestamp)
	}
	return timestamps, nil
}

// DailyActiveUsers counts distinct users per UTC day since from, oldest day first
func (r *MongoActivityRepository) DailyActiveUsers(ctx context.Context, from time.Time) ([]models.DailyActiveUsers, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"timestamp": bson.M{"$gte": from}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m-%d",
				"date":     "$timestamp",
				"timezone": "UTC",
			}},
			"users": bson.M{"$addToSet": "$user_id"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":   0,
			"date":  "$_id",
			"count": bson.M{"$size": "$users"},
		}}},
		{{Key: "$sort", Value: bson.M{"date": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	days := []models.DailyActiveUsers{}
	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// TopTopics ranks courses by the number of study actions logged against them
func (r *MongoActivityRepository) TopTopics(ctx context.Context, limit int64) ([]models.TopicStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"topic_id":    bson.M{"$ne": nil},
			"action_type": bson.M{"$in": bson.A{models.ActionVideoView, models.ActionNotesRead}},
		}}},
		{{Key: "$group", Value: bson.M{"_id": "$topic_id", "studyCount": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "studyCount", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         coursesCollection,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "course",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$course", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			"_id":        0,
			"topicId":    "$_id",
			"title":      bson.M{"$ifNull": bson.A{"$course.title", ""}},
			"studyCount": 1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	topics := []models.TopicStat{}
	if err = cursor.All(ctx, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/lms/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HighlightRule decides whether a post with the given upvotes is highlighted
type HighlightRule func(upvotes int) bool

// VoteRepository defines the interface for vote data operations
type VoteRepository interface {
	GetVote(ctx context.Context, userID, postID string) (*models.Vote, error)
	ApplyVote(ctx context.Context, change models.VoteChange, rule HighlightRule) (*models.VoteOutcome, error)
}

// MongoVoteRepository implements VoteRepository for MongoDB. Vote rows and post
// counters are written in one multi-document transaction, so the deployment
// must be a replica set.
type MongoVoteRepository struct {
	client *mongo.Client
	votes  *mongo.Collection
	posts  *mongo.Collection
}

// NewMongoVoteRepository creates a new MongoVoteRepository
func NewMongoVoteRepository(client *mongo.Client, db *mongo.Database) *MongoVoteRepository {
	return &MongoVoteRepository{
		client: client,
		votes:  db.Collection(votesCollection),
		posts:  db.Collection(postsCollection),
	}
}

// GetVote returns the user's current vote on a post, or ErrNotFound
func (r *MongoVoteRepository) GetVote(ctx context.Context, userID, postID string) (*models.Vote, error) {
	postObjID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrNotFound
	}

	var vote models.Vote
	err = r.votes.FindOne(ctx, bson.M{"user_id": userID, "post_id": postObjID}).Decode(&vote)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vote, nil
}

// ApplyVote records the vote transition and moves the post counters in a
// single transaction. A first vote racing another first vote from the same
// user fails with ErrDuplicate; a flip whose prior vote no longer matches
// change.From fails with ErrVoteConflict.
func (r *MongoVoteRepository) ApplyVote(ctx context.Context, change models.VoteChange, rule HighlightRule) (*models.VoteOutcome, error) {
	postObjID, err := primitive.ObjectIDFromHex(change.PostID)
	if err != nil {
		return nil, ErrNotFound
	}

	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := r.writeVote(sc, postObjID, change); err != nil {
			return nil, err
		}
		return r.moveCounters(sc, postObjID, change, rule)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.VoteOutcome), nil
}

func (r *MongoVoteRepository) writeVote(ctx context.Context, postID primitive.ObjectID, change models.VoteChange) error {
	now := time.Now().UTC()

	if change.From == "" {
		vote := models.Vote{
			ID:        primitive.NewObjectID(),
			UserID:    change.UserID,
			PostID:    postID,
			VoteType:  change.To,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := r.votes.InsertOne(ctx, vote); err != nil {
			if isDuplicate(err) {
				return ErrDuplicate
			}
			return err
		}
		return nil
	}

	res, err := r.votes.UpdateOne(ctx,
		bson.M{"user_id": change.UserID, "post_id": postID, "vote_type": change.From},
		bson.M{"$set": bson.M{"vote_type": change.To, "updated_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrVoteConflict
	}
	return nil
}

func (r *MongoVoteRepository) moveCounters(ctx context.Context, postID primitive.ObjectID, change models.VoteChange, rule HighlightRule) (*models.VoteOutcome, error) {
	inc := bson.M{change.To.CounterField(): 1}
	if change.From != "" {
		inc[change.From.CounterField()] = -1
	}

	var post models.Post
	err := r.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{"$inc": inc, "$set": bson.M{"updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	outcome := &models.VoteOutcome{Post: &post}
	should := rule(post.Upvotes)
	if should == post.Highlighted {
		return outcome, nil
	}

	_, err = r.posts.UpdateOne(ctx,
		bson.M{"_id": postID, "highlighted": post.Highlighted},
		bson.M{"$set": bson.M{"highlighted": should}},
	)
	if err != nil {
		return nil, err
	}
	outcome.HighlightRaised = should && !post.Highlighted
	post.Highlighted = should
	return outcome, nil
}

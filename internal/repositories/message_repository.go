package repositories

import (
	"context"
	"time"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for chat message data operations
type MessageRepository interface {
	InsertMessage(ctx context.Context, message *models.ChatMessage) error
	GetByThread(ctx context.Context, threadID string) ([]models.ChatMessage, error)
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("chat_messages")}
}

// InsertMessage stores a new message, assigning the server-side id and
// timestamp when the caller has not set them.
func (r *MongoMessageRepository) InsertMessage(ctx context.Context, message *models.ChatMessage) error {
	if message.ID.IsZero() {
		message.ID = primitive.NewObjectID()
	}
	if message.SentAt.IsZero() {
		message.SentAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

// GetByThread retrieves all messages of a thread ordered by send time ascending
func (r *MongoMessageRepository) GetByThread(ctx context.Context, threadID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	findOptions := options.Find().SetSort(bson.D{{Key: "sent_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"thread_id": threadID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

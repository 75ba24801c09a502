package services

import (
	"context"
	"time"

	"github.com/cumarfaruur/safari-pos-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TransactionService persists till-closing transactions.
type TransactionService struct {
	collection *mongo.Collection
}

func NewTransactionService(db *mongo.Database) *TransactionService {
	return &TransactionService{collection: db.Collection("transaction")}
}

func (s *TransactionService) Create(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	transaction.ID = primitive.NewObjectID()
	now := time.Now()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *TransactionService) List(ctx context.Context) ([]models.Transaction, error) {
	cur, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var transactions []models.Transaction
	if err := cur.All(ctx, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *TransactionService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// UpdateByID applies only the given fields and refreshes updatedAt,
// returning the updated document.
func (s *TransactionService) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Transaction, error) {
	fields["updatedAt"] = time.Now()

	var transaction models.Transaction
	err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&transaction)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (s *TransactionService) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

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

// AccountService persists staff accounts. Waiters and back-office users use
// two instances over separate collections.
type AccountService struct {
	collection *mongo.Collection
}

func NewAccountService(db *mongo.Database, collection string) *AccountService {
	return &AccountService{collection: db.Collection(collection)}
}

// EnsureIndexes creates the unique email index. Called once at startup.
func (s *AccountService) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *AccountService) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	account.ID = primitive.NewObjectID()
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// FindByEmail returns the account with the given email, password digest
// included. Missing accounts surface as mongo.ErrNoDocuments.
func (s *AccountService) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	projection := bson.D{
		{Key: "password", Value: 0},
	}
	cur, err := s.collection.Find(ctx, bson.D{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var accounts []models.Account
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *AccountService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	var account models.Account
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&account); err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateByID applies only the given fields and refreshes updatedAt,
// returning the updated document.
func (s *AccountService) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Account, error) {
	fields["updatedAt"] = time.Now()

	var account models.Account
	err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountService) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

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

// ReceptionService persists front-desk reception records. Only creation is
// routed over HTTP today; the remaining operations back the same store
// contract as the other entities.
type ReceptionService struct {
	collection *mongo.Collection
}

func NewReceptionService(db *mongo.Database) *ReceptionService {
	return &ReceptionService{collection: db.Collection("reception")}
}

func (s *ReceptionService) Create(ctx context.Context, reception *models.Reception) (*models.Reception, error) {
	reception.ID = primitive.NewObjectID()
	now := time.Now()
	reception.CreatedAt = now
	reception.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, reception); err != nil {
		return nil, err
	}
	return reception, nil
}

func (s *ReceptionService) List(ctx context.Context) ([]models.Reception, error) {
	cur, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var receptions []models.Reception
	if err := cur.All(ctx, &receptions); err != nil {
		return nil, err
	}
	return receptions, nil
}

func (s *ReceptionService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Reception, error) {
	var reception models.Reception
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reception); err != nil {
		return nil, err
	}
	return &reception, nil
}

func (s *ReceptionService) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Reception, error) {
	fields["updatedAt"] = time.Now()

	var reception models.Reception
	err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&reception)
	if err != nil {
		return nil, err
	}
	return &reception, nil
}

func (s *ReceptionService) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

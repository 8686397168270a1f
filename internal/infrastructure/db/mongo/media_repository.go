package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marketkit/marketplace-system/internal/core/domain"
)

const mediaCollection = "media"

type MediaRepository struct {
	coll *mongo.Collection
}

func NewMediaRepository(db *mongo.Database) *MediaRepository {
	return &MediaRepository{coll: db.Collection(mediaCollection)}
}

type mongoMedia struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ProductID   string             `bson:"product_id"`
	OwnerID     string             `bson:"owner_id,omitempty"`
	ImagePath   string             `bson:"image_path"`
	Locator     string             `bson:"locator"`
	ContentType string             `bson:"content_type,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
}

func (r *MediaRepository) FindByID(ctx context.Context, id string) (*domain.Media, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMediaNotFound
	}

	var mm mongoMedia
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mm); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrMediaNotFound
		}
		return nil, fmt.Errorf("find media: %w", err)
	}
	return mm.toDomain(), nil
}

func (r *MediaRepository) FindByProductID(ctx context.Context, productID string) ([]domain.Media, error) {
	cur, err := r.coll.Find(ctx, bson.M{"product_id": productID})
	if err != nil {
		return nil, fmt.Errorf("find media by product: %w", err)
	}
	defer cur.Close(ctx)

	list := make([]domain.Media, 0)
	for cur.Next(ctx) {
		var mm mongoMedia
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode media: %w", err)
		}
		list = append(list, *mm.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate media: %w", err)
	}
	return list, nil
}

func (r *MediaRepository) Save(ctx context.Context, media *domain.Media) (*domain.Media, error) {
	doc := mongoMedia{
		ProductID:   media.ProductID,
		OwnerID:     media.OwnerID,
		ImagePath:   media.ImagePath,
		Locator:     media.Locator,
		ContentType: media.ContentType,
		CreatedAt:   media.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert media: %w", err)
	}

	saved := *media
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		saved.ID = oid.Hex()
	}
	return &saved, nil
}

func (mm mongoMedia) toDomain() *domain.Media {
	return &domain.Media{
		ID:          mm.ID.Hex(),
		ProductID:   mm.ProductID,
		OwnerID:     mm.OwnerID,
		ImagePath:   mm.ImagePath,
		Locator:     mm.Locator,
		ContentType: mm.ContentType,
		CreatedAt:   unixToTime(mm.CreatedAt),
	}
}

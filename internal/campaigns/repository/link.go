package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	campaignserrors "utmforge/internal/campaigns/errors"
	"utmforge/pkg/config"
	"utmforge/pkg/model"
)

const (
	CollectionName = "Campaign_links"
)

type LinkRepository interface {
	Create(ctx context.Context, link *model.CampaignLink) error
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.CampaignLink, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type mongoLinkRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoLinkRepository(cfg *config.Config) LinkRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoLinkRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// linkDocument is the stored shape of a CampaignLink; the ObjectID is kept
// separate from the model so the API only ever sees its hex form.
type linkDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	model.CampaignLink `bson:",inline"`
}

func (d *linkDocument) toModel() *model.CampaignLink {
	link := d.CampaignLink
	link.ID = d.ID.Hex()
	return &link
}

func (r *mongoLinkRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoLinkRepository) Create(ctx context.Context, link *model.CampaignLink) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	link.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, linkDocument{CampaignLink: *link})
	if err != nil {
		return fmt.Errorf("failed to create campaign link: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		link.ID = oid.Hex()
	}

	return nil
}

func (r *mongoLinkRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.CampaignLink, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaign links: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []linkDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode campaign links: %w", err)
	}

	links := make([]*model.CampaignLink, 0, len(docs))
	for i := range docs {
		links = append(links, docs[i].toModel())
	}
	return links, nil
}

func (r *mongoLinkRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count campaign links: %w", err)
	}
	return count, nil
}

func (r *mongoLinkRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", campaignserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete campaign link: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", campaignserrors.ErrNotFound, id)
	}

	return nil
}

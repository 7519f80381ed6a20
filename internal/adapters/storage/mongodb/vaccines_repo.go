package mongodb

import (
	"context"
	"errors"
	"fmt"

	"pet-health-record/internal/adapters/storage/trackingdoc"
	"pet-health-record/internal/domain/vaccines"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trackingCollection = "vaccine_tracking"

type TrackingRepo struct {
	collection *mongo.Collection
}

// NewTrackingRepo crea los índices de la colección: búsqueda por pet y
// un único registro ACTIVE por (pet_id, tracking_type).
func NewTrackingRepo(ctx context.Context, db *mongo.Database) (vaccines.Repository, error) {
	collection := db.Collection(trackingCollection)

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "pet_id", Value: 1}, {Key: "created_at", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "pet_id", Value: 1}, {Key: "tracking_type", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("one_active_per_type").
				SetPartialFilterExpression(bson.M{"lifecycle": string(vaccines.LifecycleActive)}),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s indexes: %w", trackingCollection, err)
	}

	return &TrackingRepo{collection: collection}, nil
}

func (r *TrackingRepo) Create(ctx context.Context, rec vaccines.TrackingRecord) error {
	doc := trackingdoc.FromRecord(rec)
	doc.Version = 0

	_, err := r.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return vaccines.ErrStaleRecord
	}
	return err
}

func (r *TrackingRepo) Update(ctx context.Context, rec vaccines.TrackingRecord) error {
	doc := trackingdoc.FromRecord(rec)
	doc.Version = rec.Version + 1

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": rec.ID, "version": rec.Version}, doc)
	if mongo.IsDuplicateKeyError(err) {
		return vaccines.ErrStaleRecord
	}
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": rec.ID})
	if err != nil {
		return err
	}
	if n == 0 {
		return vaccines.ErrRecordNotFound
	}
	return vaccines.ErrStaleRecord
}

func (r *TrackingRepo) FindActive(ctx context.Context, petID string, typ vaccines.TrackingType) (vaccines.TrackingRecord, error) {
	filter := bson.M{
		"pet_id":        petID,
		"tracking_type": string(typ),
		"lifecycle":     string(vaccines.LifecycleActive),
	}

	var doc trackingdoc.Doc
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return vaccines.TrackingRecord{}, vaccines.ErrRecordNotFound
	}
	if err != nil {
		return vaccines.TrackingRecord{}, err
	}
	return doc.Record(), nil
}

func (r *TrackingRepo) ListByPet(ctx context.Context, petID string) ([]vaccines.TrackingRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.collection.Find(ctx, bson.M{"pet_id": petID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []trackingdoc.Doc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]vaccines.TrackingRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Record())
	}
	return out, nil
}

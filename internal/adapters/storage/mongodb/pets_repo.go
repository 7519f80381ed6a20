package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-health-record/internal/domain/pets"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type petDoc struct {
	ID          string     `bson:"_id"`
	OwnerUserID string     `bson:"owner_user_id"`
	Name        string     `bson:"name"`
	Species     string     `bson:"species"`
	Breed       string     `bson:"breed,omitempty"`
	Sex         string     `bson:"sex"`
	BirthDate   *time.Time `bson:"birth_date,omitempty"`
	Microchip   string     `bson:"microchip,omitempty"`
	Notes       string     `bson:"notes,omitempty"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
}

type PetsRepo struct {
	collection *mongo.Collection
}

func NewPetsRepo(ctx context.Context, db *mongo.Database) (pets.Repository, error) {
	collection := db.Collection("pets")

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_user_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create pets indexes: %w", err)
	}
	return &PetsRepo{collection: collection}, nil
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.collection.InsertOne(ctx, petDoc{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Species:     string(p.Species),
		Breed:       p.Breed,
		Sex:         string(p.Sex),
		BirthDate:   p.BirthDate,
		Microchip:   p.Microchip,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return pets.ErrAlreadyExists
	}
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	var d petDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return pets.Pet{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.Pet{}, err
	}
	return d.pet(), nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.collection.Find(ctx, bson.M{"owner_user_id": ownerUserID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []petDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]pets.Pet, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.pet())
	}
	return out, nil
}

func (d petDoc) pet() pets.Pet {
	return pets.Pet{
		ID:          d.ID,
		OwnerUserID: d.OwnerUserID,
		Name:        d.Name,
		Species:     pets.Species(d.Species),
		Breed:       d.Breed,
		Sex:         pets.Sex(d.Sex),
		BirthDate:   d.BirthDate,
		Microchip:   d.Microchip,
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"feudlive/internal/model"
)

type SynonymRepo interface {
	Upsert(ctx context.Context, entry *model.SynonymEntry) error
	FindByCanonical(ctx context.Context, canonical string) (*model.SynonymEntry, error)
	Delete(ctx context.Context, canonical string) error
	FindAll(ctx context.Context) ([]*model.SynonymEntry, error)
	DeleteAll(ctx context.Context) error
}

type synonymRepo struct {
	collection *mongo.Collection
}

func NewSynonymRepo(db *mongo.Database) SynonymRepo {
	return &synonymRepo{
		collection: db.Collection("synonyms"),
	}
}

func (r *synonymRepo) Upsert(ctx context.Context, entry *model.SynonymEntry) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": entry.Canonical}, entry, opts)
	return err
}

func (r *synonymRepo) FindByCanonical(ctx context.Context, canonical string) (*model.SynonymEntry, error) {
	var entry model.SynonymEntry
	err := r.collection.FindOne(ctx, bson.M{"_id": canonical}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // No dictionary entry
		}
		return nil, err
	}

	return &entry, nil
}

func (r *synonymRepo) Delete(ctx context.Context, canonical string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": canonical})
	return err
}

func (r *synonymRepo) FindAll(ctx context.Context) ([]*model.SynonymEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.SynonymEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *synonymRepo) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

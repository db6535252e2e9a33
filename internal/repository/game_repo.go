package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"feudlive/internal/model"
)

type GameRepo interface {
	Save(ctx context.Context, game *model.Game) error
	FindByCode(ctx context.Context, code string) (*model.Game, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Delete(ctx context.Context, code string) error
	FindAll(ctx context.Context) ([]*model.Game, error)
	DeleteAll(ctx context.Context) error
}

type gameRepo struct {
	collection *mongo.Collection
}

func NewGameRepo(db *mongo.Database) GameRepo {
	return &gameRepo{
		collection: db.Collection("games"),
	}
}

// Save upserts the game by code, so every mutation is persisted with a
// single write.
func (r *gameRepo) Save(ctx context.Context, game *model.Game) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"code": game.Code}, game, opts)
	return err
}

func (r *gameRepo) FindByCode(ctx context.Context, code string) (*model.Game, error) {
	var game model.Game
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&game)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Game not found
		}
		return nil, err
	}

	return &game, nil
}

func (r *gameRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"code": code})
	return n > 0, err
}

func (r *gameRepo) Delete(ctx context.Context, code string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"code": code})
	return err
}

func (r *gameRepo) FindAll(ctx context.Context) ([]*model.Game, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var games []*model.Game
	if err = cursor.All(ctx, &games); err != nil {
		return nil, err
	}

	return games, nil
}

func (r *gameRepo) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

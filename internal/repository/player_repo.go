package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"feudlive/internal/model"
)

type PlayerRepo interface {
	Create(ctx context.Context, player *model.Player) error
	// FindByNameAndGameCode matches the name case-sensitively; two players
	// named "anna" and "Anna" may coexist in one lobby.
	FindByNameAndGameCode(ctx context.Context, name, code string) (*model.Player, error)
	FindByGameCode(ctx context.Context, code string) ([]*model.Player, error)
	DeleteByGameCode(ctx context.Context, code string) error
	FindAll(ctx context.Context) ([]*model.Player, error)
	DeleteAll(ctx context.Context) error
}

type playerRepo struct {
	collection *mongo.Collection
}

func NewPlayerRepo(db *mongo.Database) PlayerRepo {
	return &playerRepo{
		collection: db.Collection("players"),
	}
}

func (r *playerRepo) Create(ctx context.Context, player *model.Player) error {
	_, err := r.collection.InsertOne(ctx, player)
	return err
}

func (r *playerRepo) FindByNameAndGameCode(ctx context.Context, name, code string) (*model.Player, error) {
	var player model.Player
	err := r.collection.FindOne(ctx, bson.M{"gameCode": code, "name": name}).Decode(&player)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Player not found
		}
		return nil, err
	}

	return &player, nil
}

func (r *playerRepo) FindByGameCode(ctx context.Context, code string) ([]*model.Player, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"gameCode": code})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var players []*model.Player
	if err = cursor.All(ctx, &players); err != nil {
		return nil, err
	}

	return players, nil
}

func (r *playerRepo) DeleteByGameCode(ctx context.Context, code string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"gameCode": code})
	return err
}

func (r *playerRepo) FindAll(ctx context.Context) ([]*model.Player, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var players []*model.Player
	if err = cursor.All(ctx, &players); err != nil {
		return nil, err
	}

	return players, nil
}

func (r *playerRepo) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

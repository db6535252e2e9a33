package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"feudlive/internal/model"
)

func main() {
	godotenv.Load()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "feudlive"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	questionColl := db.Collection("questions")
	synonymColl := db.Collection("synonyms")

	questions := []model.Question{
		{
			ID:   primitive.NewObjectID().Hex(),
			Text: "Name something people ride to work",
			Answers: []model.Answer{
				{ID: primitive.NewObjectID().Hex(), Text: "Car", Points: 40},
				{ID: primitive.NewObjectID().Hex(), Text: "Bike", Points: 20},
				{ID: primitive.NewObjectID().Hex(), Text: "Bus", Points: 25},
				{ID: primitive.NewObjectID().Hex(), Text: "Train", Points: 15},
			},
		},
		{
			ID:   primitive.NewObjectID().Hex(),
			Text: "Name something you find in a kitchen",
			Answers: []model.Answer{
				{ID: primitive.NewObjectID().Hex(), Text: "Fridge", Points: 35},
				{ID: primitive.NewObjectID().Hex(), Text: "Stove", Points: 30},
				{ID: primitive.NewObjectID().Hex(), Text: "Sink", Points: 20},
				{ID: primitive.NewObjectID().Hex(), Text: "Toaster", Points: 15},
			},
		},
		{
			ID:   primitive.NewObjectID().Hex(),
			Text: "Name a reason people stay up late",
			Answers: []model.Answer{
				{ID: primitive.NewObjectID().Hex(), Text: "Work", Points: 30},
				{ID: primitive.NewObjectID().Hex(), Text: "Movies", Points: 25},
				{ID: primitive.NewObjectID().Hex(), Text: "Games", Points: 25},
				{ID: primitive.NewObjectID().Hex(), Text: "Worry", Points: 20},
			},
		},
	}

	for i := range questions {
		if _, err := questionColl.InsertOne(ctx, questions[i]); err != nil {
			log.Fatalf("Failed to insert question: %v", err)
		}
	}

	synonyms := []model.SynonymEntry{
		{Canonical: "car", Synonyms: []string{"automobile", "vehicle", "auto"}},
		{Canonical: "bike", Synonyms: []string{"bicycle", "cycle"}},
		{Canonical: "fridge", Synonyms: []string{"refrigerator", "icebox"}},
		{Canonical: "movies", Synonyms: []string{"films", "cinema"}},
	}

	for i := range synonyms {
		opts := options.Replace().SetUpsert(true)
		filter := map[string]interface{}{"_id": synonyms[i].Canonical}
		if _, err := synonymColl.ReplaceOne(ctx, filter, synonyms[i], opts); err != nil {
			log.Fatalf("Failed to insert synonym entry: %v", err)
		}
	}

	fmt.Printf("Seeded %d questions and %d synonym entries into %s\n", len(questions), len(synonyms), dbName)
}

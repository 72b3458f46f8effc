package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collections struct {
	Tours        *mongo.Collection
	Hotels       *mongo.Collection
	Destinations *mongo.Collection
	Posts        *mongo.Collection
	Settings     *mongo.Collection
	Inquiries    *mongo.Collection
	AdminUsers   *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *Collections, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	db := client.Database(dbName)

	cols := &Collections{
		Tours:        db.Collection("tours"),
		Hotels:       db.Collection("hotels"),
		Destinations: db.Collection("destinations"),
		Posts:        db.Collection("posts"),
		Settings:     db.Collection("settings"),
		Inquiries:    db.Collection("inquiries"),
		AdminUsers:   db.Collection("admin_users"),
	}

	return client, cols, nil
}

func EnsureIndexes(ctx context.Context, cols *Collections) error {
	indexTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	uniqueSlug := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	for _, col := range []*mongo.Collection{cols.Tours, cols.Hotels, cols.Destinations, cols.Posts} {
		if _, err := col.Indexes().CreateMany(indexTimeout, uniqueSlug); err != nil {
			return err
		}
	}

	_, err := cols.Inquiries.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = cols.AdminUsers.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

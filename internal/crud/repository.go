// Package crud holds the one Mongo repository shared by every content
// entity type. The per-entity repositories only differ in their document
// type and collection, so the access layer is written once and
// instantiated per type.
package crud

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Mongo[T any] struct {
	col *mongo.Collection
}

func NewMongo[T any](col *mongo.Collection) *Mongo[T] {
	return &Mongo[T]{col: col}
}

func (r *Mongo[T]) Insert(ctx context.Context, item T) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *Mongo[T]) Update(ctx context.Context, id string, set bson.M) (T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}

	var updated T
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

func (r *Mongo[T]) Upsert(ctx context.Context, query bson.M, set bson.M) (T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(true)
	update := bson.M{"$set": set}

	var updated T
	if err := r.col.FindOneAndUpdate(ctx, query, update, opts).Decode(&updated); err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

func (r *Mongo[T]) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *Mongo[T]) FindOne(ctx context.Context, query bson.M) (T, error) {
	var item T
	if err := r.col.FindOne(ctx, query).Decode(&item); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

func (r *Mongo[T]) List(ctx context.Context, query bson.M, sort bson.D, limit, offset int64) ([]T, error) {
	opts := options.Find().SetSort(sort)
	if limit > 0 {
		opts = opts.SetLimit(limit).SetSkip(offset)
	}

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *Mongo[T]) Count(ctx context.Context, query bson.M) (int64, error) {
	return r.col.CountDocuments(ctx, query)
}

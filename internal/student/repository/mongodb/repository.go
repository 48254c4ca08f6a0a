// Package mongodb implements the students-collection repository.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/GowthamBk/student-management-api/internal/student/domain"
)

type MongoStudentRepository struct {
	collection *mongo.Collection
}

func NewMongoStudentRepository(database *mongo.Database) *MongoStudentRepository {
	return &MongoStudentRepository{collection: database.Collection("students")}
}

// EnsureIndexes creates the unique index on email.
func (r *MongoStudentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create student indexes: %w", err)
	}
	return nil
}

// searchFilter matches name or email case-insensitively; an empty term
// matches everything.
func searchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: search, Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"email": pattern},
	}}
}

func (r *MongoStudentRepository) Create(ctx context.Context, student *domain.Student) error {
	_, err := r.collection.InsertOne(ctx, student)
	if err != nil {
		return fmt.Errorf("failed to insert student: %w", err)
	}
	return nil
}

func (r *MongoStudentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Student, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoStudentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoStudentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Student, error) {
	var student domain.Student
	err := r.collection.FindOne(ctx, filter).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	return &student, nil
}

func (r *MongoStudentRepository) List(ctx context.Context, skip, limit int64, search string) ([]domain.Student, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, searchFilter(search), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer cursor.Close(ctx)

	var students []domain.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("failed to decode students: %w", err)
	}
	return students, nil
}

func (r *MongoStudentRepository) Count(ctx context.Context, search string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, searchFilter(search))
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

func (r *MongoStudentRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (bool, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update student: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *MongoStudentRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete student: %w", err)
	}
	return result.DeletedCount > 0, nil
}

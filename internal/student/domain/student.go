package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Student struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Age       int                `bson:"age"`
	Grade     string             `bson:"grade"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"createdAt"`
}

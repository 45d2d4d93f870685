package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User представляет пользователя, как он хранится в коллекции users
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	Birthday  time.Time          `bson:"birthday"`
	Balance   float64            `bson:"balance"`
	Email     string             `bson:"email"`
	PassHash  []byte             `bson:"password" json:"-"`
}

// UserListEntry — проекция пользователя для постраничного списка,
// birthday уже отформатирован строкой YYYY-MM-DD на стороне БД
type UserListEntry struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Birthday  string             `bson:"birthday" json:"birthday"`
	Balance   float64            `bson:"balance" json:"balance"`
	Email     string             `bson:"email" json:"email"`
}

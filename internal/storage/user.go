package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/linemk/user-service/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrUserNotFound = errors.New("user not found")

// ListOptions — параметры постраничной выборки пользователей
type ListOptions struct {
	Key       string // префикс для поиска по полному имени, пустая строка — без фильтра
	SortField string
	SortDesc  bool
	Page      int // нумерация с единицы
	PageSize  int
}

type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) (*models.User, error)
	DeleteUserByID(ctx context.Context, id primitive.ObjectID) error
	ListUsers(ctx context.Context, opts ListOptions) ([]*models.UserListEntry, int64, error)
}

type userRepository struct {
	users *mongo.Collection
}

// NewUserRepository принимает явный хендл БД, без глобального подключения
func NewUserRepository(db *mongo.Database) *userRepository {
	return &userRepository{users: db.Collection("users")}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	res, err := r.users.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user := &models.User{}
	err := r.users.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// получение уже существующего пользователя
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.users.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SaveUser перезаписывает документ целиком по id
func (r *userRepository) SaveUser(ctx context.Context, user *models.User) (*models.User, error) {
	res, err := r.users.ReplaceOne(ctx, bson.D{{Key: "_id", Value: user.ID}}, user)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// DeleteUserByID не проверяет существование: удаление отсутствующего
// документа считается успехом
func (r *userRepository) DeleteUserByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.users.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}

// ListUsers выполняет два независимых запроса: подсчёт подходящих документов
// и выборку страницы. Между ними нет транзакции, при параллельных записях
// счётчик и страница могут разойтись.
func (r *userRepository) ListUsers(ctx context.Context, opts ListOptions) ([]*models.UserListEntry, int64, error) {
	// полное имя собирается на стороне БД, фильтр — регистронезависимый префикс
	addFullName := bson.D{{Key: "$addFields", Value: bson.D{
		{Key: "fullName", Value: bson.D{
			{Key: "$concat", Value: bson.A{"$firstName", " ", "$lastName"}},
		}},
	}}}

	match := bson.D{}
	if opts.Key != "" {
		match = bson.D{{Key: "fullName", Value: primitive.Regex{
			Pattern: "^" + opts.Key,
			Options: "i",
		}}}
	}
	matchStage := bson.D{{Key: "$match", Value: match}}

	count, err := r.countMatching(ctx, addFullName, matchStage)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	direction := 1
	if opts.SortDesc {
		direction = -1
	}

	pipeline := mongo.Pipeline{
		addFullName,
		matchStage,
		{{Key: "$project", Value: bson.D{
			{Key: "firstName", Value: 1},
			{Key: "lastName", Value: 1},
			{Key: "balance", Value: 1},
			{Key: "email", Value: 1},
			{Key: "birthday", Value: bson.D{
				{Key: "$dateToString", Value: bson.D{
					{Key: "format", Value: "%Y-%m-%d"},
					{Key: "date", Value: "$birthday"},
				}},
			}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: opts.SortField, Value: direction}}}},
		{{Key: "$skip", Value: int64((opts.Page - 1) * opts.PageSize)}},
		{{Key: "$limit", Value: int64(opts.PageSize)}},
	}

	cursor, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []*models.UserListEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, fmt.Errorf("decode users page: %w", err)
	}
	return entries, count, nil
}

func (r *userRepository) countMatching(ctx context.Context, stages ...bson.D) (int64, error) {
	pipeline := mongo.Pipeline{}
	for _, s := range stages {
		pipeline = append(pipeline, s)
	}
	pipeline = append(pipeline, bson.D{{Key: "$count", Value: "count"}})

	cursor, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Count, nil
}

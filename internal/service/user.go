package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/linemk/user-service/internal/domain/models"
	"github.com/linemk/user-service/internal/lib/hash"
	"github.com/linemk/user-service/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailExists — email уже занят другим пользователем
	ErrEmailExists = errors.New("email already registered")
	// ErrNotOwner — попытка операции над чужой учётной записью
	ErrNotOwner = errors.New("access denied")
)

const (
	defaultPageSize  = 10
	defaultSortField = "firstName"
)

type UserService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
}

func NewUserService(log *slog.Logger, userRepo storage.UserStorage) *UserService {
	return &UserService{
		log:      log,
		userRepo: userRepo,
	}
}

type UserServiceInterface interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, in ListInput) (*ListResult, error)
	UpdateUser(ctx context.Context, id string, in UpdateInput) (*models.User, error)
	ResetPassword(ctx context.Context, callerID, targetID, oldPassword, newPassword string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// GetUser возвращает пользователя по id, некорректный id
// неотличим от отсутствующего пользователя
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "user.GetUser"
	logger := s.log.With(slog.String("op", op), slog.String("userID", id))

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Info("invalid user id")
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	user, err := s.userRepo.GetUserByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Info("user not found")
		} else {
			logger.Error("failed to get user", slog.Any("error", err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// ListInput — сырые параметры списка из query-строки
type ListInput struct {
	Key      string
	Sort     string // "поле:направление", например "firstName:desc"
	Page     int
	PageSize int
}

type ListResult struct {
	Items     []*models.UserListEntry
	DataCount int64
	HasMore   bool
}

// ListUsers возвращает страницу пользователей c общим числом совпадений.
// Сортировка по умолчанию — firstName по возрастанию, убывание только
// при буквальном токене "desc".
func (s *UserService) ListUsers(ctx context.Context, in ListInput) (*ListResult, error) {
	const op = "user.ListUsers"
	logger := s.log.With(slog.String("op", op))

	page := in.Page
	if page < 1 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	sortField := defaultSortField
	sortDesc := false
	if in.Sort != "" {
		field, direction, _ := strings.Cut(in.Sort, ":")
		if field != "" {
			sortField = field
		}
		sortDesc = direction == "desc"
	}

	items, count, err := s.userRepo.ListUsers(ctx, storage.ListOptions{
		Key:       in.Key,
		SortField: sortField,
		SortDesc:  sortDesc,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		logger.Error("failed to list users", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &ListResult{
		Items:     items,
		DataCount: count,
		HasMore:   count > int64(pageSize*page),
	}, nil
}

// UpdateInput — частичное обновление: нулевые значения не затирают поля
type UpdateInput struct {
	FirstName string
	LastName  string
	Birthday  time.Time
	Balance   float64
	Email     string
}

// UpdateUser применяет частичное обновление. Если меняется email, сначала
// проверяется, что он не занят другим пользователем, и только при отсутствии
// конфликта выполняется сохранение. Проверка и запись — два независимых
// запроса без изоляции.
func (s *UserService) UpdateUser(ctx context.Context, id string, in UpdateInput) (*models.User, error) {
	const op = "user.UpdateUser"
	logger := s.log.With(slog.String("op", op), slog.String("userID", id))

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Info("invalid user id")
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	user, err := s.userRepo.GetUserByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Info("user not found")
		} else {
			logger.Error("failed to get user", slog.Any("error", err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if in.Email != "" {
		existing, err := s.userRepo.GetUserByEmail(ctx, in.Email)
		if err != nil && !errors.Is(err, storage.ErrUserNotFound) {
			logger.Error("failed to check email", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to check email: %w", op, err)
		}
		if existing != nil && existing.ID != user.ID {
			logger.Info("email already taken", slog.String("email", in.Email))
			return nil, fmt.Errorf("%s: %w", op, ErrEmailExists)
		}
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if !in.Birthday.IsZero() {
		user.Birthday = in.Birthday
	}
	if in.Balance != 0 {
		user.Balance = in.Balance
	}
	if in.Email != "" {
		user.Email = in.Email
	}

	updated, err := s.userRepo.SaveUser(ctx, user)
	if err != nil {
		logger.Error("failed to save user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to save user: %w", op, err)
	}

	logger.Info("user updated")
	return updated, nil
}

// ResetPassword меняет пароль пользователя. Операция разрешена только
// владельцу учётной записи, старый пароль проверяется до замены.
func (s *UserService) ResetPassword(ctx context.Context, callerID, targetID, oldPassword, newPassword string) (*models.User, error) {
	const op = "user.ResetPassword"
	logger := s.log.With(slog.String("op", op), slog.String("userID", targetID))

	if callerID != targetID {
		logger.Warn("caller is not the account owner", slog.String("callerID", callerID))
		return nil, fmt.Errorf("%s: %w", op, ErrNotOwner)
	}

	objectID, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid user id: %w", op, err)
	}

	user, err := s.userRepo.GetUserByID(ctx, objectID)
	if err != nil {
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := hash.Compare(user.PassHash, oldPassword); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.Warn("old password mismatch")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		logger.Error("failed to compare password", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to compare password: %w", op, err)
	}

	passHash, err := hash.Password(newPassword)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}
	user.PassHash = passHash

	updated, err := s.userRepo.SaveUser(ctx, user)
	if err != nil {
		logger.Error("failed to save user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to save user: %w", op, err)
	}

	logger.Info("password updated")
	return updated, nil
}

// DeleteUser удаляет пользователя по id, отсутствие документа — не ошибка
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	const op = "user.DeleteUser"
	logger := s.log.With(slog.String("op", op), slog.String("userID", id))

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%s: invalid user id: %w", op, err)
	}

	if err := s.userRepo.DeleteUserByID(ctx, objectID); err != nil {
		logger.Error("failed to delete user", slog.Any("error", err))
		return fmt.Errorf("%s: failed to delete user: %w", op, err)
	}

	logger.Info("user deleted")
	return nil
}

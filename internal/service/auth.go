package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linemk/user-service/internal/domain/models"
	security "github.com/linemk/user-service/internal/jwt-new"
	"github.com/linemk/user-service/internal/lib/hash"
	"github.com/linemk/user-service/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials возвращается при несовпадении пароля
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	log       *slog.Logger
	userRepo  storage.UserStorage
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:       log,
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

type AuthServiceInterface interface {
	Signup(ctx context.Context, in SignupInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

// SignupInput — уже провалидированные данные регистрации
type SignupInput struct {
	FirstName string
	LastName  string
	Birthday  time.Time
	Balance   float64
	Email     string
	Password  string
}

// Signup хэширует пароль и сохраняет нового пользователя.
// Уникальность email при регистрации не проверяется — как и в остальных
// операциях, это не гарантируется на уровне хранилища.
func (a *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	const op = "auth.Signup"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", in.Email),
	)
	logger.Info("registering user")

	passHash, err := hash.Password(in.Password)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Birthday:  in.Birthday,
		Balance:   in.Balance,
		Email:     in.Email,
		PassHash:  passHash,
	}
	created, err := a.userRepo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("failed to create user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	logger.Info("user registered", slog.String("userID", created.ID.Hex()))
	return created, nil
}

// Login осуществляет аутентификацию пользователя.
// Введённый пароль сравнивается с сохранённым хэшем, после успешной
// проверки генерируется JWT-токен со сроком жизни tokenTTL.
func (a *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "auth.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Info("user not found")
			return nil, "", fmt.Errorf("%s: %w", op, err)
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := hash.Compare(user.PassHash, password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.Warn("invalid password")
			return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		logger.Error("failed to compare password", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to compare password: %w", op, err)
	}

	token, err := security.NewToken(ctx, user, a.jwtSecret, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.String("userID", user.ID.Hex()))
	return user, token, nil
}

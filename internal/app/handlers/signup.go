package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/linemk/user-service/internal/service"
)

// SignupRequest — структура запроса на регистрацию с тегами валидации.
// Balance — указатель, чтобы нулевой баланс отличался от отсутствующего поля.
type SignupRequest struct {
	FirstName string   `json:"firstName" validate:"required"`
	LastName  string   `json:"lastName" validate:"required"`
	Birthday  string   `json:"birthday" validate:"required,datetime=2006-01-02"`
	Balance   *float64 `json:"balance" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8"`
}

// SignupHandler обрабатывает POST /users/signup
func SignupHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SignupHandler"
		logger := log.With(slog.String("op", op))

		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeError(logger, w, http.StatusBadRequest, "invalid request body")
			return
		}

		// Валидация структуры запроса с использованием validator
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			writeValidationError(logger, w, err)
			return
		}

		birthday, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			logger.Error("invalid birthday", slog.Any("error", err))
			writeValidationError(logger, w, err)
			return
		}

		user, err := authService.Signup(r.Context(), service.SignupInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Birthday:  birthday,
			Balance:   *req.Balance,
			Email:     req.Email,
			Password:  req.Password,
		})
		if err != nil {
			logger.Error("signup failed", slog.Any("error", err))
			writeError(logger, w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(logger, w, http.StatusCreated, Response{
			Status:  http.StatusCreated,
			Message: "User created successfully",
			Data:    newUserPayload(user),
		})
	}
}

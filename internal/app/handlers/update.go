package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/user-service/internal/service"
	"github.com/linemk/user-service/internal/storage"
)

// UpdateRequest — частичное обновление: отсутствующие и нулевые поля не меняются
type UpdateRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Birthday  string  `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Balance   float64 `json:"balance"`
	Email     string  `json:"email" validate:"omitempty,email"`
}

// UpdateUserHandler обрабатывает PATCH /users/updateUser/{userId}.
// Конфликт email проверяется до сохранения: при конфликте запись не меняется.
func UpdateUserHandler(log *slog.Logger, userService service.UserServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateUserHandler"
		logger := log.With(slog.String("op", op))

		userID := chi.URLParam(r, "userId")

		var req UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeError(logger, w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			writeError(logger, w, http.StatusBadRequest, "invalid request body")
			return
		}

		var birthday time.Time
		if req.Birthday != "" {
			parsed, err := time.Parse("2006-01-02", req.Birthday)
			if err != nil {
				logger.Error("invalid birthday", slog.Any("error", err))
				writeError(logger, w, http.StatusBadRequest, "invalid birthday format")
				return
			}
			birthday = parsed
		}

		user, err := userService.UpdateUser(r.Context(), userID, service.UpdateInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Birthday:  birthday,
			Balance:   req.Balance,
			Email:     req.Email,
		})
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrUserNotFound):
				writeError(logger, w, http.StatusNotFound, "User not found")
			case errors.Is(err, service.ErrEmailExists):
				writeError(logger, w, http.StatusConflict, "A user registered with this email exists in the system.")
			default:
				logger.Error("failed to update user", slog.Any("error", err))
				writeError(logger, w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		writeJSON(logger, w, http.StatusOK, Response{
			Status:  http.StatusOK,
			Message: "User updated successfully",
			Data:    newUserPayload(user),
		})
	}
}

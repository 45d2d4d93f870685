package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/user-service/internal/service"
	"github.com/linemk/user-service/internal/storage"
)

// GetUserHandler обрабатывает GET /users/{userId}.
// Любой аутентифицированный пользователь может читать любую учётную запись.
func GetUserHandler(log *slog.Logger, userService service.UserServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetUserHandler"
		logger := log.With(slog.String("op", op))

		userID := chi.URLParam(r, "userId")

		user, err := userService.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				writeError(logger, w, http.StatusNotFound, "User not found")
				return
			}
			logger.Error("failed to get user", slog.Any("error", err))
			writeError(logger, w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(logger, w, http.StatusOK, Response{
			Status:  http.StatusOK,
			Message: "Success",
			Data:    newUserPayload(user),
		})
	}
}

// DeleteUserHandler обрабатывает DELETE /users/{userId}.
// Удаление отсутствующего пользователя также отвечает 200.
func DeleteUserHandler(log *slog.Logger, userService service.UserServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteUserHandler"
		logger := log.With(slog.String("op", op))

		userID := chi.URLParam(r, "userId")

		if err := userService.DeleteUser(r.Context(), userID); err != nil {
			logger.Error("failed to delete user", slog.Any("error", err))
			writeError(logger, w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(logger, w, http.StatusOK, Response{
			Status:  http.StatusOK,
			Message: "User deleted successfully",
		})
	}
}

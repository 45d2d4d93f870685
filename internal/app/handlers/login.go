package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/linemk/user-service/internal/service"
	"github.com/linemk/user-service/internal/storage"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse — конверт ответа с JWT-токеном
type loginResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Token   string `json:"token"`
}

// LoginHandler обрабатывает POST /users/login
func LoginHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeError(logger, w, http.StatusBadRequest, "invalid request body")
			return
		}

		// Некорректный email неотличим от незарегистрированного:
		// поиск по нему просто ничего не найдёт
		user, token, err := authService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrUserNotFound):
				writeError(logger, w, http.StatusNotFound, "Email does not exist")
			case errors.Is(err, service.ErrInvalidCredentials):
				writeError(logger, w, http.StatusForbidden, "Wrong Password!")
			default:
				logger.Error("login failed", slog.Any("error", err))
				writeError(logger, w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		writeJSON(logger, w, http.StatusOK, loginResponse{
			Status:  http.StatusOK,
			Message: "Success",
			Data:    newUserPayload(user),
			Token:   token,
		})
	}
}

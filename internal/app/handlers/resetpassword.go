package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/user-service/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/user-service/internal/service"
)

type ResetPasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ResetPasswordHandler обрабатывает POST /users/{userId}/resetPassword.
// Смена пароля разрешена только владельцу: id из токена должен совпадать
// с id из пути.
func ResetPasswordHandler(log *slog.Logger, userService service.UserServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ResetPasswordHandler"
		logger := log.With(slog.String("op", op))

		callerID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			writeError(logger, w, http.StatusUnauthorized, "Auth Failed!")
			return
		}

		targetID := chi.URLParam(r, "userId")

		var req ResetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeError(logger, w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			writeValidationError(logger, w, err)
			return
		}

		user, err := userService.ResetPassword(r.Context(), callerID, targetID, req.OldPassword, req.NewPassword)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotOwner):
				writeError(logger, w, http.StatusForbidden, "You cannot access here")
			case errors.Is(err, service.ErrInvalidCredentials):
				writeError(logger, w, http.StatusForbidden, "Old Password is incorrect!")
			default:
				logger.Error("failed to reset password", slog.Any("error", err))
				writeError(logger, w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		writeJSON(logger, w, http.StatusOK, Response{
			Status:  http.StatusOK,
			Message: "Password Successfully Updated",
			Data:    newUserPayload(user),
		})
	}
}

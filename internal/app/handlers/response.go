package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/user-service/internal/domain/models"
)

var validate = validator.New()

// Response — общий конверт ответа: status дублирует HTTP-статус
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// validationResponse — для 422 в message уходит список нарушений по полям
type validationResponse struct {
	Status  int      `json:"status"`
	Message []string `json:"message"`
}

// UserPayload — представление пользователя в ответах, без хэша пароля
type UserPayload struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Birthday  string  `json:"birthday"`
	Balance   float64 `json:"balance"`
	Email     string  `json:"email"`
}

func newUserPayload(user *models.User) UserPayload {
	return UserPayload{
		ID:        user.ID.Hex(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Birthday:  user.Birthday.Format("2006-01-02"),
		Balance:   user.Balance,
		Email:     user.Email,
	}
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func writeError(logger *slog.Logger, w http.ResponseWriter, status int, message string) {
	writeJSON(logger, w, status, Response{Status: status, Message: message})
}

func writeValidationError(logger *slog.Logger, w http.ResponseWriter, err error) {
	writeJSON(logger, w, http.StatusUnprocessableEntity, validationResponse{
		Status:  http.StatusUnprocessableEntity,
		Message: validationMessages(err),
	})
}

// validationMessages собирает список нарушений по полям
func validationMessages(err error) []string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fmt.Sprintf("field '%s' failed on the '%s' rule", fe.Field(), fe.Tag()))
	}
	return messages
}

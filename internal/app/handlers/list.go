package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/linemk/user-service/internal/service"
)

// listResponse — конверт ответа списка с числом совпадений и флагом hasMore
type listResponse struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	DataCount int64  `json:"dataCount"`
	HasMore   bool   `json:"hasMore"`
}

// ListUsersHandler обрабатывает GET /users.
// Параметры запроса: pagination (размер страницы), page, sort ("поле:направление"), key.
func ListUsersHandler(log *slog.Logger, userService service.UserServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListUsersHandler"
		logger := log.With(slog.String("op", op))

		query := r.URL.Query()

		pageSize, err := intQueryParam(query.Get("pagination"), 10)
		if err != nil {
			logger.Error("invalid pagination parameter", slog.Any("error", err))
			writeError(logger, w, http.StatusBadRequest, "invalid pagination parameter")
			return
		}
		page, err := intQueryParam(query.Get("page"), 1)
		if err != nil {
			logger.Error("invalid page parameter", slog.Any("error", err))
			writeError(logger, w, http.StatusBadRequest, "invalid page parameter")
			return
		}

		result, err := userService.ListUsers(r.Context(), service.ListInput{
			Key:      query.Get("key"),
			Sort:     query.Get("sort"),
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			logger.Error("failed to list users", slog.Any("error", err))
			writeError(logger, w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(logger, w, http.StatusOK, listResponse{
			Status:    http.StatusOK,
			Message:   "Success",
			Data:      result.Items,
			DataCount: result.DataCount,
			HasMore:   result.HasMore,
		})
	}
}

func intQueryParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/user-service/internal/app"
	"github.com/linemk/user-service/internal/app/handlers"
	"github.com/linemk/user-service/internal/config"
	"github.com/linemk/user-service/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/user-service/internal/lib/cors"
	"github.com/linemk/user-service/internal/lib/logger"
	"github.com/linemk/user-service/internal/lib/logger/handlers/urllog"
	"github.com/linemk/user-service/internal/service"
	"github.com/linemk/user-service/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// загружаем объект приложения: конфиг и подключение к БД
	application, err := app.NewApp(context.Background(), log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer func() {
		if err := application.Close(context.Background()); err != nil {
			log.Error("failed to disconnect from database", slog.Any("error", err))
		}
	}()

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(cors.Middleware)

	// слой по работе с БД
	userRepo := storage.NewUserRepository(application.DB)

	tokenTTL := time.Duration(cfg.JWT.TokenTTL) * time.Minute
	authService := service.NewAuthService(application.Logger, userRepo, cfg.JWT.Secret, tokenTTL)
	userService := service.NewUserService(application.Logger, userRepo)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("We are on API Home"))
	})

	router.Route("/users", func(r chi.Router) {
		// открытые эндпоинты
		r.Post("/signup", handlers.SignupHandler(application.Logger, authService))
		r.Post("/login", handlers.LoginHandler(application.Logger, authService))

		// эндпоинты под JWT-защитой
		r.Group(func(r chi.Router) {
			jwtMW := jwtmiddleware.NewJWTMiddleware(cfg.JWT.Secret)
			r.Use(jwtMW)
			r.Get("/", handlers.ListUsersHandler(application.Logger, userService))
			r.Get("/{userId}", handlers.GetUserHandler(application.Logger, userService))
			r.Patch("/updateUser/{userId}", handlers.UpdateUserHandler(application.Logger, userService))
			r.Post("/{userId}/resetPassword", handlers.ResetPasswordHandler(application.Logger, userService))
			r.Delete("/{userId}", handlers.DeleteUserHandler(application.Logger, userService))
		})
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}

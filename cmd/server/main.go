// @title           iNotebook API
// @version         1.0
// @description     Personal notes backend (iNotebook).
// @description     Provides user authentication and per-user note storage.
// @termsOfService  https://example.com/terms

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin
// @contact.email  ivan@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-auth-token
//
// Package main содержит точку входа серверного приложения iNotebook.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации из CONFIG_PATH (по умолчанию ./configs/server.yaml);
//   - подключение к базе данных с повторными попытками и применение миграций;
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - запуск HTTP или HTTPS сервера с таймаутами из конфига;
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
// HTTP API сервера реализовано в пакете internal/server/api и документируется с помощью OpenAPI (Swagger).
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-inotebook/internal/server/api"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/config"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/middleware"
	h "github.com/IvanChernomyrdin/go-inotebook/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/repository"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/service"
	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-inotebook/swagger/docs"
)

const defaultConfigPath = "./configs/server.yaml"

func main() {
	boot := logger.NewHTTPLogger().Logger.Sugar()

	if err := godotenv.Load(); err != nil {
		boot.Warnf("no .env file loaded, error: %v", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		boot.Fatal(err)
	}

	log, err := logger.New(cfg.LogOptions())
	if err != nil {
		boot.Fatal(err)
	}
	defer func() { _ = log.Sync() }()
	sugar := log.Sugar()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// подключаем базу данных и накатываем миграции
	db, err := config.OpenDB(ctx, cfg.DB, cfg.Migrations, log)
	if err != nil {
		sugar.Fatal(err)
	}
	// делаем отложенное закрытие бд
	defer func() {
		_ = db.Close()
	}()

	// создаём репы
	repos := service.Repositories{
		Users:  repository.NewUsersRepository(db, repository.WithQueryTimeout(cfg.DB.QueryTimeout)),
		Notes:  repository.NewNotesRepository(db, repository.WithQueryTimeout(cfg.DB.QueryTimeout)),
		Health: repository.NewHealthRepository(db, repository.WithQueryTimeout(cfg.DB.QueryTimeout)),
	}

	hasher, err := crypto.NewPasswordHasher(cfg.Password.Hasher, cfg.Password.Bcrypt.Cost, crypto.Argon2Params{
		Time:      cfg.Password.Argon2.Time,
		MemoryKiB: cfg.Password.Argon2.MemoryKiB,
		Threads:   cfg.Password.Argon2.Threads,
		KeyLen:    cfg.Password.Argon2.KeyLen,
		SaltLen:   cfg.Password.Argon2.SaltLen,
	})
	if err != nil {
		sugar.Fatal(err)
	}

	// создаём jwt
	tokens, err := crypto.NewTokenManager(crypto.JWTConfig{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		SigningKey: cfg.Auth.JWT.SigningKey,
		TTL:        cfg.Auth.TokenTTL,
	})
	if err != nil {
		sugar.Fatal(err)
	}

	// создаём сервис
	svc := service.NewServices(repos, hasher, tokens, cfg)
	gate := middleware.NewAuthGate(tokens, cfg.Auth.Header, log)
	// создаём хандлер
	handler := api.NewHandler(svc, log, gate)
	// создаём роутер
	router := h.NewRouter(handler, h.Options{
		TrustProxy:   cfg.Server.TrustProxy,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		AccessLog:    log,
	})

	//создаём сервер
	addr := cfg.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsVersion(cfg.TLS.MinVersion)}
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		log.Info("server started", zap.String("addr", addr), zap.Bool("tls", cfg.TLS.Enabled))

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		log.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	log.Info("server gracefully stopped")
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}

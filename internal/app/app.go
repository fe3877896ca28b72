package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/collabstudy/server/internal/controller"
	"github.com/collabstudy/server/internal/hub"
	"github.com/collabstudy/server/internal/identity"
	"github.com/collabstudy/server/internal/media"
	roomRedis "github.com/collabstudy/server/internal/repository/room/redis"
	sessionInmemory "github.com/collabstudy/server/internal/repository/session/inmemory"
	roomService "github.com/collabstudy/server/internal/service/room"
	syncService "github.com/collabstudy/server/internal/service/sync"
	"github.com/collabstudy/server/pkg/ctxlogger"
	"github.com/collabstudy/server/pkg/redisclient"
)

type AppConfig struct {
	Host          string `json:"host"`
	Port          int    `json:"port"`
	LogLevel      string `json:"log_level"`
	MembersLimit  int    `json:"members_limit"`
	RedisPort     int    `json:"redis_port"`
	RedisHost     string `json:"redis_host"`
	RedisPassword string `json:"-"`
	YoutubeApiKey string `json:"-"`
	AuthVerifyUrl string `json:"auth_verify_url"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.MembersLimit < 1 {
		return fmt.Errorf("members limit must be greater than 0")
	}
	if cfg.AuthVerifyUrl == "" {
		return fmt.Errorf("auth verify url must be set")
	}
	return nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		log.Fatal(err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}

	logger := slog.New(&h)

	rc, err := redisclient.NewRedisClient(&redisclient.Config{
		Port:     cfg.RedisPort,
		Host:     cfg.RedisHost,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer rc.Close()

	roomRepo := roomRedis.NewRepo(rc, 24*14*time.Hour)
	sessionRepo := sessionInmemory.NewRepo(logger)
	roomHub := hub.New(logger)
	verifier := identity.NewVerifier(cfg.AuthVerifyUrl)
	searcher := media.NewSearcher(cfg.YoutubeApiKey)
	parser := media.NewParser()
	metadata := media.NewMetadataProvider()

	roomSvc := roomService.NewService(roomRepo, verifier, cfg.MembersLimit)
	syncSvc := syncService.NewService(roomRepo, sessionRepo, roomHub, searcher, parser, metadata, logger)

	controller := controller.NewController(roomSvc, syncSvc, logger)
	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: controller.GetMux()}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-serverCtx.Done()

	return nil
}

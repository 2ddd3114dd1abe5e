package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "github.com/wont-laylow/punch-chat/cmd/api/router/v1"
	cacheAdapter "github.com/wont-laylow/punch-chat/internal/infrastructure/cache/adapter"
	"github.com/wont-laylow/punch-chat/internal/infrastructure/database"
	queueAdapter "github.com/wont-laylow/punch-chat/internal/infrastructure/queue/adapter"
	"github.com/wont-laylow/punch-chat/internal/infrastructure/realtime"
	"github.com/wont-laylow/punch-chat/internal/pkg/chat/application/task"
	"github.com/wont-laylow/punch-chat/internal/pkg/chat/application/usecase"
	repoAdapter "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/adapter"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	pool, err := database.NewPoolFromEnv(connectCtx)
	cancel()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	var repo repository.ChatRepository = repoAdapter.NewPgChatRepository(pool)
	users := repoAdapter.NewPgUserRepository(pool)

	// Membership checks sit on the hot path of every frame; cache them
	// when Redis is around, run uncached otherwise.
	if cache, err := cacheAdapter.NewRedisAdapter(); err != nil {
		log.Printf("Warning: running without membership cache: %v", err)
	} else {
		defer cache.Close()
		repo = repoAdapter.NewCachedChatRepository(repo, cache)
	}

	registry := realtime.NewRegistry()
	defer registry.Close()
	broadcaster := realtime.NewBroadcaster(registry)

	queueClient, err := queueAdapter.NewAsynqClientFromEnv()
	if err != nil {
		log.Fatalf("failed to create queue client: %v", err)
	}
	defer queueClient.Close()

	queueServer, err := queueAdapter.NewAsynqServer()
	if err != nil {
		log.Fatalf("failed to create queue server: %v", err)
	}
	task.RegisterSendMessageTask(queueServer, usecase.NewAppendMessageUseCase(repo), broadcaster)
	go func() {
		if err := queueServer.Run(ctx); err != nil {
			log.Printf("queue server stopped: %v", err)
		}
	}()

	r := gin.Default()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1.RegisterRoutes(r, repo, users, queueClient, registry, broadcaster)

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":8080"
	}
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		log.Printf("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}

package v1

import (
	"github.com/gin-gonic/gin"

	queueport "github.com/wont-laylow/punch-chat/internal/infrastructure/queue/port"
	"github.com/wont-laylow/punch-chat/internal/infrastructure/realtime"
	httpHandler "github.com/wont-laylow/punch-chat/internal/pkg/chat/presentation/http"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, repo repository.ChatRepository, users repository.UserRepository, client queueport.Client, registry *realtime.Registry, broadcaster *realtime.Broadcaster) {
	v1 := r.Group("/api/v1")
	httpHandler.RegisterRoutes(v1, repo, users, client, registry, broadcaster)
}

package http

import (
	"github.com/gin-gonic/gin"

	queueport "github.com/wont-laylow/punch-chat/internal/infrastructure/queue/port"
	"github.com/wont-laylow/punch-chat/internal/infrastructure/realtime"
	"github.com/wont-laylow/punch-chat/internal/pkg/chat/presentation/controller"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// RegisterRoutes registers chat endpoints under the given router group.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, repo repository.ChatRepository, users repository.UserRepository, client queueport.Client, registry *realtime.Registry, broadcaster *realtime.Broadcaster) {
	createCtl := controller.NewCreateRoomController(repo)
	directCtl := controller.NewOpenDirectController(repo)
	listCtl := controller.NewListRoomsController(repo)
	getMsgCtl := controller.NewGetMessageController(repo)
	sendMsgCtl := controller.NewSendMessageController(client)
	addMemberCtl := controller.NewAddMemberController(repo, users)
	socketCtl := controller.NewChatSocketController(repo, registry, broadcaster)

	chat := g.Group("/chat")

	// POST /api/v1/chat/rooms -> create a direct or group room
	chat.POST("/rooms", createCtl.Handle())

	// POST /api/v1/chat/direct/:userId -> get or create the direct room with a user
	chat.POST("/direct/:userId", directCtl.Handle())

	// GET /api/v1/chat/rooms -> list the caller's rooms
	chat.GET("/rooms", listCtl.Handle())

	// GET /api/v1/chat/rooms/:roomId/messages -> fetch room history
	chat.GET("/rooms/:roomId/messages", getMsgCtl.Handle())

	// POST /api/v1/chat/rooms/:roomId/messages -> queue-backed fallback send
	chat.POST("/rooms/:roomId/messages", sendMsgCtl.Handle())

	// POST /api/v1/chat/rooms/:roomId/members -> add a user to a group room
	chat.POST("/rooms/:roomId/members", addMemberCtl.Handle())

	// GET /api/v1/chat/ws -> websocket endpoint for realtime chat
	chat.GET("/ws", socketCtl.Handle())
}

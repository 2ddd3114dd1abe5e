package controller

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/wont-laylow/punch-chat/internal/infrastructure/realtime"
	"github.com/wont-laylow/punch-chat/internal/pkg/chat/application/session"
	"github.com/wont-laylow/punch-chat/internal/pkg/chat/application/usecase"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// ChatSocketController upgrades HTTP connections and hands them to the
// session lifecycle. One goroutine (the gin handler's) per client,
// blocked inside session.Open until the connection closes.
type ChatSocketController struct {
	deps session.Deps
}

func NewChatSocketController(repo repository.ChatRepository, registry *realtime.Registry, broadcaster *realtime.Broadcaster) *ChatSocketController {
	return &ChatSocketController{
		deps: session.Deps{
			Registry:    registry,
			Broadcaster: broadcaster,
			Join:        usecase.NewJoinRoomUseCase(repo),
			Append:      usecase.NewAppendMessageUseCase(repo),
		},
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same-origin policy is enforced by the fronting gateway.
		return true
	},
}

func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := currentUserID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		roomID, err := strconv.ParseInt(c.Query("room_id"), 10, 64)
		if err != nil || roomID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_id must be a positive integer"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response.
			return
		}

		transport := realtime.NewWSTransport(ws)
		if err := session.Open(c.Request.Context(), transport, userID, roomID, ctl.deps); err != nil {
			log.Printf("websocket session rejected: user=%d room=%d: %v", userID, roomID, err)
		}
	}
}

package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wont-laylow/punch-chat/internal/pkg/chat/application/usecase"
	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// OpenDirectController gets or creates the direct room between the
// caller and another user (one controller per endpoint).
type OpenDirectController struct {
	UC *usecase.ResolveRoomUseCase
}

func NewOpenDirectController(repo repository.ChatRepository) *OpenDirectController {
	return &OpenDirectController{UC: usecase.NewResolveRoomUseCase(repo)}
}

func (h *OpenDirectController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := currentUserID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		otherID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
		if err != nil || otherID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId must be a positive integer"})
			return
		}
		if otherID == userID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot start a direct chat with yourself"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		room, err := h.UC.Execute(ctx, usecase.ResolveRoomInput{
			Kind:           chat.RoomDirect,
			ParticipantIDs: []int64{userID, otherID},
		})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, roomResponse(room))
	}
}

package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wont-laylow/punch-chat/internal/pkg/chat/application/usecase"
	chat "github.com/wont-laylow/punch-chat/internal/pkg/chat/domain"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// CreateRoomController handles room creation (one controller per endpoint).
type CreateRoomController struct {
	UC *usecase.ResolveRoomUseCase
}

func NewCreateRoomController(repo repository.ChatRepository) *CreateRoomController {
	return &CreateRoomController{UC: usecase.NewResolveRoomUseCase(repo)}
}

type createRoomRequest struct {
	Kind           string  `json:"kind" binding:"required"`
	ParticipantIDs []int64 `json:"participant_ids"`
	Name           string  `json:"name"`
}

func (h *CreateRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := currentUserID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		var req createRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// The creator is always a participant.
		in := usecase.ResolveRoomInput{
			Kind:           chat.RoomKind(req.Kind),
			ParticipantIDs: append(req.ParticipantIDs, userID),
			Name:           req.Name,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		room, err := h.UC.Execute(ctx, in)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, roomResponse(room))
	}
}

func roomResponse(room *chat.Room) gin.H {
	return gin.H{
		"id":         room.ID,
		"kind":       room.Kind,
		"name":       room.Name,
		"active":     room.Active,
		"created_at": room.CreatedAt,
	}
}

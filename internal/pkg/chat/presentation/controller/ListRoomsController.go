package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wont-laylow/punch-chat/internal/pkg/chat/application/usecase"
	repository "github.com/wont-laylow/punch-chat/internal/pkg/chat/persistence/repository/port"
)

// ListRoomsController lists the caller's rooms (one controller per endpoint).
type ListRoomsController struct {
	UC *usecase.ListRoomsUseCase
}

func NewListRoomsController(repo repository.ChatRepository) *ListRoomsController {
	return &ListRoomsController{UC: usecase.NewListRoomsUseCase(repo)}
}

func (h *ListRoomsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := currentUserID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		rooms, err := h.UC.Execute(ctx, usecase.ListRoomsInput{UserID: userID})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(rooms))
		for i := range rooms {
			out = append(out, roomResponse(&rooms[i]))
		}
		c.JSON(http.StatusOK, gin.H{"rooms": out, "count": len(out)})
	}
}

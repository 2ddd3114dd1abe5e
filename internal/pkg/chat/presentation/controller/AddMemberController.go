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

// AddMemberController adds a user, by username, to a group room (one
// controller per endpoint).
type AddMemberController struct {
	UC *usecase.AddMemberUseCase
}

func NewAddMemberController(repo repository.ChatRepository, users repository.UserRepository) *AddMemberController {
	return &AddMemberController{UC: usecase.NewAddMemberUseCase(repo, users)}
}

type addMemberRequest struct {
	Username string `json:"username" binding:"required"`
}

func (h *AddMemberController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := currentUserID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		roomID, err := strconv.ParseInt(c.Param("roomId"), 10, 64)
		if err != nil || roomID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId must be a positive integer"})
			return
		}

		var req addMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		room, err := h.UC.Execute(ctx, usecase.AddMemberInput{
			RoomID:       roomID,
			Username:     req.Username,
			ActingUserID: userID,
		})
		if err != nil {
			status := http.StatusBadRequest
			switch {
			case errors.Is(err, chat.ErrRoomNotFound), errors.Is(err, chat.ErrUserNotFound):
				status = http.StatusNotFound
			case errors.Is(err, chat.ErrNotAMember):
				status = http.StatusForbidden
			case errors.Is(err, chat.ErrAlreadyMember):
				status = http.StatusConflict
			case errors.Is(err, usecase.ErrPersistence):
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, roomResponse(room))
	}
}

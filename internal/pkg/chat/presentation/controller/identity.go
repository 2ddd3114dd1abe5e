package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// errNoIdentity signals a request that arrived without the upstream
// identity header. Authentication itself happens outside this module;
// the gateway injects the verified user ID.
var errNoIdentity = errors.New("missing X-User-ID header")

// currentUserID extracts the pre-authenticated caller identity. HTTP
// requests carry it in X-User-ID; the websocket handshake falls back to
// the user_id query parameter since browsers cannot set headers there.
func currentUserID(c *gin.Context) (int64, error) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		raw = c.Query("user_id")
	}
	if raw == "" {
		return 0, errNoIdentity
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errNoIdentity
	}
	return id, nil
}

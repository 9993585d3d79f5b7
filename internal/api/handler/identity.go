package handler

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/encoding/charmap"

	"chatroom/backend/internal/sanitize"
)

// identityHeader carries the requester's display name out-of-band, encoded as
// latin1 bytes.
const identityHeader = "User"

// identity resolves the requester name from the identity header. It reports
// false when the header is absent or decodes to nothing usable.
func identity(c *gin.Context) (string, bool) {
	raw := c.GetHeader(identityHeader)
	if raw == "" {
		return "", false
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().String(raw)
	if err != nil {
		return "", false
	}

	name := sanitize.Clean(decoded)
	if name == "" {
		return "", false
	}
	return name, true
}

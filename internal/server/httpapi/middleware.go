package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/inkwell/internal/common"
)

// ContextSubjectKey is the gin context key holding the verified subject id.
const ContextSubjectKey = "auth.subject"

// RequireAuth verifies the session token and threads the verified subject id
// into the request context. The token travels as the raw value of the
// Authorization header; a standard "Bearer " prefix is tolerated and stripped.
func (s *HTTPServer) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(common.AccessTokenHeaderName))
		token = strings.TrimPrefix(token, "Bearer ")

		subjectID, err := s.users.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "please log in again",
			})
			return
		}

		c.Set(ContextSubjectKey, subjectID)
		c.Next()
	}
}

// subjectID returns the verified subject id set by RequireAuth.
func subjectID(c *gin.Context) string {
	return c.GetString(ContextSubjectKey)
}

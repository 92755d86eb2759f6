package handler

import (
	"net/http"
	"strings"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/service"
	"github.com/gin-gonic/gin"
)

const authUserKey = "auth_user"

// AuthMiddleware - Bearer 액세스 토큰 검증
//
// 서명/만료뿐 아니라 블랙리스트까지 확인하므로 로그아웃된 토큰은
// 모든 보호 라우트에서 거부된다.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		result := authService.VerifyToken(c.Request.Context(), token)
		if !result.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "reason": result.Reason})
			c.Abort()
			return
		}

		c.Set(authUserKey, &model.AuthUser{
			ID:       result.UserID,
			Username: result.Username,
		})
		c.Next()
	}
}

func GetAuthUser(c *gin.Context) *model.AuthUser {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.AuthUser); ok {
			return user
		}
	}
	return nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

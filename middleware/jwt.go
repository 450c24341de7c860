package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"hostel/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// 上下文键
const (
	ctxRoomID   = "roomID"
	ctxUserID   = "userID"
	ctxRoomCode = "roomCode"
)

// Claims 会话令牌载荷，记录当前浏览器所属房间与成员
type Claims struct {
	RoomID   uint   `json:"roomId"`
	UserID   uint   `json:"userId"`
	RoomCode string `json:"roomCode"`
	jwt.RegisteredClaims
}

// InitJWT 初始化签名密钥
func InitJWT(cfg *config.Config) {
	jwtSecret = []byte(cfg.JWT.Secret)
}

// GenerateToken 签发会话令牌
func GenerateToken(roomID, userID uint, roomCode string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RoomID:   roomID,
		UserID:   userID,
		RoomCode: roomCode,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "hostel",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

// ParseToken 解析并校验会话令牌
func ParseToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// JWTAuth 校验 Authorization: Bearer <token>
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or malformed session token"})
			return
		}
		claims, err := ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired session token"})
			return
		}
		c.Set(ctxRoomID, claims.RoomID)
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRoomCode, claims.RoomCode)
		c.Next()
	}
}

// GetCurrentUserID 当前会话成员 ID，未登录时为 0
func GetCurrentUserID(c *gin.Context) uint {
	return c.GetUint(ctxUserID)
}

// GetCurrentRoomID 当前会话房间 ID，未登录时为 0
func GetCurrentRoomID(c *gin.Context) uint {
	return c.GetUint(ctxRoomID)
}

// GetCurrentRoomCode 当前会话房间加入码
func GetCurrentRoomCode(c *gin.Context) string {
	return c.GetString(ctxRoomCode)
}

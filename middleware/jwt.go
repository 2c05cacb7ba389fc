package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/Consistent-coder/QuizMaster/config"
	"github.com/Consistent-coder/QuizMaster/models"
	"github.com/Consistent-coder/QuizMaster/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// GenerateJWT generates a JWT token for the user
func GenerateJWT(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(), // expiry 24h
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// ExtractToken pulls the bearer credential from the token cookie or the
// Authorization header, cookie first.
func ExtractToken(c *fiber.Ctx) string {
	if cookie := c.Cookies("token"); cookie != "" {
		return cookie
	}

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[len("Bearer "):]
	}

	return ""
}

// VerifyToken parses and validates a signed token and returns the user id
// it carries.
func VerifyToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return 0, utils.Unauthorized("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["id"] == nil {
		return 0, utils.Unauthorized("Invalid token payload")
	}

	// JWT number claims decode as float64
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, utils.Unauthorized("Invalid token payload")
	}

	return uint(id), nil
}

// Protected is a middleware that requires a valid token belonging to an
// existing user. It stores the user id and role in the request context.
func Protected(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ExtractToken(c)
		if tokenString == "" {
			return ErrorResponse(c, utils.Unauthorized("Unauthorized Access."))
		}

		userID, err := VerifyToken(tokenString)
		if err != nil {
			return ErrorResponse(c, err)
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return ErrorResponse(c, utils.Unauthorized("Unauthorized Access."))
		}

		c.Locals("userId", user.ID)
		c.Locals("userRole", user.Role)
		return c.Next()
	}
}

// AdminOnly must run after Protected.
func AdminOnly(c *fiber.Ctx) error {
	role, ok := c.Locals("userRole").(string)
	if !ok || role != models.RoleAdmin {
		return ErrorResponse(c, utils.Forbidden("Admin access only!"))
	}
	return c.Next()
}

package middleware

import (
	"github.com/gofiber/fiber/v2"

	authutils "equip-repair-backend/lib/utils/auth-utils"
	"equip-repair-backend/models"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if userID, ok := sub.(string); ok {
			return userID
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.PositionRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.PositionRole(stringRole)
		}
	}
	return ""
}

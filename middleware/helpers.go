package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/golang-jwt/jwt/v4"
)

func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return 0, errors.New("user claims not found in context")
	}

	userIDClaim, ok := claims[jwtClaimUserID]
	if !ok {
		return 0, fmt.Errorf("missing %q claim in token", jwtClaimUserID)
	}

	// JSON numbers decode to float64; tolerate string-encoded IDs too.
	switch v := userIDClaim.(type) {
	case float64:
		if v != float64(int(v)) || int(v) <= 0 {
			return 0, fmt.Errorf("invalid user ID in %q claim", jwtClaimUserID)
		}
		return int(v), nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("invalid user ID in %q claim", jwtClaimUserID)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("invalid type for %q claim: %T", jwtClaimUserID, userIDClaim)
	}
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context")
	}

	roleClaim, ok := claims[jwtClaimRole]
	if !ok {
		return "", fmt.Errorf("missing %q claim in token", jwtClaimRole)
	}
	roleStr, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for %q claim: %T", jwtClaimRole, roleClaim)
	}

	role := models.UserRole(roleStr)
	switch role {
	case models.RoleAdmin, models.RoleOrganizer, models.RoleDelegate:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
}

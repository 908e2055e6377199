package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kerjaku_backend/internals/configs"
	authModel "kerjaku_backend/internals/features/users/auth/model"
	userModel "kerjaku_backend/internals/features/users/user/model"
	helper "kerjaku_backend/internals/helpers"
)

const (
	accessTTLDefault  = 15 * time.Minute
	refreshTTLDefault = 7 * 24 * time.Hour
)

func accessTTL() time.Duration {
	if v := configs.GetEnv("ACCESS_TOKEN_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
	}
	return accessTTLDefault
}

func refreshTTL() time.Duration {
	if v := configs.GetEnv("REFRESH_TOKEN_TTL_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * 24 * time.Hour
		}
	}
	return refreshTTLDefault
}

// computeRefreshHash hashes a refresh token with HMAC-SHA256 keyed on the
// refresh secret. Only the hash touches the database.
func computeRefreshHash(token string) []byte {
	mac := hmac.New(sha256.New, []byte(configs.JWTRefreshSecret))
	mac.Write([]byte(token))
	return mac.Sum(nil)
}

func buildAccessClaims(u *userModel.UserModel, now time.Time) jwt.MapClaims {
	claims := jwt.MapClaims{
		"id":        u.ID.String(),
		"user_name": u.UserName,
		"role":      u.Role,
		"typ":       "access",
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTL()).Unix(),
	}
	if u.OrganizationID != nil {
		claims["org_id"] = u.OrganizationID.String()
	}
	return claims
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": userID.String(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(refreshTTL()).Unix(),
	}
}

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IssueTokenPair signs a new access + refresh token for the user, persists
// the refresh hash, and sets the auth cookies.
func IssueTokenPair(db *gorm.DB, c *fiber.Ctx, u *userModel.UserModel) (*TokenPair, error) {
	now := time.Now().UTC()

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(u, now)).
		SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(u.ID, now)).
		SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return nil, err
	}

	row := &authModel.RefreshTokenModel{
		UserID:    u.ID,
		TokenHash: computeRefreshHash(refresh),
		ExpiresAt: now.Add(refreshTTL()),
		UserAgent: strptr(c.Get("User-Agent")),
		IP:        strptr(c.IP()),
	}
	if err := db.Create(row).Error; err != nil {
		return nil, err
	}

	setAuthCookies(c, access, refresh, now)
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func setAuthCookies(c *fiber.Ctx, access, refresh string, now time.Time) {
	secure := configs.GetEnv("COOKIE_SECURE", "true") == "true"
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    access,
		Expires:  now.Add(accessTTL()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		Expires:  now.Add(refreshTTL()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/api/auth",
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: expired, HTTPOnly: true, Path: "/"})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: expired, HTTPOnly: true, Path: "/api/auth"})
}

// ========================== REFRESH TOKEN ==========================
// POST /api/auth/refresh-token
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshCookie := helper.GetRefreshTokenFromCookie(c)
	if refreshCookie == "" {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token missing")
	}

	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	// the hash must still be live in the DB (not rotated away, not revoked)
	hash := computeRefreshHash(refreshCookie)
	var row authModel.RefreshTokenModel
	err = db.Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", hash, time.Now().UTC()).
		Limit(1).Find(&row).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if row.ID == uuid.Nil || row.UserID != userID {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token not recognized")
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive || user.IsDeleted {
		return helper.Error(c, fiber.StatusForbidden, "Account is disabled")
	}

	// ROTATE: retire the old token before issuing the new pair
	if err := db.Delete(&row).Error; err != nil {
		log.Printf("[ERROR] refresh rotation delete failed: %v", err)
	}

	pair, err := IssueTokenPair(db, c, &user)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to issue new tokens")
	}

	return helper.Success(c, "Token refreshed", fiber.Map{
		"access_token": pair.AccessToken,
	})
}

// RevokeAllRefreshTokens revokes every live refresh token for a user.
func RevokeAllRefreshTokens(db *gorm.DB, userID uuid.UUID) error {
	now := time.Now().UTC()
	return db.Model(&authModel.RefreshTokenModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

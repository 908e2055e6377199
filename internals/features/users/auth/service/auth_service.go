package service

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authDTO "kerjaku_backend/internals/features/users/auth/dto"
	authModel "kerjaku_backend/internals/features/users/auth/model"
	userModel "kerjaku_backend/internals/features/users/user/model"
	helper "kerjaku_backend/internals/helpers"
)

var validate = validator.New()

// ========================== REGISTER ==========================
// POST /api/auth/register
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var count int64
	if err := db.Model(&userModel.UserModel{}).
		Where("lower(email) = ? OR lower(user_name) = ?", req.Email, strings.ToLower(req.UserName)).
		Count(&count).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusConflict, "Email or username already registered")
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := &userModel.UserModel{
		UserName: req.UserName,
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashed,
		IsActive: true,
	}
	user.SetDefaultValues()

	// user + default compliance settings land together or not at all
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(userModel.DefaultComplianceSettings(user.ID)).Error
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	user.Password = ""
	return helper.SuccessWithCode(c, fiber.StatusCreated, "User registered successfully", user)
}

// ========================== LOGIN ==========================
// POST /api/auth/login
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	ident := strings.ToLower(req.Identifier)
	var user userModel.UserModel
	err := db.Where("(lower(email) = ? OR lower(user_name) = ?) AND is_deleted = ?", ident, ident, false).
		Limit(1).Find(&user).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if user.ID == uuid.Nil || CheckPasswordHash(user.Password, req.Password) != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Account is disabled")
	}

	pair, err := IssueTokenPair(db, c, &user)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to issue tokens")
	}

	user.Password = ""
	return helper.Success(c, "Login successful", fiber.Map{
		"access_token": pair.AccessToken,
		"user":         user,
	})
}

// ========================== LOGOUT ==========================
// POST /api/u/auth/logout
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw != "" {
		expiredAt := accessTokenExpiry(raw)
		entry := authModel.TokenBlacklistModel{Token: raw, ExpiredAt: expiredAt}
		if err := db.Where("token = ?", raw).FirstOrCreate(&entry).Error; err != nil &&
			!errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to blacklist token")
		}
	}

	// retire the refresh session too, when the cookie is present
	if refresh := helper.GetRefreshTokenFromCookie(c); refresh != "" {
		hash := computeRefreshHash(refresh)
		now := time.Now().UTC()
		db.Model(&authModel.RefreshTokenModel{}).
			Where("token_hash = ? AND revoked_at IS NULL", hash).
			Update("revoked_at", now)
	}

	clearAuthCookies(c)
	return helper.Success(c, "Logged out", nil)
}

// accessTokenExpiry reads exp from the (already trusted) access token so the
// blacklist row can be swept once the token would have died anyway.
func accessTokenExpiry(raw string) time.Time {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			return time.Unix(int64(exp), 0).UTC()
		}
	}
	return time.Now().UTC().Add(accessTTLDefault)
}

// ========================== ME ==========================
// GET /api/u/auth/me
func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ? AND is_deleted = ?", userID, false).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}
	user.Password = ""

	var settings userModel.ComplianceSettingsModel
	hasSettings := db.Where("user_id = ?", userID).Limit(1).Find(&settings).Error == nil &&
		settings.UserID == userID

	resp := fiber.Map{"user": user}
	if hasSettings {
		resp["compliance_settings"] = settings
	}

	return helper.Success(c, "OK", resp)
}

package service

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	verifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ichiba_backend/internals/configs"
	"ichiba_backend/internals/features/identity"
	authHelper "ichiba_backend/internals/features/users/auth/helper"
	authModel "ichiba_backend/internals/features/users/auth/model"
	"ichiba_backend/internals/features/users/auth/repository"
	userModel "ichiba_backend/internals/features/users/user/model"
	helper "ichiba_backend/internals/helpers"
	"ichiba_backend/internals/helpers/kvstore"
)

const lineVerifyURL = "https://api.line.me/oauth2/v2.1/verify"

// AuthService issues and revokes sessions for both identity kinds. LINE
// logins never create a users row: the session lives entirely in the JWT
// plus the cached profile.
type AuthService struct {
	DB       *gorm.DB
	Sessions kvstore.Store
	HTTP     *http.Client
}

func NewAuthService(db *gorm.DB, sessions kvstore.Store) *AuthService {
	return &AuthService{
		DB:       db,
		Sessions: sessions,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	}
}

// =======================
// Register / Login (platform)
// =======================

type RegisterRequest struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"` // email or user_name
	Password   string `json:"password"`
}

func (s *AuthService) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.UserName = strings.TrimSpace(req.UserName)

	if err := authHelper.ValidateRegisterInput(req.UserName, req.Email, req.Password); err != nil {
		return err
	}
	if !helper.IsValidEmail(req.Email) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid email address")
	}

	if _, err := repository.FindUserByEmail(s.DB, req.Email); err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing user")
	}

	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		UserName: req.UserName,
		Email:    req.Email,
		Password: hash,
	}
	user.SetDefaultValues()
	if err := repository.CreateUser(s.DB, &user); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.JsonCreated(c, "Registration successful", fiber.Map{
		"user_id":   user.ID,
		"user_name": user.UserName,
		"email":     user.Email,
	})
}

func (s *AuthService) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := authHelper.ValidateLoginInput(req.Identifier, req.Password); err != nil {
		return err
	}

	ident := strings.ToLower(strings.TrimSpace(req.Identifier))
	var user userModel.UserModel
	err := s.DB.Where("email = ? OR user_name = ?", ident, req.Identifier).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is disabled")
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	return s.issueTokens(c, user, "Login successful")
}

// =======================
// Google login
// =======================

type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

func (s *AuthService) LoginGoogle(c *fiber.Ctx) error {
	var req GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.IDToken) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "id_token is required")
	}

	v := verifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google token")
	}
	claims, err := verifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google token")
	}

	user, err := repository.FindUserByGoogleID(s.DB, claims.Sub)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// second chance: existing email account gets linked
		user, err = repository.FindUserByEmail(s.DB, strings.ToLower(claims.Email))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fresh := userModel.UserModel{
				UserName: claims.Name,
				Email:    strings.ToLower(claims.Email),
				Password: uuid.NewString(), // unusable placeholder
				GoogleID: strptr(claims.Sub),
			}
			fresh.SetDefaultValues()
			if cerr := repository.CreateUser(s.DB, &fresh); cerr != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
			}
			user = &fresh
			err = nil
		} else if err == nil {
			if uerr := s.DB.Model(user).Update("google_id", claims.Sub).Error; uerr != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to link Google account")
			}
			user.GoogleID = strptr(claims.Sub)
		}
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is disabled")
	}

	return s.issueTokens(c, *user, "Login successful")
}

// =======================
// LINE login
// =======================

type LineLoginRequest struct {
	IDToken string `json:"id_token"`
}

type lineVerifyResponse struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Error   string `json:"error"`
}

// LoginLine verifies the LIFF id_token against the LINE verify endpoint and
// issues an access token keyed by line_user_id. No database row is created.
func (s *AuthService) LoginLine(c *fiber.Ctx) error {
	var req LineLoginRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.IDToken) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "id_token is required")
	}

	profile, err := s.verifyLineToken(req.IDToken)
	if err != nil {
		log.Printf("[WARN] LINE token verification failed: %v", err)
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid LINE token")
	}

	// Cache the profile so later requests can resolve the identity even when
	// the client only sends the JWT.
	raw, _ := sonic.Marshal(profile)
	if serr := s.Sessions.Set(c.Context(), identity.LineProfileKey(profile.LineUserID), string(raw), refreshTTLDefault); serr != nil {
		log.Printf("[WARN] failed to cache LINE profile: %v", serr)
	}

	secret, err := getJWTSecret()
	if err != nil {
		return err
	}
	now := nowUTC()
	accessToken, err := signClaims(buildLineAccessClaims(profile, now), secret)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign token")
	}
	setAuthCookies(c, accessToken, "", now)

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"access_token": accessToken,
		"auth_type":    identity.AuthTypeLine,
		"profile":      profile,
	})
}

func (s *AuthService) verifyLineToken(idToken string) (identity.LineProfile, error) {
	form := url.Values{}
	form.Set("id_token", idToken)
	form.Set("client_id", configs.LineChannelID)

	resp, err := s.HTTP.PostForm(lineVerifyURL, form)
	if err != nil {
		return identity.LineProfile{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return identity.LineProfile{}, err
	}
	var vr lineVerifyResponse
	if err := sonic.Unmarshal(body, &vr); err != nil {
		return identity.LineProfile{}, err
	}
	if resp.StatusCode != http.StatusOK || vr.Sub == "" {
		if vr.Error != "" {
			return identity.LineProfile{}, errors.New(vr.Error)
		}
		return identity.LineProfile{}, errors.New("LINE verify rejected the token")
	}
	return identity.LineProfile{
		LineUserID:  vr.Sub,
		DisplayName: vr.Name,
		PictureURL:  vr.Picture,
	}, nil
}

// =======================
// Refresh / Logout
// =======================

func (s *AuthService) Refresh(c *fiber.Ctx) error {
	refreshToken := helper.GetRefreshTokenFromCookie(c)
	if refreshToken == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.BodyParser(&body)
		refreshToken = body.RefreshToken
	}
	if refreshToken == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing refresh token")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return err
	}
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid || claims["typ"] != "refresh" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	hash := computeRefreshHash(refreshToken, refreshSecret)
	stored, err := repository.FindRefreshTokenByHash(s.DB, hash)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token revoked or expired")
	}

	user, err := repository.FindUserByID(s.DB, stored.UserID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User no longer exists")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is disabled")
	}

	// rotation: the presented token is single-use
	if err := repository.DeleteRefreshTokenByHash(s.DB, hash); err != nil {
		log.Printf("[WARN] failed to delete rotated refresh token: %v", err)
	}

	return s.issueTokens(c, *user, "Token refreshed")
}

func (s *AuthService) Logout(c *fiber.Ctx) error {
	if raw := helper.GetRawAccessToken(c); raw != "" {
		if err := repository.BlacklistToken(s.DB, raw, resolveBlacklistTTL(raw)); err != nil {
			log.Printf("[WARN] failed to blacklist access token: %v", err)
		}
	}
	if refreshToken := helper.GetRefreshTokenFromCookie(c); refreshToken != "" {
		if refreshSecret, err := getRefreshSecret(); err == nil {
			hash := computeRefreshHash(refreshToken, refreshSecret)
			if derr := repository.DeleteRefreshTokenByHash(s.DB, hash); derr != nil {
				log.Printf("[WARN] failed to revoke refresh token: %v", derr)
			}
		}
	}
	clearAuthCookies(c)
	return helper.JsonOK(c, "Logout successful", nil)
}

// resolveBlacklistTTL keeps the blacklist row alive only as long as the token
// itself could still be accepted.
func resolveBlacklistTTL(raw string) time.Duration {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			if d := time.Until(time.Unix(int64(exp), 0)); d > 0 {
				return d
			}
			return time.Minute
		}
	}
	return accessTTLDefault
}

// =======================
// Token issuing
// =======================

func (s *AuthService) issueTokens(c *fiber.Ctx, user userModel.UserModel, message string) error {
	secret, err := getJWTSecret()
	if err != nil {
		return err
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return err
	}

	now := nowUTC()
	accessToken, err := signClaims(buildAccessClaims(user, now), secret)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign access token")
	}
	refreshToken, err := signClaims(buildRefreshClaims(user.ID, now), refreshSecret)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign refresh token")
	}

	row := authModel.RefreshTokenModel{
		UserID:    user.ID,
		Token:     computeRefreshHash(refreshToken, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(string(c.Request().Header.UserAgent())),
		IP:        strptr(c.IP()),
	}
	if err := repository.CreateRefreshToken(s.DB, &row); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to persist refresh token")
	}

	setAuthCookies(c, accessToken, refreshToken, now)

	return helper.JsonOK(c, message, fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"auth_type":     identity.AuthTypeEmail,
		"user": fiber.Map{
			"user_id":   user.ID,
			"user_name": user.UserName,
			"email":     user.Email,
			"role":      user.Role,
		},
	})
}

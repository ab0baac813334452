package services

import (
	"errors"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ignaciovargasDEV/prode-2026/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Sentinel errors surfaced by session/credential checks.
var (
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrAccountDisabled    = errors.New("cuenta desactivada")
	ErrInvalidSession     = errors.New("sesión inválida")
)

type AuthService struct {
	DB        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB) *AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("❌ JWT_SECRET environment variable not set")
	}

	days := 7
	if v := os.Getenv("JWT_EXPIRES_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	return &AuthService{
		DB:        db,
		jwtSecret: []byte(secret),
		tokenTTL:  time.Duration(days) * 24 * time.Hour,
	}
}

// sessionClaims link a JWT back to its UserSession row, so tokens can be
// revoked by deleting the row.
type sessionClaims struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// userResponse is the sanitized user shape returned by auth endpoints.
type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Area     string `json:"area"`
}

func sanitizeUser(u *models.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Email:    u.Email,
		Nombre:   u.Nombre,
		Apellido: u.Apellido,
		Area:     u.Area,
	}
}

// Register creates a user account and opens a session for it.
func (s *AuthService) Register(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Nombre   string `json:"nombre"`
		Apellido string `json:"apellido"`
		Area     string `json:"area"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if req.Email == "" || req.Password == "" || req.Nombre == "" || req.Apellido == "" || req.Area == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email, password, nombre, apellido and area are required"})
	}
	if len(req.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password must be at least 6 characters"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailRegex.MatchString(email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid email format"})
	}

	var existing models.User
	if err := s.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email already exists"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to register"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to register"})
	}

	user := models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: string(hashed),
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Area:     req.Area,
		IsActive: true,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		log.Printf("❌ [AUTH] Failed to create user %s: %v", email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to register"})
	}

	token, expiresAt, err := s.createSession(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create session"})
	}

	log.Printf("✅ [AUTH] Registered user %s (%s)", email, user.Area)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":      sanitizeUser(&user),
		"token":     token,
		"expiresAt": expiresAt,
	})
}

// Login verifies credentials and opens a session.
func (s *AuthService) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email and password are required"})
	}

	user, err := s.authenticate(strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrAccountDisabled) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "login failed"})
	}

	now := time.Now()
	s.DB.Model(user).Update("last_login", now)

	token, expiresAt, err := s.createSession(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create session"})
	}

	return c.JSON(fiber.Map{
		"user":      sanitizeUser(user),
		"token":     token,
		"expiresAt": expiresAt,
	})
}

// Logout revokes the session behind the presented token.
func (s *AuthService) Logout(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token != "" {
		// best effort: a missing session is not an error on logout
		s.DB.Where("token = ?", token).Delete(&models.UserSession{})
	}
	return c.JSON(fiber.Map{"message": "logout exitoso"})
}

// Me returns the authenticated user (set by the auth middleware).
func (s *AuthService) Me(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
	}
	return c.JSON(fiber.Map{"user": sanitizeUser(user)})
}

// Refresh rotates a still-valid session: the old one is revoked and a fresh
// token is issued.
func (s *AuthService) Refresh(c *fiber.Ctx) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "token is required"})
	}

	user, err := s.ValidateSession(req.Token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token refresh failed"})
	}

	s.DB.Where("token = ?", req.Token).Delete(&models.UserSession{})

	token, expiresAt, err := s.createSession(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create session"})
	}

	return c.JSON(fiber.Map{
		"user":      sanitizeUser(user),
		"token":     token,
		"expiresAt": expiresAt,
	})
}

// Validate reports whether the presented token maps to a live session.
func (s *AuthService) Validate(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"valid": false})
	}
	user, err := s.ValidateSession(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"valid": false})
	}
	return c.JSON(fiber.Map{"valid": true, "user": sanitizeUser(user)})
}

// ValidateSession parses the JWT, checks the backing session row and returns
// the active user. Used by the auth middleware on every secured request.
func (s *AuthService) ValidateSession(token string) (*models.User, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}

	var session models.UserSession
	err = s.DB.Preload("User").
		Where("id = ? AND token = ? AND expires_at > ?", claims.SessionID, token, time.Now()).
		First(&session).Error
	if err != nil {
		return nil, ErrInvalidSession
	}
	if !session.User.IsActive {
		return nil, ErrInvalidSession
	}
	return &session.User, nil
}

// CleanExpiredSessions removes sessions past their expiry. Called by the
// maintenance scheduler.
func (s *AuthService) CleanExpiredSessions() (int64, error) {
	res := s.DB.Where("expires_at < ?", time.Now()).Delete(&models.UserSession{})
	return res.RowsAffected, res.Error
}

func (s *AuthService) authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *AuthService) createSession(userID string) (string, time.Time, error) {
	sessionID := uuid.NewString()
	expiresAt := time.Now().Add(s.tokenTTL)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}).SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}

	session := models.UserSession{
		ID:        sessionID,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// bearerToken extracts the token from an "Authorization: Bearer X" header.
func bearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if auth == "" {
		return ""
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	return strings.TrimSpace(token)
}

package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/almaqal-media/almaqal_api/dto"
	"github.com/almaqal-media/almaqal_api/model"
	"github.com/almaqal-media/almaqal_api/shared"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles admin logins and guards the admin routes. There is no
// public signup; accounts are seeded from env or created by another admin.
type AuthService struct {
	appContext.DefaultService

	sqlSvc *PostgresService
	jwtSvc *JWTService

	storeTimeout time.Duration
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *appContext.Context) error {
	svc.storeTimeout = 5 * time.Second
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)

	if err := svc.seedInitialAdmin(); err != nil {
		return err
	}

	return nil
}

// seedInitialAdmin creates the first admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when the users table is empty, so a fresh deploy is usable
// without touching the database by hand.
func (svc *AuthService) seedInitialAdmin() error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	count, err := svc.sqlSvc.Users().Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Admin",
		Role:         shared.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := svc.sqlSvc.Users().Create(ctx, user); err != nil {
		return err
	}

	log.Printf("Seeded initial admin account: %s", email)
	return nil
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := svc.sqlSvc.Users().GetByEmail(ctx, email)
	if err != nil {
		// Same reply as a bad password; the login form must not leak which
		// addresses have accounts.
		return nil, shared.NewUnauthorizedError(err, "Invalid email or password")
	}

	if !user.IsActive {
		return nil, shared.NewUnauthorizedError(errors.New("account disabled"), "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError(err, "Invalid email or password")
	}

	token, err := svc.jwtSvc.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := svc.sqlSvc.Users().Update(ctx, user); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to record last login")
	}

	return &dto.LoginResponse{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Token:  token,
	}, nil
}

func (svc *AuthService) Me(userID string) (*dto.MeResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	user, err := svc.sqlSvc.Users().Get(ctx, userID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "User not found")
	}

	return &dto.MeResponse{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}, nil
}

// ==================== MIDDLEWARE ====================

func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}

		claims, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid JWT token")
		}

		if claims.UserID == "" {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid user ID in token")
		}

		c.Locals(shared.UserID, claims.UserID)
		c.Locals(shared.UserRole, claims.Role)
		return c.Next()
	}
}

// RequireRole assumes RequiredAuth already ran. Admins pass every role check.
func (svc *AuthService) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, _ := c.Locals(shared.UserRole).(string)
		if userRole != role && userRole != shared.RoleAdmin {
			return shared.ResponseJSON(c, fiber.StatusForbidden, "Forbidden", "Insufficient role")
		}
		return c.Next()
	}
}

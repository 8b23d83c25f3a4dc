package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vadkul/vadkul-backend/config"
	"github.com/vadkul/vadkul-backend/utils"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Profiles is the slice of the profile module auth needs: bootstrap a
// profile for a new user and bump the inviter's counter on referral.
type Profiles interface {
	EnsureProfile(userID uint, displayName string) error
	IncrementInviteCount(userID uint) error
}

type Service interface {
	Register(req RegisterRequest) error
	Login(req LoginRequest) (*TokenPair, *User, error)
	Refresh(refreshToken string) (string, error)
	GetUserByID(userID uint) (User, error)

	ChangePassword(userID uint, currentPassword, newPassword string) error
	RequestPasswordReset(email string) error
	ResetPassword(token string, newPassword string) error
	Logout() error
}

type service struct {
	repo          Repository
	profiles      Profiles
	baseURL       string
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, profiles Profiles, cfg *config.Config) Service {
	return &service{
		repo:          r,
		profiles:      profiles,
		baseURL:       cfg.BaseURL,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// =============================
// Register
// =============================

func (s *service) Register(req RegisterRequest) error {
	if len(req.Password) < 8 {
		return errors.New("weak password: use at least 8 characters")
	}

	if _, err := s.repo.FindByEmail(req.Email); err == nil {
		return errors.New("email already in use")
	}

	role, err := s.repo.FindRoleByName(RoleUser)
	if err != nil {
		return errors.New("invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// Resolve inviter before the write so a bad code fails fast
	var inviter *User
	if req.InviteCode != "" {
		inviter, err = s.repo.FindByInviteCode(strings.TrimSpace(req.InviteCode))
		if err != nil {
			return errors.New("invalid invite code")
		}
	}

	user := &User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		RoleID:       role.ID,
		Status:       "active",
		InviteCode:   generateInviteCode(),
	}
	if inviter != nil {
		user.InvitedBy = &inviter.ID
	}

	if err := s.repo.Create(user); err != nil {
		return err
	}

	if s.profiles != nil {
		if err := s.profiles.EnsureProfile(user.ID, user.FullName); err != nil {
			log.Printf("⚠️ Failed to create profile for user %d: %v", user.ID, err)
		}
		if inviter != nil {
			if err := s.profiles.IncrementInviteCount(inviter.ID); err != nil {
				log.Printf("⚠️ Failed to credit invite for user %d: %v", inviter.ID, err)
			}
		}
	}

	return nil
}

// =============================
// Login
// =============================

func (s *service) Login(req LoginRequest) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.New("wrong email or password")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, errors.New("wrong email or password")
	}

	if user.Status == "inactive" {
		return nil, nil, errors.New("your account is inactive")
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, user, nil
}

func (s *service) generateAccessToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role.RoleName,
		"exp":     time.Now().Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.accessSecret))
}

func (s *service) generateRefreshToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.refreshSecret))
}

// =============================
// Refresh
// =============================

func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil {
		return "", errors.New("invalid token claims")
	}

	userID := uint(claims["user_id"].(float64))
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return "", errors.New("user not found")
	}

	return s.generateAccessToken(&user)
}

// =============================
// Password change / reset
// =============================

func (s *service) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return errors.New("current password is incorrect")
	}

	if len(newPassword) < 8 {
		return errors.New("weak password: use at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(userID, string(hash))
}

func (s *service) RequestPasswordReset(email string) error {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Do not reveal whether the address exists
		return nil
	}

	resetToken := generateSecureToken()
	key := fmt.Sprintf("reset_token:%s", resetToken)

	if err := utils.SetToken(key, fmt.Sprint(user.ID), 15*time.Minute); err != nil {
		return errors.New("could not save reset token")
	}

	log.Printf("🔑 Password reset link for %s: %s/reset-password?token=%s",
		user.Email, s.baseURL, resetToken)
	return nil
}

func (s *service) ResetPassword(token string, newPassword string) error {
	key := fmt.Sprintf("reset_token:%s", token)
	val, err := utils.GetToken(key)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	var userID uint
	if _, err := fmt.Sscan(val, &userID); err != nil {
		return errors.New("invalid token data")
	}

	if len(newPassword) < 8 {
		return errors.New("weak password: use at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(userID, string(hash)); err != nil {
		return errors.New("failed to update password")
	}

	_ = utils.DeleteToken(key)
	return nil
}

func (s *service) Logout() error {
	// JWT is stateless, the client just discards its tokens
	return nil
}

func (s *service) GetUserByID(userID uint) (User, error) {
	return s.repo.FindByID(userID)
}

// =============================
// Helpers
// =============================

func generateSecureToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func generateInviteCode() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}

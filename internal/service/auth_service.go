package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"electroshop/internal/middleware"
	"electroshop/internal/model"
	"electroshop/internal/notify"
	"electroshop/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// resetCodeTTL is how long an issued password-reset code stays valid
const resetCodeTTL = 10 * time.Minute

const tokenTTL = 24 * time.Hour

// DTOs for Request validation
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Name           string `json:"name"`
	WhatsappNumber string `json:"whatsapp_number"`
	LocationID     string `json:"location_id" binding:"omitempty,uuid"`
	IsSuperAdmin   bool   `json:"is_super_admin"`
}

type UpdateProfileRequest struct {
	Name           string `json:"name"`
	WhatsappNumber string `json:"whatsapp_number"`
	Email          string `json:"email" binding:"omitempty,email"`
	Password       string `json:"password" binding:"omitempty,min=6"`
}

type ForgotPasswordRequest struct {
	WhatsappNumber string `json:"whatsapp_number" binding:"required"`
}

type VerifyResetCodeRequest struct {
	WhatsappNumber string `json:"whatsapp_number" binding:"required"`
	Code           string `json:"code" binding:"required,len=6"`
}

type ResetPasswordRequest struct {
	WhatsappNumber string `json:"whatsapp_number" binding:"required"`
	Code           string `json:"code" binding:"required,len=6"`
	NewPassword    string `json:"new_password" binding:"required,min=6"`
}

// UserResponse returns a User without exposing sensitive data
type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	WhatsappNumber string     `json:"whatsapp_number"`
	IsAdmin        bool       `json:"is_admin"`
	IsSuperAdmin   bool       `json:"is_super_admin"`
	LocationID     *uuid.UUID `json:"location_id"`
	LocationName   string     `json:"location_name,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// AuthService owns login, registration, profile updates and the
// password-reset-by-code flow
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, actor *model.User, req RegisterRequest) (*UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	VerifyResetCode(ctx context.Context, req VerifyResetCodeRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type authService struct {
	userRepo  repository.UserRepository
	txManager repository.TransactionManager
	sender    notify.CodeSender
}

func NewAuthService(userRepo repository.UserRepository, txManager repository.TransactionManager, sender notify.CodeSender) AuthService {
	return &authService{userRepo: userRepo, txManager: txManager, sender: sender}
}

func mapUserResponse(user *model.User) *UserResponse {
	res := &UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		WhatsappNumber: user.WhatsappNumber,
		IsAdmin:        user.IsAdmin,
		IsSuperAdmin:   user.IsSuperAdmin,
		LocationID:     user.LocationID,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
	if user.Location != nil {
		res.LocationName = user.Location.Name
	}
	return res
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Role claims are for client display only. Authorization re-derives
	// roles from the users table on every privileged request.
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":            user.ID.String(),
		"email":          user.Email,
		"is_admin":       user.IsAdmin,
		"is_super_admin": user.IsSuperAdmin,
		"iat":            now.Unix(),
		"exp":            now.Add(tokenTTL).Unix(),
	})

	// Signing and verification share the middleware's secret source, so a
	// missing JWT_SECRET fails the same way on both sides
	tokenString, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: tokenString, User: *mapUserResponse(user)}, nil
}

func (s *authService) Register(ctx context.Context, actor *model.User, req RegisterRequest) (*UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrConflict
	}

	var locationID *uuid.UUID
	if req.LocationID != "" {
		id, err := uuid.Parse(req.LocationID)
		if err != nil {
			return nil, ErrNotFound
		}
		locationID = &id
	}

	// Non-super-admins can only register admins for their own store and
	// can never grant the super-admin capability
	isSuperAdmin := req.IsSuperAdmin
	if !actor.IsSuperAdmin {
		locationID = actor.LocationID
		isSuperAdmin = false
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:          req.Email,
		Password:       string(hashed),
		Name:           req.Name,
		WhatsappNumber: req.WhatsappNumber,
		IsAdmin:        true,
		IsSuperAdmin:   isSuperAdmin,
		LocationID:     locationID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return mapUserResponse(user), nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.WhatsappNumber != "" {
		user.WhatsappNumber = req.WhatsappNumber
	}
	if req.Email != "" && req.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
			return nil, ErrConflict
		}
		user.Email = req.Email
	}

	// Rehash only when the password itself changes
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return mapUserResponse(user), nil
}

func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return mapUserResponse(user), nil
}

func (s *authService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapUserResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *authService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.userRepo.Delete(ctx, id)
}

// generateResetCode draws a 6-digit numeric code from crypto/rand
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := n.String()
	for len(code) < 6 {
		code = "0" + code
	}
	return code, nil
}

func (s *authService) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	user, err := s.userRepo.FindByWhatsapp(ctx, req.WhatsappNumber)
	if err != nil {
		// Generic ack either way so the endpoint cannot enumerate accounts
		return nil
	}

	code, err := generateResetCode()
	if err != nil {
		return err
	}

	expires := time.Now().Add(resetCodeTTL)
	user.ResetPasswordCode = &code
	user.ResetPasswordExpires = &expires
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return s.sender.SendResetCode(ctx, user.WhatsappNumber, code)
}

// resetCodeValid checks the two conditions gating a reset: the stored code
// matches and its expiry is still in the future
func resetCodeValid(user *model.User, code string, now time.Time) bool {
	if user.ResetPasswordCode == nil || user.ResetPasswordExpires == nil {
		return false
	}
	return *user.ResetPasswordCode == code && user.ResetPasswordExpires.After(now)
}

func (s *authService) VerifyResetCode(ctx context.Context, req VerifyResetCodeRequest) error {
	user, err := s.userRepo.FindByWhatsapp(ctx, req.WhatsappNumber)
	if err != nil {
		return ErrInvalidOrExpiredCode
	}
	if !resetCodeValid(user, req.Code, time.Now()) {
		return ErrInvalidOrExpiredCode
	}
	return nil
}

// ResetPassword re-checks the same match+expiry conditions as
// VerifyResetCode; this call is the real gate, no intermediate
// "verified" state is persisted.
func (s *authService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	user, err := s.userRepo.FindByWhatsapp(ctx, req.WhatsappNumber)
	if err != nil {
		return ErrInvalidOrExpiredCode
	}
	if !resetCodeValid(user, req.Code, time.Now()) {
		return ErrInvalidOrExpiredCode
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		user.Password = string(hashed)
		user.ResetPasswordCode = nil
		user.ResetPasswordExpires = nil
		return s.userRepo.Update(txCtx, user)
	})
}

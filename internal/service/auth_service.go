package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/pkg/jwt"
	"go-inventory-ledger/pkg/validator"
)

const missingRegisterFields = "Missing required fields (username, email, password)"

var errPasswordTooLong = Validation("Password must be at most 72 bytes")

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, userID uint) error
	// Authenticate resolves a session token to its user, rejecting tokens
	// issued before the last login, logout or password reset.
	Authenticate(ctx context.Context, token string) (*model.User, error)
	ResetPassword(ctx context.Context, username, newPassword string) error
	// SetPermissionLevel changes a user's level and ends their current session.
	SetPermissionLevel(ctx context.Context, username string, level int) error
}

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,notblank,max=64"`
	Email    string  `json:"email" validate:"required,notblank,max=120"`
	Password string  `json:"password" validate:"required,notblank"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string            `json:"token"`
	User  model.UserProfile `json:"user"`
}

type authService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	tokens   *jwt.Manager
}

func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, tokens *jwt.Manager) AuthService {
	return &authService{
		db:       db,
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// checkRequired reports blank required fields with msg and any other tag
// failure with the validator's own message.
func checkRequired(req interface{}, msg string) error {
	errs := validator.ValidateStruct(req)
	if len(errs) == 0 {
		return nil
	}
	for _, e := range errs {
		if e.Tag == "required" || e.Tag == "notblank" {
			return Validation(msg)
		}
	}
	return validateInput(req)
}

// hashPassword sets auth's hash. Input over bcrypt's 72 byte limit is a
// validation failure.
func hashPassword(auth *model.Auth, password string) error {
	if err := auth.SetPassword(password); err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return errPasswordTooLong
		}
		return Persistence(err, "")
	}
	return nil
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	if err := checkRequired(req, missingRegisterFields); err != nil {
		return nil, err
	}

	auth := &model.Auth{
		PermissionsLevel: model.PermissionStaff,
		SessionVersion:   uuid.New().String(),
	}
	// Hash before opening the transaction so the connection is not held during bcrypt.
	if err := hashPassword(auth, req.Password); err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.userRepo.WithTx(tx)

		if _, err := users.FindByUsername(ctx, req.Username); err == nil {
			return Conflict(fmt.Sprintf("User with username %q already exists.", req.Username))
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if _, err := users.FindByEmail(ctx, req.Email); err == nil {
			return Conflict(fmt.Sprintf("User with email %q already exists.", req.Email))
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := users.Create(ctx, user); err != nil {
			return err
		}
		auth.UserID = user.ID
		return users.CreateAuth(ctx, auth)
	})
	if err != nil {
		return nil, Persistence(err, "Username or email already exists.")
	}

	user.Auth = auth
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := checkRequired(req, "Username and password are required"); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, Persistence(err, "")
	}
	if user.Auth == nil || !user.Auth.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	// Single session: a new login invalidates tokens issued earlier.
	version := uuid.New().String()
	if err := s.userRepo.UpdateSessionVersion(ctx, user.ID, version); err != nil {
		return nil, Persistence(err, "")
	}
	user.Auth.SessionVersion = version

	token, err := s.tokens.GenerateToken(user.ID, user.Username, user.Auth.PermissionsLevel, version)
	if err != nil {
		return nil, Persistence(err, "")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToProfile(),
	}, nil
}

func (s *authService) Logout(ctx context.Context, userID uint) error {
	if err := s.userRepo.UpdateSessionVersion(ctx, userID, uuid.New().String()); err != nil {
		return Persistence(err, "")
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrMissingToken) {
			return nil, &Error{Kind: KindUnauthorized, Message: "Authentication required", Err: err}
		}
		return nil, &Error{Kind: KindUnauthorized, Message: "Invalid or expired token", Err: err}
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, Persistence(err, "")
	}
	if user.Auth == nil || user.Auth.SessionVersion != claims.SessionVersion {
		return nil, ErrSessionExpired
	}
	return user, nil
}

func (s *authService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if username == "" || newPassword == "" {
		return Validation("Username and new password are required")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("User not found")
		}
		return Persistence(err, "")
	}

	auth := &model.Auth{}
	if err := hashPassword(auth, newPassword); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.userRepo.WithTx(tx)
		if err := users.UpdatePassword(ctx, user.ID, auth.PasswordHash); err != nil {
			return err
		}
		return users.UpdateSessionVersion(ctx, user.ID, uuid.New().String())
	})
	if err != nil {
		return Persistence(err, "")
	}
	return nil
}

func (s *authService) SetPermissionLevel(ctx context.Context, username string, level int) error {
	if level < model.PermissionStaff || level > model.PermissionAdmin {
		return Validation(fmt.Sprintf("Permission level must be between %d and %d", model.PermissionStaff, model.PermissionAdmin))
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("User not found")
		}
		return Persistence(err, "")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.userRepo.WithTx(tx)
		if err := users.UpdatePermissionsLevel(ctx, user.ID, level); err != nil {
			return err
		}
		return users.UpdateSessionVersion(ctx, user.ID, uuid.New().String())
	})
	if err != nil {
		return Persistence(err, "")
	}
	return nil
}

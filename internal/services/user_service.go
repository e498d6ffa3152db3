package services

import (
	"context"

	"grounds-backend/internal/apperrors"
	"grounds-backend/internal/auth"
	"grounds-backend/internal/cache"
	"grounds-backend/internal/models"
	"grounds-backend/internal/repositories"
)

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
	}
}

func (s *UserService) CreateUser(ctx context.Context, u *models.User) error {
	// Hash password if provided
	if u.PasswordHash != "" {
		hashedPassword, err := auth.HashPassword(u.PasswordHash)
		if err != nil {
			return err
		}
		u.PasswordHash = hashedPassword
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return err
	}
	cache.InvalidateUserCaches(ctx)
	return nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

// ListUsers returns all users
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

// UpdateUser updates an existing user
func (s *UserService) UpdateUser(ctx context.Context, user *models.User) error {
	// If password is provided, hash it
	if user.PasswordHash != "" {
		hashedPassword, err := auth.HashPassword(user.PasswordHash)
		if err != nil {
			return err
		}
		user.PasswordHash = hashedPassword
	}
	if err := s.Repo.Update(ctx, user); err != nil {
		return err
	}
	cache.InvalidateUserCaches(ctx)
	return nil
}

// DeleteUser deletes a user. The last active admin cannot be removed.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == "admin" {
		count, err := s.Repo.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if count <= 1 {
			return apperrors.New(apperrors.Validation, "cannot delete the last admin account")
		}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateUserCaches(ctx)
	return nil
}

// Signup creates a new user with hashed password
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	// Validate input
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, apperrors.New(apperrors.Validation, "name, email, and password are required")
	}

	// Check if user already exists
	if existing, err := s.Repo.GetByEmail(ctx, req.Email); err == nil && existing.ID != 0 {
		return nil, apperrors.New(apperrors.Validation, "user with this email already exists")
	}

	// Hash password
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// Create user
	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Generate JWT token
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  user,
	}, nil
}

// Login authenticates a user and returns a JWT token
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	// Validate input
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.New(apperrors.Validation, "email and password are required")
	}

	// Bcrypt is the slow part; a cache hit skips it for repeat logins
	if userID, ok := cache.GetCachedAuth(ctx, req.Email, req.Password); ok {
		if user, err := s.Repo.Get(ctx, int(userID)); err == nil && user.IsActive {
			token, err := s.JWTManager.GenerateToken(user)
			if err != nil {
				return nil, err
			}
			return &models.AuthResponse{Token: token, User: user}, nil
		}
	}

	// Get user by email
	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.New(apperrors.Authentication, "invalid email or password")
	}

	// Verify password
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.New(apperrors.Authentication, "invalid email or password")
	}

	if !user.IsActive {
		return nil, apperrors.New(apperrors.Authentication, "account suspended")
	}

	cache.CacheAuth(ctx, req.Email, req.Password, int64(user.ID))

	// Generate JWT token
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  user,
	}, nil
}

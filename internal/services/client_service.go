package services

import (
	"context"
	"strconv"

	"grounds-backend/internal/apperrors"
	"grounds-backend/internal/audit"
	"grounds-backend/internal/auth"
	"grounds-backend/internal/cache"
	"grounds-backend/internal/models"
	"grounds-backend/internal/repositories"
)

const auditEntityClient = "client"

// ClientService manages portal client accounts. Access codes are generated
// server-side, shown once to the office user, and stored hashed.
type ClientService struct {
	Repo       *repositories.ClientAccountRepository
	JWTManager *auth.JWTManager
	Recorder   *audit.Recorder
}

func NewClientService(repo *repositories.ClientAccountRepository, jwtManager *auth.JWTManager, recorder *audit.Recorder) *ClientService {
	return &ClientService{Repo: repo, JWTManager: jwtManager, Recorder: recorder}
}

// CreateClient creates a portal account and returns the plaintext access
// code exactly once
func (s *ClientService) CreateClient(ctx context.Context, c *models.ClientAccount, actor audit.Actor) (string, error) {
	if c.Name == "" || c.Email == "" {
		return "", apperrors.New(apperrors.Validation, "name and email are required")
	}
	if existing, err := s.Repo.GetByEmail(ctx, c.Email); err == nil && existing.ID != 0 {
		return "", apperrors.New(apperrors.Validation, "client with this email already exists")
	}

	code, err := auth.GenerateAccessCode()
	if err != nil {
		return "", err
	}
	hashed, err := auth.HashPassword(code)
	if err != nil {
		return "", err
	}
	c.AccessCode = hashed

	if err := s.Repo.Create(ctx, c); err != nil {
		return "", err
	}
	cache.InvalidateClientCaches(ctx)
	if err := s.Recorder.TrackCreate(ctx, auditEntityClient, strconv.Itoa(c.ID), c, actor); err != nil {
		return "", err
	}
	return code, nil
}

func (s *ClientService) GetClient(ctx context.Context, id int) (*models.ClientAccount, error) {
	return s.Repo.Get(ctx, id)
}

// ListClients returns all portal accounts
func (s *ClientService) ListClients(ctx context.Context) ([]*models.ClientAccount, error) {
	return s.Repo.List(ctx)
}

// UpdateClient applies the update and records the per-field diff
func (s *ClientService) UpdateClient(ctx context.Context, c *models.ClientAccount, actor audit.Actor) error {
	if c.Name == "" || c.Email == "" {
		return apperrors.New(apperrors.Validation, "name and email are required")
	}
	before, err := s.Repo.Get(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return err
	}
	cache.InvalidateClientCaches(ctx)
	return s.Recorder.TrackUpdate(ctx, auditEntityClient, strconv.Itoa(c.ID), before, c, actor)
}

// RotateAccessCode invalidates the old code and returns the new one once
func (s *ClientService) RotateAccessCode(ctx context.Context, id int, actor audit.Actor) (string, error) {
	code, err := auth.GenerateAccessCode()
	if err != nil {
		return "", err
	}
	hashed, err := auth.HashPassword(code)
	if err != nil {
		return "", err
	}
	if err := s.Repo.RotateAccessCode(ctx, id, hashed); err != nil {
		return "", err
	}
	cache.InvalidateClientCaches(ctx)
	return code, nil
}

// DeleteClient removes a portal account, keeping its final snapshot in the
// audit trail
func (s *ClientService) DeleteClient(ctx context.Context, id int, actor audit.Actor) error {
	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateClientCaches(ctx)
	return s.Recorder.TrackDelete(ctx, auditEntityClient, strconv.Itoa(id), c, actor)
}

// PortalLogin authenticates a portal client with email + access code
func (s *ClientService) PortalLogin(ctx context.Context, req *models.PortalLoginRequest) (string, *models.ClientAccount, error) {
	if req.Email == "" || req.AccessCode == "" {
		return "", nil, apperrors.New(apperrors.Validation, "email and access code are required")
	}

	client, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, apperrors.New(apperrors.Authentication, "invalid email or access code")
	}
	if !auth.VerifyPassword(client.AccessCode, req.AccessCode) {
		return "", nil, apperrors.New(apperrors.Authentication, "invalid email or access code")
	}
	if !client.IsActive {
		return "", nil, apperrors.New(apperrors.Authentication, "portal access disabled")
	}

	token, err := s.JWTManager.GenerateClientToken(client, false)
	if err != nil {
		return "", nil, err
	}
	return token, client, nil
}

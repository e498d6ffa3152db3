package middleware

import (
	"context"
	"net/http"
	"strings"

	"grounds-backend/internal/auth"
	"grounds-backend/internal/repositories"
)

type contextKey string

const UserIDKey contextKey = "user_id"
const EmailKey contextKey = "email"
const RoleKey contextKey = "role"
const UserNameKey contextKey = "user_name"
const ClientIDKey contextKey = "client_id"
const ClientNameKey contextKey = "client_name"

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	userRepo   *repositories.UserRepository
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, userRepo *repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		userRepo:   userRepo,
	}
}

// Authenticate is a middleware that validates JWT tokens
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		token := parts[1]
		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		// Check database for current user status (for immediate permission updates)
		user, err := m.userRepo.Get(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "User not found", http.StatusUnauthorized)
			return
		}

		// Check if user is active (from database, not token)
		if !user.IsActive {
			http.Error(w, "Account suspended. Please contact administrator.", http.StatusForbidden)
			return
		}

		// Add user info to context (using database values for real-time updates)
		ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
		ctx = context.WithValue(ctx, EmailKey, user.Email)
		ctx = context.WithValue(ctx, RoleKey, user.Role)
		ctx = context.WithValue(ctx, UserNameKey, user.Name)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts user ID from request context
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// GetEmailFromContext extracts email from request context
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}

// GetRoleFromContext extracts role from request context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// GetUserNameFromContext extracts the display name from request context
func GetUserNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(UserNameKey).(string)
	return name, ok
}

// GetClientIDFromContext extracts the portal client ID from request context
func GetClientIDFromContext(ctx context.Context) (int, bool) {
	clientID, ok := ctx.Value(ClientIDKey).(int)
	return clientID, ok
}

// RequireRole is a middleware that ensures the user has one of the allowed roles
func (m *AuthMiddleware) RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// First authenticate
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
				return
			}

			token := parts[1]
			claims, err := m.jwtManager.ValidateToken(token)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			// Check database for current user status (for immediate permission updates)
			user, err := m.userRepo.Get(r.Context(), claims.UserID)
			if err != nil {
				http.Error(w, "User not found", http.StatusUnauthorized)
				return
			}

			// Check if user is active (from database)
			if !user.IsActive {
				http.Error(w, "Account suspended. Please contact administrator.", http.StatusForbidden)
				return
			}

			// Check if user has one of the allowed roles (from database)
			hasRole := false
			for _, role := range allowedRoles {
				if user.Role == role {
					hasRole = true
					break
				}
			}

			if !hasRole {
				http.Error(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
				return
			}

			// Add user info to context (using database values)
			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, EmailKey, user.Email)
			ctx = context.WithValue(ctx, RoleKey, user.Role)
			ctx = context.WithValue(ctx, UserNameKey, user.Name)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin is a middleware that ensures the user has admin role
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole("admin")(next)
}

// RequireManager allows admins and managers but not workers
func (m *AuthMiddleware) RequireManager(next http.Handler) http.Handler {
	return m.RequireRole("admin", "manager")(next)
}

// ClientAuthMiddleware validates portal client tokens. The portal runs on
// a separate listener and never accepts employee tokens.
type ClientAuthMiddleware struct {
	jwtManager *auth.JWTManager
	clientRepo *repositories.ClientAccountRepository
}

func NewClientAuthMiddleware(jwtManager *auth.JWTManager, clientRepo *repositories.ClientAccountRepository) *ClientAuthMiddleware {
	return &ClientAuthMiddleware{
		jwtManager: jwtManager,
		clientRepo: clientRepo,
	}
}

// Authenticate validates a portal client JWT token
func (m *ClientAuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		claims, err := m.jwtManager.ValidateClientToken(parts[1])
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		// The office can cut portal access at any time
		client, err := m.clientRepo.Get(r.Context(), claims.ClientID)
		if err != nil {
			http.Error(w, "Client not found", http.StatusUnauthorized)
			return
		}
		if !client.IsActive {
			http.Error(w, "Portal access disabled. Please contact the office.", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), ClientIDKey, client.ID)
		ctx = context.WithValue(ctx, ClientNameKey, client.Name)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

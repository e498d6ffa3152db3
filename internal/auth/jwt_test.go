package auth

import (
	"testing"

	"grounds-backend/internal/config"
	"grounds-backend/internal/models"
)

func testManager() *JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.Issuer = "grounds-backend-test"
	return NewJWTManager(cfg)
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := testManager()
	user := &models.User{ID: 7, Email: "marie@vert-paysage.fr", Role: "manager", IsActive: true}

	token, err := m.GenerateToken(user)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 7 || claims.Email != user.Email || claims.Role != "manager" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := testManager()
	token, err := m.GenerateToken(&models.User{ID: 1, Email: "a@b.fr"})
	if err != nil {
		t.Fatal(err)
	}

	other := &config.Config{}
	other.JWT.Secret = "different-secret"
	if _, err := NewJWTManager(other).ValidateToken(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestClientTokenRoundTrip(t *testing.T) {
	m := testManager()
	client := &models.ClientAccount{ID: 3, Email: "syndic@copro.fr", Name: "Copro Les Pins"}

	token, err := m.GenerateClientToken(client, false)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := m.ValidateClientToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.ClientID != 3 || !claims.IsClient {
		t.Errorf("claims = %+v", claims)
	}
}

func TestEmployeeTokenRejectedByPortal(t *testing.T) {
	m := testManager()
	token, err := m.GenerateToken(&models.User{ID: 2, Email: "paul@vert-paysage.fr", Role: "admin", IsActive: true})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.ValidateClientToken(token); err == nil {
		t.Error("employee token passed portal validation")
	}
}

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mherrero/mimapa-be/internal/models"
)

func TestGenerateParseRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", "mimapa-test", 30*time.Minute)
	user := models.User{Username: "alice@example.com", Role: models.RoleAdmin}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != user.Username {
		t.Errorf("subject = %q, want %q", claims.Subject, user.Username)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("role = %q, want %q", claims.Role, models.RoleAdmin)
	}
	if claims.Issuer != "mimapa-test" {
		t.Errorf("issuer = %q, want mimapa-test", claims.Issuer)
	}
}

func TestParseExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", "mimapa-test", -time.Minute)

	token, err := manager.Generate(models.User{Username: "bob", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := manager.Parse(token); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("parse expired token: err = %v, want ErrTokenExpired", err)
	}
}

func TestParseWrongSecret(t *testing.T) {
	issuing := NewTokenManager("secret-a", "mimapa-test", 30*time.Minute)
	verifying := NewTokenManager("secret-b", "mimapa-test", 30*time.Minute)

	token, err := issuing.Generate(models.User{Username: "carol", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifying.Parse(token); err == nil {
		t.Fatal("parse with wrong secret succeeded")
	}
}

func TestParseMalformedToken(t *testing.T) {
	manager := NewTokenManager("test-secret", "mimapa-test", 30*time.Minute)
	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := manager.Parse(token); err == nil {
			t.Errorf("parse %q succeeded", token)
		}
	}
}

package auth

import (
	"testing"

	"rawstock/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	user := domain.User{ID: 12, Username: "planner", Email: "planner@example.com", Role: domain.RoleAdmin}
	token, err := GenerateToken("test-secret", user)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 12 || claims.Email != "planner@example.com" || claims.Role != domain.RoleAdmin {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", domain.User{ID: 1, Role: domain.RoleUser})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("secret", "not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "s3cret" {
		t.Fatal("password stored in plain text")
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}

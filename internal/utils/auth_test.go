package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("wrong password accepted")
	}
}

func TestSignJWTRoundtrip(t *testing.T) {
	token, err := SignJWT("secret", "user-123", "admin", 60)
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not parse: %v", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		t.Fatal("claims are not utils.Claims")
	}
	if claims.UserID != "user-123" {
		t.Errorf("uid = %q", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("role = %q", claims.Role)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Error("expiry/issued-at not set")
	}
}

func TestSignJWTWrongSecret(t *testing.T) {
	token, err := SignJWT("secret", "user-123", "user", 60)
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}

	_, err = jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil {
		t.Error("token verified with the wrong secret")
	}
}

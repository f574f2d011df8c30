package utilities

import (
	"testing"

	"memneo-backend/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	user := &model.User{ID: 7, Name: "Ana", Email: "ana@example.com"}

	accessToken, refreshToken, err := GenerateTokens(user)
	if err != nil {
		t.Fatalf("GenerateTokens: %v", err)
	}
	if accessToken == refreshToken {
		t.Fatal("access and refresh tokens must differ")
	}

	claims, err := ValidateToken(accessToken, false)
	if err != nil {
		t.Fatalf("ValidateToken(access): %v", err)
	}
	if claims.UserID != 7 || claims.Email != "ana@example.com" {
		t.Errorf("claims = %+v", claims)
	}

	// A refresh token must not pass as an access token and vice versa.
	if _, err := ValidateToken(refreshToken, false); err == nil {
		t.Error("refresh token accepted as access token")
	}
	if _, err := ValidateToken(accessToken, true); err == nil {
		t.Error("access token accepted as refresh token")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token", false); err == nil {
		t.Error("malformed token accepted")
	}
	if _, err := ValidateToken("", false); err == nil {
		t.Error("empty token accepted")
	}
}

func TestRefreshTokens(t *testing.T) {
	user := &model.User{ID: 9, Name: "Bia", Email: "bia@example.com"}
	_, refreshToken, err := GenerateTokens(user)
	if err != nil {
		t.Fatalf("GenerateTokens: %v", err)
	}

	newAccess, newRefresh, err := RefreshTokens(refreshToken)
	if err != nil {
		t.Fatalf("RefreshTokens: %v", err)
	}
	claims, err := ValidateToken(newAccess, false)
	if err != nil {
		t.Fatalf("ValidateToken(new access): %v", err)
	}
	if claims.UserID != 9 {
		t.Errorf("refreshed claims user = %d, want 9", claims.UserID)
	}
	if _, err := ValidateToken(newRefresh, true); err != nil {
		t.Errorf("new refresh token invalid: %v", err)
	}

	if _, _, err := RefreshTokens("bogus"); err == nil {
		t.Error("bogus refresh token accepted")
	}
}

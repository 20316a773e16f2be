package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("user-1", "maria@example.com", RoleClient)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	userID, email, role, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if userID != "user-1" || email != "maria@example.com" || role != RoleClient {
		t.Fatalf("claims mismatch: %q %q %q", userID, email, role)
	}
}

func TestGenerateTokenRequiresUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := GenerateToken("", "maria@example.com", RoleClient); err == nil {
		t.Fatalf("expected error for empty userID")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, _, _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := GenerateToken("user-1", "maria@example.com", RoleClient)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-b")
	if _, _, _, err := ValidateToken(token); err == nil {
		t.Fatalf("expected error for token signed with a different secret")
	}
}

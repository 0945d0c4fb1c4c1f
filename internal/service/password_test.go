package service

import "testing"

func TestCheckPasswordPolicy(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"valid", "StrongPass1", true},
		{"too short", "Ab1", false},
		{"no upper", "strongpass1", false},
		{"no lower", "STRONGPASS1", false},
		{"no digit", "StrongPass", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := CheckPasswordPolicy(tc.password)
			if tc.wantOK && msg != "" {
				t.Fatalf("expected policy pass, got %q", msg)
			}
			if !tc.wantOK && msg == "" {
				t.Fatalf("expected policy failure")
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("StrongPass1", 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "StrongPass1" || hash == "" {
		t.Fatalf("hash must not be empty or the plaintext")
	}
	if !VerifyPassword("StrongPass1", hash) {
		t.Fatalf("expected verification to succeed")
	}
	if VerifyPassword("WrongPass1", hash) {
		t.Fatalf("expected verification to fail for wrong password")
	}
}

func TestHashPassword_ClampsCost(t *testing.T) {
	hash, err := HashPassword("StrongPass1", 99)
	if err != nil {
		t.Fatalf("hash password with invalid cost: %v", err)
	}
	if !VerifyPassword("StrongPass1", hash) {
		t.Fatalf("expected verification to succeed")
	}
}

package user

import (
	"strings"
	"testing"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("Maria Silva", "  Maria.Silva@Example.COM ")
	if err != nil {
		t.Fatalf("NewUser returned error: %v", err)
	}
	if u.ID == "" {
		t.Error("expected generated ID")
	}
	if u.Email != "maria.silva@example.com" {
		t.Errorf("email not normalised: %q", u.Email)
	}
	if !u.Active {
		t.Error("new user should be active")
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
}

func TestNewUserValidation(t *testing.T) {
	cases := []struct {
		name  string
		nome  string
		email string
	}{
		{"empty nome", "", "a@b.com"},
		{"empty email", "Maria", ""},
		{"missing at sign", "Maria", "not-an-address"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewUser(tc.nome, tc.email); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	got := NormalizeEmail("  Adv@Escritorio.ADV.br\t")
	if got != "adv@escritorio.adv.br" {
		t.Errorf("NormalizeEmail = %q", got)
	}
	if strings.ContainsAny(got, " \t") {
		t.Error("whitespace should be trimmed")
	}
}

//Personal.AI order the ending

package processo

import (
	"testing"
	"time"
)

const validNumero = "0001234-56.2024.4.01.3300"

func TestValidNumero(t *testing.T) {
	cases := []struct {
		numero string
		want   bool
	}{
		{validNumero, true},
		{"1234567-89.2023.8.05.0001", true},
		{"", false},
		{"0001234-56.2024.4.01", false},
		{"0001234.56.2024.4.01.3300", false},
		{"abc1234-56.2024.4.01.3300", false},
		{" 0001234-56.2024.4.01.3300", false},
	}
	for _, tc := range cases {
		if got := ValidNumero(tc.numero); got != tc.want {
			t.Errorf("ValidNumero(%q) = %v, want %v", tc.numero, got, tc.want)
		}
	}
}

func TestNewProcesso(t *testing.T) {
	p, err := NewProcesso(" "+validNumero+" ", "user-1")
	if err != nil {
		t.Fatalf("NewProcesso returned error: %v", err)
	}
	if p.Numero != validNumero {
		t.Errorf("numero not trimmed: %q", p.Numero)
	}
	if p.Status != StatusActive {
		t.Errorf("new processo status = %q, want active", p.Status)
	}
	for field, got := range map[string]string{
		"classe":   p.Classe,
		"assunto":  p.Assunto,
		"tribunal": p.Tribunal,
		"comarca":  p.Comarca,
	} {
		if got != NotInformed {
			t.Errorf("%s = %q, want sentinel", field, got)
		}
	}
	if p.DataSentenca != nil || p.PrazoRecurso != nil {
		t.Error("date fields should start nil, not zero")
	}
}

func TestNewProcessoValidation(t *testing.T) {
	if _, err := NewProcesso("", "user-1"); err == nil {
		t.Error("expected error for empty numero")
	}
	if _, err := NewProcesso("not-a-number", "user-1"); err == nil {
		t.Error("expected error for malformed numero")
	}
	if _, err := NewProcesso(validNumero, ""); err == nil {
		t.Error("expected error for empty user ID")
	}
}

func TestSetStatus(t *testing.T) {
	p, _ := NewProcesso(validNumero, "user-1")

	if err := p.SetStatus(StatusArchived); err != nil {
		t.Fatalf("SetStatus(archived) returned error: %v", err)
	}
	if p.IsActive() {
		t.Error("archived processo should not be active")
	}
	if err := p.SetStatus("bogus"); err == nil {
		t.Error("expected error for unknown status")
	}
	if p.Status != StatusArchived {
		t.Error("failed transition must not change status")
	}
}

func TestDeadlineFields(t *testing.T) {
	p, _ := NewProcesso(validNumero, "user-1")
	if got := p.DeadlineFields(); len(got) != 0 {
		t.Fatalf("expected no deadline fields, got %v", got)
	}

	aud := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	rec := time.Date(2026, 9, 22, 0, 0, 0, 0, time.UTC)
	p.ProximaAudiencia = &aud
	p.PrazoRecurso = &rec

	got := p.DeadlineFields()
	if len(got) != 2 {
		t.Fatalf("expected 2 deadline fields, got %v", got)
	}
	if !got["proxima_audiencia"].Equal(aud) {
		t.Error("proxima_audiencia not reported")
	}
	if !got["prazo_recurso"].Equal(rec) {
		t.Error("prazo_recurso not reported")
	}
}

//Personal.AI order the ending

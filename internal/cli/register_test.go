package cli

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/banque/registration-system/internal/core/domain"
)

func registerInput(limit, pin string) string {
	return strings.Join([]string{
		"Alice Dupont",
		"1 rue de Paris",
		"+33612345678",
		"1234567890123",
		"alice",
		"secret",
		limit,
		pin,
	}, "\n") + "\n"
}

func TestRunRegister_Success(t *testing.T) {
	var out bytes.Buffer
	if err := runRegister(strings.NewReader(registerInput("40000", "1234")), &out, domain.DefaultFeatures()); err != nil {
		t.Fatalf("runRegister: %v", err)
	}

	got := out.String()
	for _, want := range []string{domain.MsgAccountCreated, "PIN enregistré avec succès.", "Type de compte : Compte épargne"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
	if !regexp.MustCompile(`Numéro de carte : [0-9]{16}`).MatchString(got) {
		t.Fatalf("card number missing:\n%s", got)
	}
}

func TestRunRegister_InvalidPIN(t *testing.T) {
	var out bytes.Buffer
	if err := runRegister(strings.NewReader(registerInput("60000", "12a4")), &out, domain.DefaultFeatures()); err != nil {
		t.Fatalf("runRegister: %v", err)
	}
	if !strings.Contains(out.String(), domain.MsgPINInvalid) || !strings.Contains(out.String(), "Compte courant") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunRegister_UnparseableLimit(t *testing.T) {
	var out bytes.Buffer
	err := runRegister(strings.NewReader(registerInput("beaucoup", "1234")), &out, domain.DefaultFeatures())
	if !errors.Is(err, errInvalidLimit) {
		t.Fatalf("expected errInvalidLimit, got %v", err)
	}
	if !strings.Contains(out.String(), domain.MsgInvalidLimit) {
		t.Fatalf("expected limit message:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Numéro de carte") {
		t.Fatalf("no account may be opened")
	}
}

func TestRunRegister_InvalidInformation(t *testing.T) {
	var out bytes.Buffer
	in := strings.Replace(registerInput("40000", "1234"), "+33612345678", "0612", 1)
	if err := runRegister(strings.NewReader(in), &out, domain.DefaultFeatures()); err != nil {
		t.Fatalf("runRegister: %v", err)
	}
	if !strings.Contains(out.String(), domain.MsgInvalidPhone) || strings.Contains(out.String(), "Numéro de carte") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRootCmd_RegisterExitCode(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(registerInput("x", "")))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"register"})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for an unparseable limit")
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"serve", "register"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Fatalf("subcommand %s missing: %v", name, err)
		}
	}
}

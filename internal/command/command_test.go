package command

import (
	"bytes"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = &out
	// keep exit codes as errors instead of terminating the test binary
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"csrfd"}, args...))
	return strings.TrimSpace(out.String()), err
}

func TestSignThenVerify(t *testing.T) {
	tok, err := run(t, "sign", "--secret", "s", "-i", "user", "-i", "session")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !strings.Contains(tok, ":") {
		t.Fatalf("unexpected token %q", tok)
	}

	out, err := run(t, "verify", "--secret", "s", "-i", "user", "-i", "session", "--token", tok)
	if err != nil || out != "valid" {
		t.Fatalf("verify: %q, %v", out, err)
	}
}

func TestVerifyRejectsOtherIdentity(t *testing.T) {
	tok, err := run(t, "sign", "--secret", "s", "-i", "alice")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_, err = run(t, "verify", "--secret", "s", "-i", "bob", "--token", tok)
	exit, ok := err.(cli.ExitCoder)
	if !ok || exit.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
}

// Historical default algorithm against the published vector.
func TestVerifyKnownRipemdToken(t *testing.T) {
	tok := "9223372036854775807:e14a5ae5132d4e4b489d74698144104055c25f4c"
	out, err := run(t, "verify", "--secret", "secret", "-i", "identity", "--algorithm", "ripemd160", "--token", tok)
	if err != nil || out != "valid" {
		t.Fatalf("verify: %q, %v", out, err)
	}
}

func TestSignErrors(t *testing.T) {
	if _, err := run(t, "sign", "--secret", "s", "-i", "a", "--algorithm", "md5"); err == nil {
		t.Fatalf("expected unsupported algorithm error")
	}
	if _, err := run(t, "sign", "--secret", "s", "-i", "a:b"); err == nil {
		t.Fatalf("expected invalid identity error")
	}
	if _, err := run(t, "sign", "-i", "a"); err == nil {
		t.Fatalf("expected missing secret error")
	}
}

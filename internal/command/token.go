package command

import (
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/JeanGrijp/go-csrf/v2/csrf"
)

// SignCommand returns the sign command.
func SignCommand() *cli.Command {
	return &cli.Command{
		Name:  "sign",
		Usage: "Issue a token for an identity",
		Flags: append(signingFlags(),
			&cli.DurationFlag{
				Name:  "ttl",
				Usage: "Token lifetime",
				Value: csrf.DefaultTTL,
			},
		),
		Action: signAction,
	}
}

// VerifyCommand returns the verify command. It exits with status 1 when the
// token is not valid for the identity.
func VerifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Check a token against an identity",
		Flags: append(signingFlags(),
			&cli.StringFlag{
				Name:     "token",
				Aliases:  []string{"t"},
				Usage:    "Token to verify (expireAt:signature)",
				Required: true,
			},
		),
		Action: verifyAction,
	}
}

func offlineProtector(c *cli.Context, ttl time.Duration) (*csrf.Protector, csrf.Identity, error) {
	alg, err := csrf.ParseAlgorithm(c.String("algorithm"))
	if err != nil {
		return nil, nil, err
	}
	id := csrf.Identity(c.StringSlice("identity"))
	p, err := csrf.New(csrf.Config{
		Secret:    []byte(c.String("secret")),
		Algorithm: alg,
		TTL:       ttl,
		// only Issue and Verify are used, the resolver is never called
		IdentityResolver: csrf.IdentityFunc(func(*http.Request) csrf.Identity { return id }),
	})
	if err != nil {
		return nil, nil, err
	}
	return p, id, nil
}

func signAction(c *cli.Context) error {
	p, id, err := offlineProtector(c, c.Duration("ttl"))
	if err != nil {
		return err
	}
	tok, err := p.Issue(id)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	fmt.Fprintln(c.App.Writer, tok)
	return nil
}

func verifyAction(c *cli.Context) error {
	p, id, err := offlineProtector(c, 0)
	if err != nil {
		return err
	}
	if !p.Verify(id, c.String("token")) {
		return cli.Exit("invalid", 1)
	}
	fmt.Fprintln(c.App.Writer, "valid")
	return nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"smarttravel/internal/config"
	"smarttravel/pkg/utils"
)

func main() {
	if err := newApp(config.Load(), os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp mints the credentials APIAuthMiddleware accepts: bearer tokens
// signed with JWT_SECRET and bcrypt hashes for API_KEY_HASH.
func newApp(cfg config.AppConfig, out io.Writer) *cli.App {
	return &cli.App{
		Name:   "credgen",
		Usage:  "issue API credentials for the recommendation service",
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:  "token",
				Usage: "sign a bearer token for a user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Usage: "user id to embed", Required: true},
					&cli.DurationFlag{Name: "ttl", Usage: "token lifetime", Value: 24 * time.Hour},
					&cli.StringFlag{Name: "secret", Usage: "signing secret, defaults to JWT_SECRET", Value: cfg.JWTSecret},
				},
				Action: func(c *cli.Context) error {
					user := strings.TrimSpace(c.String("user"))
					if user == "" {
						return errors.New("user must not be blank")
					}
					if c.Duration("ttl") <= 0 {
						return errors.New("ttl must be positive")
					}
					token, err := utils.CreateToken([]byte(c.String("secret")), user, c.Duration("ttl"))
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(c.App.Writer, token)
					return err
				},
			},
			{
				Name:  "hash-key",
				Usage: "bcrypt-hash an API key for API_KEY_HASH",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "key", Usage: "plain API key", Required: true},
				},
				Action: func(c *cli.Context) error {
					hash, err := utils.HashSecret(c.String("key"))
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(c.App.Writer, hash)
					return err
				},
			},
		},
	}
}

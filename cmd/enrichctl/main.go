// enrichctl runs the enrichment engine from the command line.
//
// Usage:
//
//	enrichctl person --email ada@example.com
//	enrichctl company --domain stripe.com
//	enrichctl providers
//
// Configuration comes from the same environment variables and
// ENRICH_CONFIG_FILE the server reads.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"enricher/internal/enrichment"
	"enricher/internal/enrichment/models"
	"enricher/internal/platform/config"
	"enricher/internal/platform/logger"
	"enricher/pkg/requestcontext"
)

var version = "dev"

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "enrichctl",
		Usage:     "Enrich people and companies from the command line",
		Version:   version,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"ENRICH_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "strategy",
				Usage:   "Provider scheduling (sequential, parallel)",
				EnvVars: []string{"ENRICH_STRATEGY"},
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Indent JSON output",
			},
		},
		Commands: []*cli.Command{
			personCommand(),
			companyCommand(),
			providersCommand(),
		},
	}
}

// =============================================================================
// Commands
// =============================================================================

func personCommand() *cli.Command {
	return &cli.Command{
		Name:  "person",
		Usage: "Enrich a person",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address"},
			&cli.StringFlag{Name: "first-name", Usage: "First name"},
			&cli.StringFlag{Name: "last-name", Usage: "Last name"},
			&cli.StringFlag{Name: "company-domain", Aliases: []string{"d"}, Usage: "Employer domain"},
			&cli.StringFlag{Name: "linkedin", Usage: "LinkedIn profile URL"},
			&cli.StringFlag{Name: "github", Usage: "GitHub username"},
		},
		Action: func(c *cli.Context) error {
			engine, err := buildEngine(c)
			if err != nil {
				return err
			}
			record, err := engine.EnrichPerson(commandContext(c), models.PersonRequest{
				FirstName:      c.String("first-name"),
				LastName:       c.String("last-name"),
				Email:          c.String("email"),
				CompanyDomain:  c.String("company-domain"),
				LinkedInURL:    c.String("linkedin"),
				GitHubUsername: c.String("github"),
			})
			if err != nil {
				return err
			}
			return printJSON(c, record)
		},
	}
}

func companyCommand() *cli.Command {
	return &cli.Command{
		Name:  "company",
		Usage: "Enrich a company",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "domain", Aliases: []string{"d"}, Usage: "Company web domain"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Company name"},
		},
		Action: func(c *cli.Context) error {
			engine, err := buildEngine(c)
			if err != nil {
				return err
			}
			record, err := engine.EnrichCompany(commandContext(c), models.CompanyRequest{
				Name:   c.String("name"),
				Domain: c.String("domain"),
			})
			if err != nil {
				return err
			}
			return printJSON(c, record)
		},
	}
}

func providersCommand() *cli.Command {
	return &cli.Command{
		Name:  "providers",
		Usage: "List configured providers with their capabilities and quota",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "health", Usage: "Check each provider's account status first"},
		},
		Action: func(c *cli.Context) error {
			engine, err := buildEngine(c)
			if err != nil {
				return err
			}
			ctx := commandContext(c)
			if c.Bool("health") {
				engine.CheckHealth(ctx)
			}
			return printJSON(c, engine.Providers(ctx))
		},
	}
}

// =============================================================================
// Helpers
// =============================================================================

func buildEngine(c *cli.Context) (*enrichment.Engine, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if s := c.String("strategy"); s != "" {
		cfg.Engine.Strategy = s
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	log := logger.NewWithWriter(c.App.ErrWriter, c.String("log-level"), "text")
	return enrichment.NewEngine(cfg, log, nil)
}

func commandContext(c *cli.Context) context.Context {
	return requestcontext.WithRequestID(c.Context, "cli")
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	if c.Bool("pretty") {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

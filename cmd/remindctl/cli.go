package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/oauth2"

	"task-reminder/config"
	"task-reminder/internal/parser"
	parserUC "task-reminder/internal/parser/usecase"
	"task-reminder/internal/recurrence"
	"task-reminder/pkg/datemath"
	"task-reminder/pkg/gcalendar"
	"task-reminder/pkg/llmprovider"
	"task-reminder/pkg/log"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp() *cli.App {
	app := &cli.App{
		Name:    "remindctl",
		Usage:   "Offline tools for the task reminder",
		Version: Version,
		Commands: []*cli.Command{
			parseCmd(),
			advanceCmd(),
			calendarAuthCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

var formatFlag = &cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: formatJSON, Usage: "Output format: json|yaml"}

// parseCmd runs the extraction chain on one sentence.
func parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Extract a task from natural-language text",
		ArgsUsage: "<text>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "now", Usage: "Reference time, RFC3339 (default: current time)"},
			&cli.StringFlag{Name: "tz", Usage: "IANA timezone (default: parser.timezone from config)"},
			&cli.BoolFlag{Name: "no-llm", Usage: "Use the rule-based parser only"},
			formatFlag,
		},
		Action: func(c *cli.Context) error {
			text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if text == "" {
				return errors.New("text is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tz := cfg.Parser.Timezone
			if c.IsSet("tz") {
				tz = c.String("tz")
			}
			dates, err := datemath.NewParser(tz, datemath.WithLocale(cfg.Parser.Locale))
			if err != nil {
				return err
			}

			now, err := timeFlag(c, "now", dates.Location())
			if err != nil {
				return err
			}
			if now.IsZero() {
				now = time.Now().In(dates.Location())
			}

			opts := parserUC.Options{LLMTimeout: cfg.Parser.LLMTimeout}
			if !c.Bool("no-llm") {
				if opts.LLM, err = newLLM(&cfg.LLM); err != nil {
					return err
				}
			}

			extractor := parserUC.New(log.NewNop(), dates, opts)
			parsed := extractor.Extract(c.Context, text, now)
			return render(c.App.Writer, c.String("format"), parsed)
		},
	}
}

// advanceResult is the output of the advance command.
type advanceResult struct {
	Rule     string     `json:"rule" yaml:"rule"`
	DueAt    time.Time  `json:"due_at" yaml:"due_at"`
	RemindAt *time.Time `json:"remind_at,omitempty" yaml:"remind_at,omitempty"`
}

// advanceCmd moves a due time to its next occurrence.
func advanceCmd() *cli.Command {
	return &cli.Command{
		Name:  "advance",
		Usage: "Compute the next occurrence of a recurring task",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "due", Required: true, Usage: "Current due time, RFC3339"},
			&cli.StringFlag{Name: "rule", Required: true, Usage: "Recurrence rule, e.g. daily, every 3 days"},
			&cli.StringFlag{Name: "remind", Usage: "Current reminder time, RFC3339"},
			&cli.StringFlag{Name: "now", Usage: "Roll forward until the due is after this time, RFC3339"},
			formatFlag,
		},
		Action: func(c *cli.Context) error {
			due, err := timeFlag(c, "due", nil)
			if err != nil {
				return err
			}
			remind, err := timeFlag(c, "remind", due.Location())
			if err != nil {
				return err
			}
			now, err := timeFlag(c, "now", due.Location())
			if err != nil {
				return err
			}

			var remindPtr *time.Time
			if !remind.IsZero() {
				remindPtr = &remind
			}

			rule := recurrence.Normalize(c.String("rule"))
			if rule == "" {
				return fmt.Errorf("unsupported rule %q", c.String("rule"))
			}

			var result advanceResult
			if now.IsZero() {
				next, ok := recurrence.Advance(&due, rule)
				if !ok {
					return fmt.Errorf("cannot advance with rule %q", rule)
				}
				result = advanceResult{Rule: rule, DueAt: next, RemindAt: recurrence.ShiftReminder(&due, remindPtr, next, time.Time{})}
			} else {
				next, nextRemind, ok := recurrence.RollForward(&due, remindPtr, rule, now)
				if !ok {
					return fmt.Errorf("cannot advance with rule %q", rule)
				}
				result = advanceResult{Rule: rule, DueAt: next, RemindAt: nextRemind}
			}

			return render(c.App.Writer, c.String("format"), result)
		},
	}
}

// calendarAuthCmd runs the one-time OAuth consent for Google Calendar and saves the token.
func calendarAuthCmd() *cli.Command {
	return &cli.Command{
		Name:  "calendar-auth",
		Usage: "Authorize Google Calendar access and write " + gcalendar.TokenFile,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "credentials", Aliases: []string{"c"}, Value: "google-credentials.json", Usage: "OAuth Desktop App credentials file"},
			&cli.StringFlag{Name: "token", Value: gcalendar.TokenFile, Usage: "Where to save the token"},
			&cli.StringFlag{Name: "code", Usage: "Authorization code (prompted when empty)"},
		},
		Action: func(c *cli.Context) error {
			oauthCfg, err := gcalendar.OAuthConfigFromFile(c.String("credentials"))
			if err != nil {
				return err
			}

			code := c.String("code")
			if code == "" {
				fmt.Fprintln(c.App.Writer, "Open this URL, sign in and approve calendar access:")
				fmt.Fprintln(c.App.Writer, oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
				fmt.Fprint(c.App.Writer, "Paste the authorization code: ")
				if _, err := fmt.Fscan(c.App.Reader, &code); err != nil {
					return fmt.Errorf("failed to read authorization code: %w", err)
				}
			}

			ctx, cancel := context.WithTimeout(c.Context, time.Minute)
			defer cancel()
			if err := gcalendar.ExchangeAndSave(ctx, oauthCfg, strings.TrimSpace(code), c.String("token")); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Token saved to %s. Restart the api to enable calendar sync.\n", c.String("token"))
			return nil
		},
	}
}

// newLLM returns nil without error when no provider is usable.
func newLLM(cfg *config.LLMConfig) (parser.LLM, error) {
	manager, err := llmprovider.NewManagerFromConfig(cfg, log.NewNop())
	if errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return manager, nil
}

// timeFlag parses an RFC3339 flag, converted to loc when loc is set. An unset flag gives the zero time.
func timeFlag(c *cli.Context, name string, loc *time.Location) (time.Time, error) {
	v := c.String(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", name, err)
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t, nil
}

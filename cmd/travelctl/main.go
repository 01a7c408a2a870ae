// Command travelctl is a console front end for the travel-booking API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"travel-booking/internal/client"
	"travel-booking/internal/store"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type command struct {
	usage string
	flags func(fs *pflag.FlagSet)
	run   func(ctx context.Context, a *app, fs *pflag.FlagSet) error
}

var commands = map[string]command{
	"login":        {usage: "login --email <email> --password <password>", flags: loginFlags, run: runLogin},
	"logout":       {usage: "logout", run: runLogout},
	"whoami":       {usage: "whoami", run: runWhoami},
	"activities":   {usage: "activities [--search s] [--category id] [--page n]", flags: activitiesFlags, run: runActivities},
	"transactions": {usage: "transactions [--status s] [--search s] [--start-date d] [--end-date d] [--sort newest|oldest] [--page n] [--admin]", flags: transactionsFlags, run: runTransactions},
	"transaction":  {usage: "transaction <id>", run: runTransaction},
	"checkout":     {usage: "checkout --cart <ids> --payment-method <id> --name <n> --email <e> --phone <p>", flags: checkoutFlags, run: runCheckout},
	"upload-proof": {usage: "upload-proof <id> <file>", run: runUploadProof},
	"approve":      {usage: "approve <id>", run: runApprove},
	"reject":       {usage: "reject <id> --reason <text>", flags: rejectFlags, run: runReject},
}

// app is everything a command needs, built once per invocation.
type app struct {
	api     *client.Services
	store   *store.Store
	session *client.Session
	loc     *time.Location
	out     io.Writer
	log     *zap.Logger
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	name := os.Args[1]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		usage(os.Stderr)
		os.Exit(2)
	}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	globalFlags(fs)
	if cmd.flags != nil {
		cmd.flags(fs)
	}
	if err := fs.Parse(os.Args[2:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "usage: travelctl %s\n", cmd.usage)
		os.Exit(2)
	}

	a, err := newApp(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer a.log.Sync()
	defer a.store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx, a, fs); err != nil {
		fmt.Fprintln(os.Stderr, "error:", client.Message(err))
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: travelctl <command> [flags]")
	fmt.Fprintln(w)
	for _, name := range names {
		fmt.Fprintln(w, "  "+commands[name].usage)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "global flags (or TRAVEL_* environment variables):")
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	globalFlags(fs)
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func globalFlags(fs *pflag.FlagSet) {
	home, _ := os.UserHomeDir()
	fs.String("api-url", "http://localhost:8080/api/v1", "API base URL")
	fs.String("api-key", "", "API key sent in the apiKey header")
	fs.String("session-file", filepath.Join(home, ".travelctl", "session.json"), "where the login session is kept")
	fs.String("timezone", "Asia/Jakarta", "zone used for date filters")
	fs.Duration("timeout", 15*time.Second, "request timeout")
	fs.Bool("debug", false, "log requests to stderr")
}

// loadConfig merges flags over TRAVEL_* environment variables.
func loadConfig(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("TRAVEL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if v.GetString("api-key") == "" {
		return nil, errors.New("api key is required (--api-key or TRAVEL_API_KEY)")
	}
	return v, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func newApp(fs *pflag.FlagSet) (*app, error) {
	v, err := loadConfig(fs)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(v.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	session := client.NewSession(client.FileTokenStore{Path: v.GetString("session-file")}, log)
	if err := session.Restore(); err != nil {
		log.Warn("Ignoring unreadable session file", zap.Error(err))
	}

	c := client.New(client.Config{
		BaseURL: v.GetString("api-url"),
		APIKey:  v.GetString("api-key"),
		Timeout: v.GetDuration("timeout"),
		OnUnauthorized: func() {
			fmt.Fprintln(os.Stderr, "session expired, run: travelctl login")
		},
	}, session, log)

	api := client.NewServices(c)

	return &app{
		api:     api,
		store:   store.New(api, session, log),
		session: session,
		loc:     loc,
		out:     os.Stdout,
		log:     log,
	}, nil
}

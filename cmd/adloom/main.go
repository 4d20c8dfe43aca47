package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/evoss/adloom/internal/config"
	"github.com/evoss/adloom/internal/tui"
	"github.com/evoss/adloom/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// tokenFilePath returns ~/.adloom/token.
func tokenFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".adloom", "token"), nil
}

// readToken returns the bearer token using precedence: env var > file > empty.
func readToken(envToken string) string {
	if envToken != "" {
		return envToken
	}
	path, err := tokenFilePath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func saveToken(tok string) error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create ~/.adloom dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(tok), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func removeToken() {
	if path, err := tokenFilePath(); err == nil {
		os.Remove(path) //nolint:errcheck
	}
}

// debugLogger opens ~/.adloom/debug.log for per-request logging. The TUI owns
// the terminal, so debug output has to go to a file.
func debugLogger() (zerolog.Logger, *os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	dir := filepath.Join(home, ".adloom")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return zerolog.Nop(), nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return zerolog.New(f).With().Timestamp().Logger(), f, nil
}

func newClient(cfg config.Config, token string) (*client.Client, func(), error) {
	session := client.NewSession(token)
	// A rejected credential is stale wherever it came from.
	session.OnExpire(removeToken)

	opts := []client.Option{}
	cleanup := func() {}
	if cfg.Debug {
		log, f, err := debugLogger()
		if err != nil {
			return nil, nil, fmt.Errorf("open debug log: %w", err)
		}
		opts = append(opts, client.WithLogger(log))
		cleanup = func() { f.Close() } //nolint:errcheck
	}
	return client.New(cfg.ClientConfig(), session, opts...), cleanup, nil
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("adloom " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "login":
			if len(os.Args) < 3 {
				return fmt.Errorf("usage: adloom login <email>")
			}
			return runLogin(cfg, os.Args[2])
		case "logout":
			return runLogout()
		}
	}

	token := readToken(cfg.Token)
	if token == "" {
		printWelcome()
		return nil
	}

	c, cleanup, err := newClient(cfg, token)
	if err != nil {
		return err
	}
	defer cleanup()

	// Only force re-login on an actual credential rejection, not on transient
	// network or server errors. The TUI retries those internally.
	if _, err := c.Me(context.Background()); err != nil {
		if client.IsSessionExpired(err) {
			printWelcome()
			return nil
		}
	}

	return runTUI(c)
}

func runLogin(cfg config.Config, email string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email: %q", email)
	}

	c, cleanup, err := newClient(cfg, "")
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	tok, err := c.ExchangeDevToken(ctx, email)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	c.Session().SetToken(tok.AccessToken)

	me, err := c.Me(ctx)
	if err != nil {
		return fmt.Errorf("login: verify token: %w", err)
	}
	if err := saveToken(tok.AccessToken); err != nil {
		return err
	}
	fmt.Printf("Authenticated as %s\n\n", me.Email)

	return runTUI(c)
}

func runLogout() error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("Already logged out.")
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func runTUI(c *client.Client) error {
	app := tui.NewApp(c, version)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

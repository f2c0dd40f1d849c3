package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"golf-client/api"
	"golf-client/auth"
	"golf-client/config"
	"golf-client/console"
	"golf-client/engine/headless"
	"golf-client/golf"
	"golf-client/loghandler"
	"golf-client/session"
	"golf-client/view"
	"golf-client/ws"
)

var (
	configFile string
	serverURL  string
	authToken  string
	debugAddr  string
	noConsole  bool
)

var rootCmd = &cobra.Command{
	Use:          "golf-client",
	Short:        "Headless Golf card game client",
	Long:         `Connects to a Golf server, mirrors the table on a headless engine and turns console commands into clicks.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			slog.Debug("no .env file found; using environment variables", "tag", "main")
		}

		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)

		level, err := loghandler.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(loghandler.New(os.Stderr, cfg.LogFormat, level)))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var in io.Reader
		if !noConsole {
			in = os.Stdin
		}
		return run(ctx, cfg, in, os.Stdout)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "JSON config file (default ./config.json when present)")
	rootCmd.Flags().StringVar(&serverURL, "url", "", "game server websocket URL")
	rootCmd.Flags().StringVar(&authToken, "token", "", "session token sent on connect")
	rootCmd.Flags().StringVar(&debugAddr, "debug-addr", "", "listen address for /debug/view and /health")
	rootCmd.Flags().BoolVar(&noConsole, "no-console", false, "do not read commands from stdin")
}

// applyFlags lets explicitly set flags win over file and environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("url") {
		cfg.ServerURL = serverURL
	}
	if cmd.Flags().Changed("token") {
		cfg.AuthToken = authToken
	}
	if cmd.Flags().Changed("debug-addr") {
		cfg.DebugAddr = debugAddr
	}
}

// client is one connected view with everything that drives it.
type client struct {
	conn    *ws.Client
	engine  *headless.Engine
	session *session.Session
}

// connect dials the server and wires transport, engine, view and session.
// The caller must run c.session and close c.conn.
func connect(ctx context.Context, cfg *config.Config) (*client, error) {
	if cfg.AuthToken != "" {
		claims, err := auth.InspectToken(cfg.AuthToken, time.Now())
		if err != nil {
			return nil, fmt.Errorf("auth token: %w", err)
		}
		slog.Info("token inspected", "tag", "main", "user", claims.UserID, "name", claims.Name)
	}

	conn, err := ws.Dial(ctx, cfg.ServerURL, auth.Header(cfg.AuthToken))
	if err != nil {
		return nil, err
	}
	if cfg.AuthToken != "" {
		if err := conn.Authenticate(cfg.AuthToken); err != nil {
			conn.Close()
			return nil, err
		}
	}

	notifications := make(chan golf.Notification, 16)
	go conn.ReadPump(ctx, notifications)
	go conn.WritePump()

	eng := headless.New()
	v := view.New(cfg, eng, conn)
	s := session.New(v, eng, notifications, cfg.FrameInterval())
	s.Disconnected = conn.Done()

	slog.Info("connected", "tag", "main", "url", cfg.ServerURL, "session", s.ID)
	return &client{conn: conn, engine: eng, session: s}, nil
}

// run connects and blocks until ctx is done or the server goes away. With
// a non-nil in, console commands are read from it.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	c, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.DebugAddr != "" {
		srv := &http.Server{Addr: cfg.DebugAddr, Handler: api.NewHandler(c.session.Describe).Routes()}
		go func() {
			slog.Info("debug endpoint listening", "tag", "api", "addr", cfg.DebugAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("debug endpoint stopped", "tag", "api", "err", err)
			}
		}()
		defer srv.Close()
	}

	if in != nil {
		go func() {
			if err := console.New(c.session, c.engine, out).Run(ctx, in); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("console stopped", "tag", "console", "err", err)
			}
			// quitting the console ends the client
			cancel()
		}()
	}

	err = c.session.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("exiting", "tag", "main", "err", err)
		os.Exit(1)
	}
}

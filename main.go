// Command game2048 starts the 2048 game server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, config directory, debug logging, version output,
// and optional ngrok tunneling for easy external access during development.
// Every flag can also be set through the environment or a .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/game2048/api"
	"github.com/wricardo/game2048/game/config"
	"github.com/wricardo/game2048/game/service"
	"github.com/wricardo/game2048/game/session"
	"github.com/wricardo/game2048/transport/mcp"
	"github.com/wricardo/game2048/transport/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "2048 Game Server"
)

const (
	sessionTTL      = 24 * time.Hour
	cleanupInterval = time.Hour
)

// options holds the resolved command line configuration
type options struct {
	host        string
	port        int
	configDir   string
	debug       bool
	ngrok       bool
	ngrokAuth   string
	ngrokDomain string
}

func (o options) addr() string {
	return fmt.Sprintf("%s:%d", o.host, o.port)
}

// services bundles the wired game components
type services struct {
	game     service.GameService
	sessions *session.Manager
	configs  *config.Manager
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "game2048",
		Usage:     AppName,
		Version:   Version,
		ArgsUsage: "[server|http|stdio-mcp|mcp|mcp-stdio]",
		Description: `Modes:
  server, http     Run HTTP server with API, WebSocket, and MCP endpoint (default)
  stdio-mcp        Run MCP stdio server with internal HTTP server
  mcp-stdio, mcp   Aliases for stdio-mcp

Examples:
  game2048                    # Run HTTP server on default port 8080
  game2048 --port 9090        # Run HTTP server on port 9090
  game2048 stdio-mcp          # Run MCP stdio server`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing game presets",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: run,
	}
}

func optionsFrom(cmd *cli.Command) options {
	return options{
		host:        cmd.String("host"),
		port:        int(cmd.Int("port")),
		configDir:   cmd.String("config-dir"),
		debug:       cmd.Bool("debug"),
		ngrok:       cmd.Bool("ngrok"),
		ngrokAuth:   cmd.String("ngrok-auth"),
		ngrokDomain: cmd.String("ngrok-domain"),
	}
}

// main loads .env, then hands off to the command
func main() {
	// A missing .env file is fine
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if envErr != nil && !os.IsNotExist(envErr) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", envErr)
	}

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a production logger; debug lowers its level.
// Output goes to stderr so stdio MCP traffic on stdout stays clean.
func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func run(ctx context.Context, cmd *cli.Command) error {
	opts := optionsFrom(cmd)

	logger, err := newLogger(opts.debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	mode := "server"
	if cmd.Args().Len() > 0 {
		mode = cmd.Args().First()
	}

	logger.Info("starting",
		zap.String("app", AppName),
		zap.String("version", Version),
		zap.String("mode", mode))

	svc, err := initializeServices(opts.configDir, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	startBackground(ctx, &wg, svc, logger)

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		return runStdioMCPWithInternalServer(ctx, opts, svc, logger)
	case "server", "http":
		return runHTTPServer(ctx, opts, svc, logger)
	default:
		return fmt.Errorf("unknown mode: %s. Use 'server' (default) or 'stdio-mcp'", mode)
	}
}

// initializeServices wires session/config managers and the game service.
func initializeServices(configDir string, logger *zap.Logger) (*services, error) {
	configManager, err := config.NewManagerWithLogger(configDir, logger.Named("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManagerWithLogger(logger.Named("session"))
	gameService := service.NewGameServiceWithLogger(sessionManager, configManager, logger.Named("service"))

	return &services{
		game:     gameService,
		sessions: sessionManager,
		configs:  configManager,
	}, nil
}

// startBackground runs session cleanup and preset watching until ctx is done
func startBackground(ctx context.Context, wg *sync.WaitGroup, svc *services, logger *zap.Logger) {
	wg.Add(2)
	go func() {
		defer wg.Done()
		sessionCleanupRoutine(ctx, svc.sessions, cleanupInterval, sessionTTL, logger)
	}()
	go func() {
		defer wg.Done()
		if err := svc.configs.Watch(ctx); err != nil {
			logger.Warn("preset watcher stopped", zap.Error(err))
		}
	}()
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within ttl.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, ttl time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(ttl); removed > 0 {
				logger.Info("cleaned up expired sessions", zap.Int("removed", removed))
			}
		}
	}
}

// mcpHandler serves single MCP JSON-RPC messages over HTTP POST
func mcpHandler(client *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := client.GetMCPServer().HandleMessage(r.Context(), body)

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	}
}

// newRouter mounts the REST API at the root and the MCP proxy at /mcp
func newRouter(apiServer http.Handler, mcpClient *mcp.Client) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", apiServer)
	mux.HandleFunc("/mcp", mcpHandler(mcpClient))
	return mux
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled, it also provisions a public tunnel. It returns once ctx is cancelled
// and the server has shut down.
func runHTTPServer(ctx context.Context, opts options, svc *services, logger *zap.Logger) error {
	hub := websocket.NewHubWithLogger(logger.Named("ws"))
	go hub.Run()
	defer hub.Stop()

	apiServer := api.NewServerWithLogger(svc.game, hub, logger.Named("api"))
	apiServer.SetVersion(Version)

	addr := opts.addr()
	mcpClient := mcp.NewClientWithLogger(fmt.Sprintf("http://%s", addr), logger.Named("mcp"))
	router := newRouter(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		logger.Info("HTTP server listening",
			zap.String("addr", addr),
			zap.String("api", fmt.Sprintf("http://%s/api", addr)),
			zap.String("websocket", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr)),
			zap.String("mcp", fmt.Sprintf("http://%s/mcp", addr)))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if opts.ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, opts, router, logger.Named("ngrok"))
		}()
	}

	var err error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Warn("HTTP server shutdown error", zap.Error(shutdownErr))
	}

	wg.Wait()
	logger.Info("server stopped")
	return err
}

// runNgrokTunnel serves handler through an ngrok tunnel until ctx is cancelled
func runNgrokTunnel(ctx context.Context, opts options, handler http.Handler, logger *zap.Logger) {
	if opts.ngrokAuth == "" {
		logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	logger.Info("starting ngrok tunnel")

	var tunnel ngrokConfig.Tunnel
	if opts.ngrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.ngrokDomain))
		logger.Info("using custom ngrok domain", zap.String("domain", opts.ngrokDomain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(opts.ngrokAuth))
	if err != nil {
		logger.Error("failed to start ngrok tunnel", zap.Error(err))
		return
	}

	// Serve returns once the tunnel is closed
	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			logger.Warn("failed to close ngrok tunnel", zap.Error(err))
		}
	}()

	ngrokURL := tun.URL()
	logger.Info("ngrok tunnel established",
		zap.String("url", ngrokURL),
		zap.String("api", ngrokURL+"/api"),
		zap.String("websocket", ngrokURL+"/ws?session=<session_id>"),
		zap.String("mcp", ngrokURL+"/mcp"))

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		logger.Warn("ngrok server error", zap.Error(err))
	}
	logger.Info("ngrok tunnel closed")
}

// externalAPIAvailable reports whether a game server already answers at baseURL
func externalAPIAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It reuses an API already running at the configured host and port; if there is none, it
// starts an internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(ctx context.Context, opts options, svc *services, logger *zap.Logger) error {
	baseURL := fmt.Sprintf("http://%s", opts.addr())
	logger.Info("checking for external API server", zap.String("url", baseURL))

	if externalAPIAvailable(baseURL) {
		logger.Info("external API server found, using it for MCP", zap.String("url", baseURL))
	} else {
		logger.Info("no external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		baseURL = fmt.Sprintf("http://%s", listener.Addr().String())

		hub := websocket.NewHubWithLogger(logger.Named("ws"))
		go hub.Run()
		defer hub.Stop()

		apiServer := api.NewServerWithLogger(svc.game, hub, logger.Named("api"))
		apiServer.SetVersion(Version)
		httpServer := &http.Server{Handler: apiServer}

		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("internal HTTP server error", zap.Error(err))
			}
		}()
		defer httpServer.Close()

		logger.Info("internal HTTP server started", zap.String("url", baseURL))
	}

	mcpClient := mcp.NewClientWithLogger(baseURL, logger.Named("mcp"))
	logger.Info("MCP stdio server ready", zap.String("api", baseURL))

	stdio := server.NewStdioServer(mcpClient.GetMCPServer())
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

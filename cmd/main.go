package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"team-lab/api"
	"team-lab/auth"
	"team-lab/gateway"
	"team-lab/internal"
	"team-lab/notify"
	"team-lab/presence"
	"team-lab/repositories"
	"team-lab/runtime/workers"
	"team-lab/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so every defer (database close, graceful
// shutdown) executes before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Repositories & Services
	invites := repositories.NewInvitationRepository(db, log)
	members, err := repositories.NewMembershipRepository(db, log)
	if err != nil {
		return fmt.Errorf("membership repository init failed: %w", err)
	}
	defer func() {
		_ = members.Close()
	}()

	signer := auth.NewSigner(config.JWTSecret)
	outbox := notify.NewOutbox(log, config.OutboxSize)

	registry := presence.NewRegistry()
	memberService := services.NewMemberService(log, members, nil, outbox)
	gw := gateway.NewGateway(log, memberService, registry, config.PresenceSnapshotCap)
	memberService.AttachEmitter(gw)
	inviteService := services.NewTeamInviteService(log, invites, members, signer, outbox, config.FrontendDomain)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Supervised background workers
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewOutboxWorker(log, outbox.Events(), notify.NewLogDispatcher(log)),
		workers.NewStatsWorker(log, config.StatsInterval, func() workers.GatewayStats {
			rooms, connections := gw.Stats()
			return workers.GatewayStats{
				Rooms:       rooms,
				Connections: connections,
				OnlineUsers: registry.TotalOnline(),
			}
		}),
	)
	go sup.Run(ctx)

	// 6. Debug inspector (local only)
	if config.DebugPort > 0 {
		internal.StartDebugServer(db, config.DebugPort, func() map[string]any {
			rooms, connections := gw.Stats()
			return map[string]any{
				"rooms":        rooms,
				"connections":  connections,
				"online_users": registry.TotalOnline(),
			}
		})
	}

	// 7. HTTP server: REST command surface + websocket channel
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{
		Addr:    address,
		Handler: api.NewRouter(log, inviteService, memberService, signer, gateway.NewHandler(log, gw, signer)),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting realtime gateway", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}

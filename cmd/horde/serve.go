package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/horde/internal/platform/tui"
	"github.com/vovakirdan/horde/internal/scoreapi"
	"github.com/vovakirdan/horde/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the horde SSH server and/or score API",
	Long: `Start an SSH server that lets users connect and play, an HTTP score
API, or both. The two servers share one scores database, so runs played
over SSH show up in the API and on the live feed.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.horde/host_key

Score API:
  POST /api/score             - Submit a finished run
  GET  /api/scores?mode=&limit= - Best runs for a mode
  GET  /ws/scores             - WebSocket feed of accepted runs

Examples:
  horde serve                            # SSH on :23234
  horde serve --ssh :2222 --http :8080   # Both servers
  horde serve --ssh "" --http :8080      # Score API only
  horde serve --host-key ./my_host_key   # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port), empty to disable")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Score API address (host:port), empty to disable")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		fail("nothing to serve: set --ssh and/or --http")
	}

	logger := newLogger("horde")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	running := 0

	if flagSSHAddr != "" {
		server, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			Store:       store,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			TickRate:    flagFPS,
			Logger:      newLogger("horde-ssh"),
		})
		if err != nil {
			store.Close()
			fail("creating SSH server: %v", err)
		}
		running++
		go func() { errCh <- server.ListenAndServe(ctx) }()
		fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(flagSSHAddr))
	}

	if flagHTTPAddr != "" {
		api := scoreapi.NewServer(store, newLogger("horde-api"))
		running++
		go func() { errCh <- api.ListenAndServe(ctx, flagHTTPAddr) }()
	}

	fmt.Println("Press Ctrl+C to stop")

	// The first failure stops everything; a clean shutdown waits for both.
	var firstErr error
	for range running {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			logger.Error("server stopped", "err", err)
			stop()
		}
	}

	if firstErr != nil {
		store.Close()
		fail("%v", firstErr)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}

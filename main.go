package main

import (
	"context"
	"log"
	"net"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/joho/godotenv"

	"tradenet/adapters/csvdata"
	"tradenet/adapters/graphstore"
	"tradenet/app"
	"tradenet/domain/commodity"
	"tradenet/domain/network"
	"tradenet/internal/config"
	"tradenet/internal/session"
	"tradenet/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The ops server comes up before the load so /readyz reports the load
	// actually finishing rather than answering after the fact.
	var loaded atomic.Bool
	if cfg.Ops.Enabled {
		ops := ui.NewOpsServer(loaded.Load)
		ops.Serve(net.JoinHostPort("", cfg.Ops.Port))
	}

	catalog, err := commodity.Load()
	if err != nil {
		log.Fatalf("❌ Commodity catalog failed: %v", err)
	}

	log.Printf("[Main] loading reference data from %s", cfg.Data.Dir)
	store, err := csvdata.LoadNetworks(ctx, cfg.Data.Dir, catalog)
	if err != nil {
		// The dashboard must not serve traffic over partial reference data.
		log.Fatalf("❌ Reference data load failed: %v", err)
	}

	// The aggregate edge list includes flows touching the RoW node, so the
	// graph is built over the full 52-node table.
	trade, err := graphstore.New(store.Nodes(network.BoundaryWithInternational), store.Edges())
	if err != nil {
		log.Fatalf("❌ Trade graph build failed: %v", err)
	}
	stats := trade.Stats()
	log.Printf("[Main] trade network: %d nodes, %d edges, density %.4f",
		stats.Nodes, stats.Edges, stats.Density)

	sessions := session.NewStore(cfg.Session.TTL)
	sessions.StartSweeper(ctx, cfg.Session.SweepInterval)

	filters := app.NewFilterService(store, catalog)
	dashboards := app.NewDashboardService(store, trade, filters)

	server, err := ui.NewServer(cfg.Server, dashboards, filters, sessions)
	if err != nil {
		log.Fatalf("❌ Server setup failed: %v", err)
	}
	loaded.Store(true)

	if err := server.Run(ctx, net.JoinHostPort("", cfg.Server.Port)); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
	log.Println("✅ Shutdown complete")
}

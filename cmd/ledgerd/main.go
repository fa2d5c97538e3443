package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	clientv3 "go.etcd.io/etcd/client/v3"

	"ImmutableLedger/internal/archive"
	"ImmutableLedger/internal/chain"
	"ImmutableLedger/internal/ledger"
	"ImmutableLedger/internal/notify"
	"ImmutableLedger/internal/observability"
	"ImmutableLedger/internal/seal"
	"ImmutableLedger/internal/server"
	"ImmutableLedger/internal/store"
)

// Config holds all application configuration, loaded from environment
// variables.
type Config struct {
	// etcd
	EtcdEndpoints  []string
	EtcdCACert     string
	EtcdClientCert string
	EtcdClientKey  string

	// gRPC/HTTP/Metrics
	GRPCAddr    string
	HTTPAddr    string
	MetricsAddr string

	// Optional downstream
	NATSURL    string
	ArchiveDSN string

	// Archive worker
	ArchiveChanSize     int
	ArchiveBatchSize    int
	ArchiveFlushTimeout time.Duration

	// Announcements
	AnnounceChanSize int

	// Dev mode: in-process store, no etcd required
	DevMode bool
}

func DefaultConfig() Config {
	return Config{
		EtcdEndpoints:       strings.Split(envOrDefault("LEDGER_ETCD_ENDPOINTS", "localhost:2379"), ","),
		EtcdCACert:          os.Getenv("LEDGER_ETCD_CA_CERT"),
		EtcdClientCert:      os.Getenv("LEDGER_ETCD_CLIENT_CERT"),
		EtcdClientKey:       os.Getenv("LEDGER_ETCD_CLIENT_KEY"),
		GRPCAddr:            envOrDefault("LEDGER_GRPC_ADDR", ":50051"),
		HTTPAddr:            envOrDefault("LEDGER_HTTP_ADDR", ":8080"),
		MetricsAddr:         envOrDefault("LEDGER_METRICS_ADDR", ":9091"),
		NATSURL:             os.Getenv("LEDGER_NATS_URL"),
		ArchiveDSN:          os.Getenv("LEDGER_ARCHIVE_DSN"),
		ArchiveChanSize:     envIntOrDefault("LEDGER_ARCHIVE_CHAN_SIZE", 1024),
		ArchiveBatchSize:    envIntOrDefault("LEDGER_ARCHIVE_BATCH_SIZE", 50),
		ArchiveFlushTimeout: 100 * time.Millisecond,
		AnnounceChanSize:    envIntOrDefault("LEDGER_ANNOUNCE_CHAN_SIZE", 4096),
		DevMode:             os.Getenv("LEDGER_DEV") != "",
	}
}

func main() {
	log := observability.NewLogger("ledgerd")
	log.Info().Msg("immutable ledger starting")

	cfg := DefaultConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// --- Observability ---
	metrics := observability.NewMetrics()
	healthChecker := observability.NewHealthChecker()

	// --- Consensus store ---
	var kv store.KV
	if cfg.DevMode {
		log.Warn().Msg("dev mode: using in-process store, nothing is durable")
		kv = store.NewMemoryKV()
	} else {
		tlsConfig, err := etcdTLSConfig(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("load etcd TLS material")
		}

		cli, err := clientv3.New(clientv3.Config{
			Endpoints:   cfg.EtcdEndpoints,
			DialTimeout: 5 * time.Second,
			TLS:         tlsConfig,
		})
		if err != nil {
			log.Fatal().Err(err).Strs("endpoints", cfg.EtcdEndpoints).Msg("etcd connect")
		}
		defer cli.Close()
		log.Info().Strs("endpoints", cfg.EtcdEndpoints).Msg("etcd connected")
		kv = store.NewEtcdKV(cli)
	}

	ledgerStore := store.New(kv, observability.NewLogger("store"), metrics)

	// Tracks the downstream worker goroutines so shutdown can wait for
	// their final flush.
	var workers sync.WaitGroup

	// --- Optional downstream: NATS announcements ---
	var announceChan chan ledger.SealedRecord
	if cfg.NATSURL != "" {
		nc, js, err := notify.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatal().Err(err).Msg("nats connect")
		}
		defer nc.Close()

		if err := notify.EnsureStream(ctx, js); err != nil {
			log.Fatal().Err(err).Msg("ensure announcement stream")
		}
		log.Info().Str("url", cfg.NATSURL).Msg("NATS connected")

		announceChan = make(chan ledger.SealedRecord, cfg.AnnounceChanSize)
		publisher := notify.NewPublisher(js, announceChan, observability.NewLogger("notify"))
		workers.Add(1)
		go func() {
			defer workers.Done()
			if err := publisher.Run(ctx); err != nil && err != context.Canceled {
				log.Error().Err(err).Msg("publisher stopped")
			}
		}()
	}

	// --- Optional downstream: Postgres archive mirror ---
	var archiveChan chan ledger.SealedRecord
	if cfg.ArchiveDSN != "" {
		db, err := sql.Open("postgres", cfg.ArchiveDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("archive postgres open")
		}
		defer db.Close()

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("archive postgres ping")
		}
		if err := archive.NewWriter(db).EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("archive schema")
		}
		log.Info().Msg("archive postgres connected")

		archiveChan = make(chan ledger.SealedRecord, cfg.ArchiveChanSize)
		worker := archive.NewWorker(db, archiveChan, cfg.ArchiveBatchSize, cfg.ArchiveFlushTimeout, metrics, observability.NewLogger("archive"))
		workers.Add(1)
		go func() {
			defer workers.Done()
			if err := worker.Run(ctx); err != nil && err != context.Canceled {
				log.Error().Err(err).Msg("archive worker stopped")
			}
		}()
	}

	// --- Sealer ---
	sealer := seal.New(seal.Config{
		Store:    ledgerStore,
		Chain:    chain.New(),
		Logger:   observability.NewLogger("seal"),
		Metrics:  metrics,
		Announce: announceChan,
		Archive:  archiveChan,
	})

	// Rebuild the in-memory chain from durable records before serving.
	loaded, err := sealer.Rebuild(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("chain rebuild")
	}
	log.Info().Int("records", loaded).Msg("chain rebuilt")

	// --- gRPC + gateway ---
	grpcServer := server.NewGRPCServer(cfg.GRPCAddr, cfg.HTTPAddr, &server.Deps{
		Sealer:        sealer,
		Logger:        observability.NewLogger("server"),
		HealthChecker: healthChecker,
	})

	errChan := make(chan error, 4)

	go func() {
		errChan <- grpcServer.StartGRPC(ctx)
	}()

	go func() {
		errChan <- grpcServer.StartHTTPGateway(ctx)
	}()

	// --- Prometheus metrics server ---
	go func() {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsServer := &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: metricsMux,
		}
		go func() {
			<-ctx.Done()
			shutCtx, c := context.WithTimeout(context.Background(), 5*time.Second)
			defer c()
			metricsServer.Shutdown(shutCtx)
		}()
		log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics server listening")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	healthChecker.SetReady(true)
	log.Info().
		Str("grpc", cfg.GRPCAddr).
		Str("http", cfg.HTTPAddr).
		Str("metrics", cfg.MetricsAddr).
		Msg("immutable ledger ready")

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errChan:
		log.Error().Err(err).Msg("server failed, shutting down")
	}

	cancel()

	// Downstream workers flush their remaining batches and exit on ctx
	// cancellation.
	workers.Wait()

	log.Info().Msg("shutdown complete")
}

// etcdTLSConfig builds the TLS config for the etcd client from the
// configured certificate paths. Returns nil (plaintext) when no CA is
// configured, which is the local-development default.
func etcdTLSConfig(cfg Config) (*tls.Config, error) {
	if cfg.EtcdCACert == "" {
		return nil, nil
	}

	caPEM, err := os.ReadFile(cfg.EtcdCACert)
	if err != nil {
		return nil, fmt.Errorf("read CA cert: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("CA cert %s: no certificates found", cfg.EtcdCACert)
	}

	tlsConfig := &tls.Config{RootCAs: pool}

	if cfg.EtcdClientCert != "" && cfg.EtcdClientKey != "" {
		cert, err := tls.LoadX509KeyPair(cfg.EtcdClientCert, cfg.EtcdClientKey)
		if err != nil {
			return nil, fmt.Errorf("load client keypair: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// --- Helpers ---

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var i int
	if _, err := fmt.Sscanf(v, "%d", &i); err != nil {
		return defaultVal
	}
	return i
}

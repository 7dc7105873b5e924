package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/annel0/worldobjects/internal/api"
	"github.com/annel0/worldobjects/internal/config"
	"github.com/annel0/worldobjects/internal/definition"
	"github.com/annel0/worldobjects/internal/logging"
	"github.com/annel0/worldobjects/internal/middleware"
	"github.com/annel0/worldobjects/internal/observability"
	"github.com/annel0/worldobjects/internal/storage"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

const usage = `objdef - кеш определений объектов мира

Использование:
  objdef [-config path] get <id>...        вывести определения в JSON
  objdef [-config path] import -to badger|redis [-from dir]
                                           скопировать каталог записей в BadgerDB или Redis
  objdef [-config path] serve              запустить HTTP API просмотра определений
`

func main() {
	// .env необязателен
	_ = godotenv.Load()

	configPath := flag.String("config", "", "YAML config path (default $OBJDEF_CONFIG)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	logging.SetLogDir(cfg.Logging.Dir)
	if err := logging.InitDefaultLogger("objdef"); err != nil {
		fmt.Fprintf(os.Stderr, "❌ logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.CloseDefaultLogger()
	level := logging.ParseLevel(cfg.Logging.Level)
	logging.SetDefaultLevel(level)
	logging.GetLoggerManager().SetAllLevels(level, logging.DEBUG)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	switch args[0] {
	case "get":
		err = runGet(cfg, args[1:])
	case "import":
		err = runImport(cfg, args[1:])
	case "serve":
		err = runServe(cfg)
	default:
		flag.Usage()
		os.Exit(2)
	}

	logging.GetLoggerManager().CloseAll()
	if err != nil {
		logging.Error("❌ %s: %v", args[0], err)
		os.Exit(1)
	}
}

// openSource открывает хранилище записей согласно конфигурации
func openSource(cfg *config.Config) (definition.Source, func() error, error) {
	d := cfg.Definitions
	switch d.Backend {
	case config.BackendBadger:
		store, err := storage.NewBadgerRecords(d.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.BackendRedis:
		store, err := storage.NewRedisRecords(redisConfig(cfg))
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return definition.NewDirSource(d.Dir), func() error { return nil }, nil
	}
}

func redisConfig(cfg *config.Config) *storage.RedisConfig {
	r := cfg.Definitions.Redis
	return &storage.RedisConfig{
		Addr:      r.Addr,
		Password:  r.Password,
		DB:        r.DB,
		KeyPrefix: r.KeyPrefix,
		Timeout:   r.Timeout,
	}
}

func runGet(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("нужен хотя бы один id")
	}

	src, closeSrc, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	cache := definition.NewCache(src, nil)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	missing := 0
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("недействительный id %q: %w", arg, err)
		}
		def, err := cache.Load(id)
		if err != nil {
			logging.Warn("definition %d: %v", id, err)
			missing++
			continue
		}
		if err := enc.Encode(def); err != nil {
			return err
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d из %d определений недоступны", missing, len(args))
	}
	return nil
}

func runImport(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	to := fs.String("to", config.BackendBadger, "Target backend: badger, redis")
	from := fs.String("from", cfg.Definitions.Dir, "Source directory with <id>.json records")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var dst storage.RecordStore
	var err error
	switch *to {
	case config.BackendBadger:
		dst, err = storage.NewBadgerRecords(cfg.Definitions.BadgerPath)
	case config.BackendRedis:
		dst, err = storage.NewRedisRecords(redisConfig(cfg))
	default:
		return fmt.Errorf("неизвестный бэкенд %q", *to)
	}
	if err != nil {
		return err
	}
	defer dst.Close()

	stats, err := storage.Import(definition.NewDirSource(*from), dst)
	if err != nil {
		return err
	}
	logging.Info("✅ %s → %s: импортировано %d, пропущено %d", *from, *to, stats.Imported, stats.Skipped)
	return nil
}

func runServe(cfg *config.Config) error {
	ctx := context.Background()
	shutdownTelemetry, err := observability.InitTelemetry(ctx, observability.Config{
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer shutdownTelemetry(ctx)

	src, closeSrc, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	reg := prometheus.NewRegistry()
	cache := definition.NewCache(src, definition.NewMetrics(reg))

	restPort := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	server := api.NewRestServer(api.Config{
		Port:        restPort,
		Definitions: cache,
		Registry:    reg,
		RateLimit: middleware.RateLimitConfig{
			RequestsPerSecond: cfg.Server.RequestsPerSecond,
			BurstSize:         cfg.Server.Burst,
			Enabled:           true,
		},
		ServiceName: cfg.Telemetry.ServiceName,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	logging.Info("🌐 REST API: http://localhost%s", restPort)
	logging.Info("   ❤️  Health check: http://localhost%s/health", restPort)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logging.Info("📡 Получен сигнал %v, завершение работы...", sig)
	}

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := server.Stop(stopCtx); err != nil {
		return fmt.Errorf("остановка REST API: %w", err)
	}
	logging.Info("👋 Сервер остановлен")
	return nil
}

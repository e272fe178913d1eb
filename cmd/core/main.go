package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpc_adapter "github.com/JoeShih716/go-mem-point/internal/app/point/adapter/in/grpc"
	http_adapter "github.com/JoeShih716/go-mem-point/internal/app/point/adapter/in/http"
	"github.com/JoeShih716/go-mem-point/internal/app/point/adapter/out/journal"
	memory_adapter "github.com/JoeShih716/go-mem-point/internal/app/point/adapter/out/memory"
	"github.com/JoeShih716/go-mem-point/internal/app/point/usecase"
	"github.com/JoeShih716/go-mem-point/internal/logger"
	"github.com/JoeShih716/go-mem-point/internal/metrics"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	// 1. 載入設定
	if err := loadDotEnv(); err != nil {
		log.Fatalf("%v", err)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.App.Env)
	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	appLogger.Info("server exited")
}

func run(ctx context.Context, cfg Config, appLogger *slog.Logger) error {
	// core 的背景 goroutine (Sequencer / Journal) 要等 Server 都停了才停止
	coreCtx, stopCore := context.WithCancel(context.Background())
	defer stopCore()

	// 2. 初始化 Store + Guard
	mode, err := usecase.ParseGuardMode(cfg.Guard.Mode)
	if err != nil {
		return err
	}
	balances, ledger, guard := newStores(coreCtx, mode)
	appLogger.Info("guard selected", "mode", mode)

	// Journal 啟動前先確認 port 可用
	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		return err
	}

	// 3. 初始化 Journal (Optional)
	opts := []usecase.Option{usecase.WithObserver(metrics.OperationObserver{})}
	pointJournal, err := journal.NewFromConfig(ctx, cfg.Journal, appLogger)
	if err != nil {
		_ = lis.Close()
		return err
	}
	if pointJournal != nil {
		pointJournal.Start(coreCtx)
		opts = append(opts, usecase.WithJournal(pointJournal))
		appLogger.Info("journal enabled", "driver", cfg.Journal.Driver)
	}

	// 4. 初始化 UseCase
	pointUseCase := usecase.NewPointUseCase(balances, ledger, guard, opts...)

	// 5. 初始化 Driving Adapter
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(grpc_adapter.LoggingInterceptor(appLogger)))
	grpc_adapter.RegisterPointServiceServer(grpcServer, grpc_adapter.NewGrpcServer(pointUseCase, appLogger))
	reflection.Register(grpcServer)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           http_adapter.NewRouter(http_adapter.NewHandler(pointUseCase, appLogger), appLogger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 6. 啟動 Server，收到訊號後 Graceful Shutdown
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("starting gRPC server", "addr", cfg.GRPC.Addr)
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		appLogger.Info("starting HTTP server", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})
	err = g.Wait()

	// 7. 停止 core，等 Journal 寫完
	stopCore()
	if pointJournal != nil {
		<-pointJournal.Done()
		appLogger.Info("journal drained", "dropped", pointJournal.Dropped())
	}
	return err
}

// newStores 依 guard 模式組合 Store 與 Guard
// per_user 模式下不同使用者會同時存取 map，Store 需要自己的同步
func newStores(ctx context.Context, mode usecase.GuardMode) (usecase.BalanceStore, usecase.LedgerStore, usecase.Guard) {
	balances := memory_adapter.NewBalanceStore()
	ledger := memory_adapter.NewLedgerStore()

	switch mode {
	case usecase.GuardModePerUser:
		return memory_adapter.NewSyncBalanceStore(balances), memory_adapter.NewSyncLedgerStore(ledger), usecase.NewKeyedGuard()
	case usecase.GuardModeSequencer:
		sequencer := usecase.NewSequencer()
		sequencer.Start(ctx)
		return balances, ledger, sequencer
	default:
		return balances, ledger, usecase.NewMutexGuard()
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	grpc_adapter "github.com/JoeShih716/go-mem-point/internal/app/point/adapter/in/grpc"
	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
	"github.com/JoeShih716/go-mem-point/internal/app/point/usecase"
	"github.com/JoeShih716/go-mem-point/internal/logger"
	grpc_pool "github.com/JoeShih716/go-mem-point/pkg/grpc"
)

type loadConfig struct {
	UserID      int64
	TotalCount  int
	Concurrency int
	Amount      int64
}

type loadReport struct {
	Before     domain.UserPoint
	After      domain.UserPoint
	Failed     int
	NewEntries int
	Elapsed    time.Duration
}

func main() {
	target := flag.String("target", "localhost:50051", "gRPC server address")
	userID := flag.Int64("user", 1, "user id to charge")
	total := flag.Int("n", 1000, "number of charges")
	concurrency := flag.Int("c", 100, "concurrent requests")
	amount := flag.Int64("amount", 10, "amount per charge")
	timeout := flag.Duration("timeout", 60*time.Second, "overall timeout")
	env := flag.String("env", "dev", "log format: dev | prod")
	flag.Parse()

	appLogger := logger.New(*env)
	pool := grpc_pool.NewPool(grpc_pool.WithInterceptor(grpc_pool.LoggingInterceptor(appLogger)))
	defer pool.Close()

	conn, err := pool.GetConnection(*target)
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	client := grpc_adapter.NewClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg := loadConfig{
		UserID:      *userID,
		TotalCount:  *total,
		Concurrency: *concurrency,
		Amount:      *amount,
	}
	report, err := runLoad(ctx, client, cfg)
	if err != nil {
		log.Fatalf("load failed: %v", err)
	}

	fmt.Printf("Completed %d requests in %v\n", cfg.TotalCount, report.Elapsed)
	fmt.Printf("TPS: %.2f\n", float64(cfg.TotalCount)/report.Elapsed.Seconds())

	if err := report.verify(cfg); err != nil {
		log.Fatalf("consistency check failed: %v", err)
	}
	fmt.Printf("Balance %d -> %d, history +%d: OK\n", report.Before.Point, report.After.Point, report.NewEntries)
}

// runLoad 同時送出 TotalCount 筆充值，前後各讀一次點數與紀錄
func runLoad(ctx context.Context, svc usecase.PointService, cfg loadConfig) (loadReport, error) {
	var report loadReport

	before, err := svc.GetPoint(ctx, cfg.UserID)
	if err != nil {
		return report, err
	}
	historyBefore, err := svc.History(ctx, cfg.UserID)
	if err != nil {
		return report, err
	}
	if limit := (domain.MaxBalance - 1 - before.Point) / max(cfg.Amount, 1); int64(cfg.TotalCount) > limit {
		return report, fmt.Errorf("%d charges of %d would exceed the balance cap (current %d)", cfg.TotalCount, cfg.Amount, before.Point)
	}

	failed := make(chan struct{}, cfg.TotalCount)
	startTime := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Concurrency, 1))
	for i := 0; i < cfg.TotalCount; i++ {
		g.Go(func() error {
			if _, err := svc.Charge(gctx, cfg.UserID, cfg.Amount); err != nil {
				failed <- struct{}{}
			}
			return nil
		})
	}
	_ = g.Wait()
	report.Elapsed = time.Since(startTime)
	report.Failed = len(failed)

	report.Before = before
	if report.After, err = svc.GetPoint(ctx, cfg.UserID); err != nil {
		return report, err
	}
	historyAfter, err := svc.History(ctx, cfg.UserID)
	if err != nil {
		return report, err
	}
	report.NewEntries = len(historyAfter) - len(historyBefore)
	return report, nil
}

// verify 所有成功的充值都要反映在點數與紀錄上
func (r loadReport) verify(cfg loadConfig) error {
	succeeded := cfg.TotalCount - r.Failed
	if r.Failed > 0 {
		return fmt.Errorf("%d of %d charges failed", r.Failed, cfg.TotalCount)
	}
	if want := r.Before.Point + int64(succeeded)*cfg.Amount; r.After.Point != want {
		return fmt.Errorf("balance %d, want %d", r.After.Point, want)
	}
	if r.NewEntries != succeeded {
		return fmt.Errorf("history grew by %d, want %d", r.NewEntries, succeeded)
	}
	return nil
}

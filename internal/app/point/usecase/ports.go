package usecase

import (
	"context"
	"time"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
)

// BalanceStore 使用者點數的儲存介面
// 實作本身不負責同步，由 Guard 保證序列化
type BalanceStore interface {
	// Get 取得目前點數，ok=false 表示尚無紀錄
	Get(userID int64) (point domain.UserPoint, ok bool)
	// Put 直接覆寫點數並蓋上目前時間
	Put(userID int64, point int64) domain.UserPoint
}

// LedgerStore 點數異動紀錄的儲存介面 (只能追加)
type LedgerStore interface {
	// Append 追加一筆紀錄到該使用者的尾端
	Append(userID int64, amount int64, txType domain.TransactionType, updateMillis int64) domain.LedgerEntry
	// List 依寫入順序回傳該使用者所有紀錄，沒有時回傳空 slice
	List(userID int64) []domain.LedgerEntry
}

// Guard 序列化點數異動的互斥機制
// fn 執行期間，同一個 userID 的其他 Do 不可同時執行
type Guard interface {
	Do(userID int64, fn func() error) error
}

// Journal 接收已套用的異動紀錄 (非同步送出)
// Record 在 Guard 內被呼叫，不可做 I/O 或長時間阻塞
type Journal interface {
	Record(entry domain.LedgerEntry)
}

// Observer 觀測每次操作的結果 (metrics)
type Observer interface {
	Observe(op string, err error, elapsed time.Duration)
}

//go:generate mockgen -destination=../../../../gen/mocks/point/mock_ports.go -package=mocks github.com/JoeShih716/go-mem-point/internal/app/point/usecase PointService

// PointService 提供給 Driving Adapter (gRPC / HTTP) 的介面
type PointService interface {
	GetPoint(ctx context.Context, userID int64) (domain.UserPoint, error)
	Charge(ctx context.Context, userID int64, amount int64) (domain.UserPoint, error)
	Use(ctx context.Context, userID int64, amount int64) (domain.UserPoint, error)
	History(ctx context.Context, userID int64) ([]domain.LedgerEntry, error)
}

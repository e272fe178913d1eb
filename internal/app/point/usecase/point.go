package usecase

import (
	"context"
	"time"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
)

const (
	OpGetPoint = "get_point"
	OpCharge   = "charge"
	OpUse      = "use"
	OpHistory  = "history"
)

// PointUseCase 是點數核心業務邏輯層
// 所有讀寫都透過 Guard 序列化，Store 本身不做同步
type PointUseCase struct {
	balances BalanceStore
	ledger   LedgerStore
	guard    Guard
	journal  Journal
	observer Observer
}

// Option 定義了 PointUseCase 的配置選項函數
type Option func(*PointUseCase)

// WithJournal 設定異動紀錄的輸出端
func WithJournal(journal Journal) Option {
	return func(c *PointUseCase) {
		c.journal = journal
	}
}

// WithObserver 設定操作結果的觀測者
func WithObserver(observer Observer) Option {
	return func(c *PointUseCase) {
		c.observer = observer
	}
}

// NewPointUseCase 建立 PointUseCase
//
// 參數:
//
//	balances: 點數儲存
//	ledger: 異動紀錄儲存
//	guard: 序列化機制 (全域鎖 / 每使用者鎖 / Sequencer)
//	opts: 可選的 Journal / Observer
//
// 回傳:
//
//	*PointUseCase: 實例
func NewPointUseCase(balances BalanceStore, ledger LedgerStore, guard Guard, opts ...Option) *PointUseCase {
	c := &PointUseCase{
		balances: balances,
		ledger:   ledger,
		guard:    guard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetPoint 取得使用者點數，沒有紀錄時回傳 0 點
func (c *PointUseCase) GetPoint(ctx context.Context, userID int64) (domain.UserPoint, error) {
	start := time.Now()
	var result domain.UserPoint
	err := c.guarded(userID, func() error {
		result = c.load(userID)
		return nil
	})
	c.observe(OpGetPoint, err, start)
	return result, err
}

// Charge 充值
//
// 參數:
//
//	ctx: 上下文
//	userID: 使用者 ID
//	amount: 充值金額
//
// 回傳:
//
//	domain.UserPoint: 充值後的點數
//	error: ErrNegativeCharge / ErrBalanceCapExceeded，失敗時不修改任何狀態
func (c *PointUseCase) Charge(ctx context.Context, userID int64, amount int64) (domain.UserPoint, error) {
	start := time.Now()
	var result domain.UserPoint
	err := c.guarded(userID, func() error {
		next, err := c.load(userID).Charge(amount)
		if err != nil {
			return err
		}
		result = c.commit(userID, amount, domain.TransactionTypeCharge, next)
		return nil
	})
	c.observe(OpCharge, err, start)
	return result, err
}

// Use 使用點數
//
// 參數:
//
//	ctx: 上下文
//	userID: 使用者 ID
//	amount: 使用金額
//
// 回傳:
//
//	domain.UserPoint: 使用後的點數
//	error: ErrNegativeUse / ErrInsufficientBalance，失敗時不修改任何狀態
func (c *PointUseCase) Use(ctx context.Context, userID int64, amount int64) (domain.UserPoint, error) {
	start := time.Now()
	var result domain.UserPoint
	err := c.guarded(userID, func() error {
		next, err := c.load(userID).Use(amount)
		if err != nil {
			return err
		}
		result = c.commit(userID, amount, domain.TransactionTypeUse, next)
		return nil
	})
	c.observe(OpUse, err, start)
	return result, err
}

// History 依寫入順序回傳使用者的異動紀錄
func (c *PointUseCase) History(ctx context.Context, userID int64) ([]domain.LedgerEntry, error) {
	start := time.Now()
	var result []domain.LedgerEntry
	err := c.guarded(userID, func() error {
		result = c.ledger.List(userID)
		return nil
	})
	c.observe(OpHistory, err, start)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *PointUseCase) guarded(userID int64, fn func() error) error {
	if userID < 0 {
		return domain.ErrInvalidUserID
	}
	return c.guard.Do(userID, fn)
}

// load 讀取點數，沒有紀錄時以 0 點為預設
func (c *PointUseCase) load(userID int64) domain.UserPoint {
	if point, ok := c.balances.Get(userID); ok {
		return point
	}
	return domain.EmptyUserPoint(userID)
}

// commit 先寫異動紀錄再寫點數，呼叫端必須持有 Guard
func (c *PointUseCase) commit(userID, amount int64, txType domain.TransactionType, next domain.UserPoint) domain.UserPoint {
	entry := c.ledger.Append(userID, amount, txType, next.UpdateMillis)
	stored := c.balances.Put(userID, next.Point)
	if c.journal != nil {
		c.journal.Record(entry)
	}
	return stored
}

func (c *PointUseCase) observe(op string, err error, start time.Time) {
	if c.observer != nil {
		c.observer.Observe(op, err, time.Since(start))
	}
}

var _ PointService = (*PointUseCase)(nil)

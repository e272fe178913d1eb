package memory

import (
	"sync"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
	"github.com/JoeShih716/go-mem-point/internal/app/point/usecase"
)

// SyncBalanceStore 只保護 map 本身，給 per_user Guard 使用
// (不同使用者會同時寫同一個 map)，不含任何業務邏輯
type SyncBalanceStore struct {
	mu    sync.RWMutex
	inner usecase.BalanceStore
}

func NewSyncBalanceStore(inner usecase.BalanceStore) *SyncBalanceStore {
	return &SyncBalanceStore{inner: inner}
}

func (s *SyncBalanceStore) Get(userID int64) (domain.UserPoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Get(userID)
}

func (s *SyncBalanceStore) Put(userID int64, point int64) domain.UserPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Put(userID, point)
}

// SyncLedgerStore 同上，保護異動紀錄的 map
type SyncLedgerStore struct {
	mu    sync.RWMutex
	inner usecase.LedgerStore
}

func NewSyncLedgerStore(inner usecase.LedgerStore) *SyncLedgerStore {
	return &SyncLedgerStore{inner: inner}
}

func (s *SyncLedgerStore) Append(userID int64, amount int64, txType domain.TransactionType, updateMillis int64) domain.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Append(userID, amount, txType, updateMillis)
}

func (s *SyncLedgerStore) List(userID int64) []domain.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.List(userID)
}

var (
	_ usecase.BalanceStore = (*SyncBalanceStore)(nil)
	_ usecase.LedgerStore  = (*SyncLedgerStore)(nil)
)

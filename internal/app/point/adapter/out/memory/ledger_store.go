package memory

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
	"github.com/JoeShih716/go-mem-point/internal/app/point/usecase"
)

// LedgerStore 記憶體內的異動紀錄，每個使用者一條只能追加的序列
type LedgerStore struct {
	entries map[int64][]domain.LedgerEntry
	// 全局順序號，per_user 模式下不同使用者會同時 Append
	sequence atomic.Int64
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		entries: make(map[int64][]domain.LedgerEntry),
	}
}

// Append 追加一筆紀錄，分配順序號與 TransactionID
func (s *LedgerStore) Append(userID int64, amount int64, txType domain.TransactionType, updateMillis int64) domain.LedgerEntry {
	entry := domain.LedgerEntry{
		ID:            s.sequence.Add(1),
		TransactionID: uuid.New(),
		UserID:        userID,
		Amount:        amount,
		Type:          txType,
		UpdateMillis:  updateMillis,
	}
	s.entries[userID] = append(s.entries[userID], entry)
	return entry
}

// List 回傳複本，呼叫端修改不影響帳本
func (s *LedgerStore) List(userID int64) []domain.LedgerEntry {
	entries := s.entries[userID]
	out := make([]domain.LedgerEntry, len(entries))
	copy(out, entries)
	return out
}

var _ usecase.LedgerStore = (*LedgerStore)(nil)

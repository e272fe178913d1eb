package memory

import (
	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
	"github.com/JoeShih716/go-mem-point/internal/app/point/usecase"
)

// BalanceStore 記憶體內的使用者點數
// 沒有任何 Lock，序列化由 usecase.Guard 負責
type BalanceStore struct {
	points map[int64]domain.UserPoint
}

func NewBalanceStore() *BalanceStore {
	return &BalanceStore{
		points: make(map[int64]domain.UserPoint),
	}
}

// Get 取得使用者點數
//
// 參數:
//
//	userID: 使用者 ID
//
// 回傳:
//
//	domain.UserPoint: 目前點數
//	bool: 是否存在
func (s *BalanceStore) Get(userID int64) (domain.UserPoint, bool) {
	point, ok := s.points[userID]
	return point, ok
}

// Put 覆寫使用者點數，UpdateMillis 為寫入當下時間
func (s *BalanceStore) Put(userID int64, point int64) domain.UserPoint {
	record := domain.UserPoint{
		ID:           userID,
		Point:        point,
		UpdateMillis: domain.NowMillis(),
	}
	s.points[userID] = record
	return record
}

var _ usecase.BalanceStore = (*BalanceStore)(nil)

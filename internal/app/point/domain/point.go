package domain

import "time"

// MaxBalance 餘額上限 (不含)，餘額必須嚴格小於此值
const MaxBalance int64 = 1_000_000

// UserPoint 使用者目前的點數
type UserPoint struct {
	ID           int64
	Point        int64
	UpdateMillis int64
}

// EmptyUserPoint 尚未有任何紀錄的使用者，點數為 0
func EmptyUserPoint(id int64) UserPoint {
	return UserPoint{
		ID:           id,
		Point:        0,
		UpdateMillis: NowMillis(),
	}
}

// Charge 充值，回傳新的 UserPoint，原值不變
//
// 參數:
//
//	amount: 充值金額 (>= 0)
//
// 回傳:
//
//	UserPoint: 充值後的點數
//	error: ErrNegativeCharge / ErrBalanceCapExceeded
func (p UserPoint) Charge(amount int64) (UserPoint, error) {
	if amount < 0 {
		return p, ErrNegativeCharge
	}
	// 先檢查差距，避免 Point + amount 溢位
	if amount >= MaxBalance-p.Point {
		return p, ErrBalanceCapExceeded
	}
	return UserPoint{
		ID:           p.ID,
		Point:        p.Point + amount,
		UpdateMillis: NowMillis(),
	}, nil
}

// Use 使用點數，回傳新的 UserPoint，原值不變
//
// 參數:
//
//	amount: 使用金額 (>= 0)
//
// 回傳:
//
//	UserPoint: 使用後的點數
//	error: ErrNegativeUse / ErrInsufficientBalance
func (p UserPoint) Use(amount int64) (UserPoint, error) {
	if amount < 0 {
		return p, ErrNegativeUse
	}
	if p.Point < amount {
		return p, ErrInsufficientBalance
	}
	return UserPoint{
		ID:           p.ID,
		Point:        p.Point - amount,
		UpdateMillis: NowMillis(),
	}, nil
}

// NowMillis 目前時間 (Unix 毫秒)
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

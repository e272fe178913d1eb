package domain

import "github.com/google/uuid"

// TransactionType 交易類型
type TransactionType uint8

const (
	// 充值
	TransactionTypeCharge TransactionType = 1
	// 使用
	TransactionTypeUse TransactionType = 2
)

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeCharge:
		return "CHARGE"
	case TransactionTypeUse:
		return "USE"
	default:
		return "UNKNOWN"
	}
}

// ParseTransactionType 由字串轉回交易類型
func ParseTransactionType(s string) (TransactionType, bool) {
	switch s {
	case "CHARGE":
		return TransactionTypeCharge, true
	case "USE":
		return TransactionTypeUse, true
	default:
		return 0, false
	}
}

// LedgerEntry 一筆點數異動紀錄，建立後不可修改
type LedgerEntry struct {
	// ID: 帳本內的順序號 (1, 2, 3...)，依寫入順序遞增
	ID int64
	// TransactionID: 外部追蹤號
	TransactionID uuid.UUID
	UserID        int64
	// Amount: 異動金額，恆為非負
	Amount       int64
	Type         TransactionType
	UpdateMillis int64
}

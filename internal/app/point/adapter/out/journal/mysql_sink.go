package journal

import (
	"context"
	"fmt"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
	"github.com/JoeShih716/go-mem-point/pkg/mysql"
)

// sqlPointHistory 對應資料庫的 point_histories 表
type sqlPointHistory struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Sequence     int64  `gorm:"index"`                                     // 對應 domain.LedgerEntry.ID
	RefID        []byte `gorm:"column:ref_id;type:binary(16);uniqueIndex"` // 對應 domain.LedgerEntry.TransactionID
	UserID       int64  `gorm:"index"`
	Amount       int64
	Type         uint8
	UpdateMillis int64
}

func (*sqlPointHistory) TableName() string {
	return "point_histories"
}

func toSQLPointHistory(e domain.LedgerEntry) sqlPointHistory {
	return sqlPointHistory{
		Sequence:     e.ID,
		RefID:        e.TransactionID[:],
		UserID:       e.UserID,
		Amount:       e.Amount,
		Type:         uint8(e.Type),
		UpdateMillis: e.UpdateMillis,
	}
}

// MySQLSink 把異動紀錄批次寫入 MySQL，只做稽核鏡像，服務不會讀回
type MySQLSink struct {
	client *mysql.Client
}

// NewMySQLSink 建立 Sink 並確保資料表存在
func NewMySQLSink(ctx context.Context, client *mysql.Client) (*MySQLSink, error) {
	if err := client.DB().WithContext(ctx).AutoMigrate(&sqlPointHistory{}); err != nil {
		return nil, fmt.Errorf("migrate point_histories: %w", err)
	}
	return &MySQLSink{client: client}, nil
}

func (s *MySQLSink) Write(ctx context.Context, entries []domain.LedgerEntry) error {
	rows := make([]sqlPointHistory, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, toSQLPointHistory(e))
	}
	if err := s.client.DB().WithContext(ctx).CreateInBatches(rows, len(rows)).Error; err != nil {
		return fmt.Errorf("insert point_histories: %w", err)
	}
	return nil
}

func (s *MySQLSink) Close() error {
	return s.client.Close()
}

var _ Sink = (*MySQLSink)(nil)

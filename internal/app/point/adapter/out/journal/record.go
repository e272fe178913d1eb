package journal

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
)

// EntryRecord 異動紀錄對外的 JSON 格式 (檔案 / Kafka / NATS 共用)
type EntryRecord struct {
	ID            int64  `json:"id"`
	TransactionID string `json:"transaction_id"`
	UserID        int64  `json:"user_id"`
	Amount        int64  `json:"amount"`
	Type          string `json:"type"`
	UpdateMillis  int64  `json:"update_millis"`
}

func NewEntryRecord(e domain.LedgerEntry) EntryRecord {
	return EntryRecord{
		ID:            e.ID,
		TransactionID: e.TransactionID.String(),
		UserID:        e.UserID,
		Amount:        e.Amount,
		Type:          e.Type.String(),
		UpdateMillis:  e.UpdateMillis,
	}
}

// DecodeEntry 把一行 JSON 轉回 domain.LedgerEntry
func DecodeEntry(raw []byte) (domain.LedgerEntry, error) {
	var r EntryRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("decode journal entry: %w", err)
	}
	txID, err := uuid.Parse(r.TransactionID)
	if err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("decode journal entry %d: %w", r.ID, err)
	}
	txType, ok := domain.ParseTransactionType(r.Type)
	if !ok {
		return domain.LedgerEntry{}, fmt.Errorf("decode journal entry %d: unknown type %q", r.ID, r.Type)
	}
	return domain.LedgerEntry{
		ID:            r.ID,
		TransactionID: txID,
		UserID:        r.UserID,
		Amount:        r.Amount,
		Type:          txType,
		UpdateMillis:  r.UpdateMillis,
	}, nil
}

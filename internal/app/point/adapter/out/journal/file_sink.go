package journal

import (
	"context"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
	"github.com/JoeShih716/go-mem-point/pkg/wal"
)

// FileSink 以 JSON Lines 寫入 WAL 檔案，每批一次 fsync
type FileSink struct {
	wal *wal.WAL
}

func NewFileSink(path string) (*FileSink, error) {
	w, err := wal.Open(path)
	if err != nil {
		return nil, err
	}
	return &FileSink{wal: w}, nil
}

func (s *FileSink) Write(_ context.Context, entries []domain.LedgerEntry) error {
	records := make([]any, 0, len(entries))
	for _, e := range entries {
		records = append(records, NewEntryRecord(e))
	}
	return s.wal.Append(records...)
}

func (s *FileSink) Close() error {
	return s.wal.Close()
}

var _ Sink = (*FileSink)(nil)

package journal

import (
	"context"
	"sync/atomic"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
	"github.com/JoeShih716/go-mem-point/internal/app/point/usecase"
	"github.com/JoeShih716/go-mem-point/internal/logger"
	"github.com/JoeShih716/go-mem-point/internal/metrics"
)

const (
	defaultBuffer    = 4096
	defaultBatchSize = 128
)

// Sink 異動紀錄的最終輸出端 (檔案 / MySQL / Kafka / NATS)
// Write 回傳後 entries 會被重複使用，實作不可保留
type Sink interface {
	Write(ctx context.Context, entries []domain.LedgerEntry) error
	Close() error
}

// Journal 把已套用的異動紀錄非同步送到 Sink
// Record 在 Guard 內呼叫，只做 non-blocking 的 channel 寫入
//
// Record -> Channel -> Run Loop (批次) -> Sink.Write
type Journal struct {
	queue     chan domain.LedgerEntry
	sink      Sink
	batchSize int
	logger    logger.Logger
	dropped   atomic.Int64
	// 只在輸出迴圈內讀寫
	reported int64
	done     chan struct{}
}

// New 建立 Journal
//
// 參數:
//
//	sink: 輸出端
//	buffer: 佇列長度，滿了之後的紀錄會被丟棄並計數
//	batchSize: 每次 Sink.Write 的最大筆數
//	log: Logger
//
// 回傳:
//
//	*Journal: 實例，需呼叫 Start 才會開始輸出
func New(sink Sink, buffer, batchSize int, log logger.Logger) *Journal {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Journal{
		queue:     make(chan domain.LedgerEntry, buffer),
		sink:      sink,
		batchSize: batchSize,
		logger:    log,
		done:      make(chan struct{}),
	}
}

// Record 放入佇列，佇列滿時直接丟棄，不阻塞呼叫端
func (j *Journal) Record(entry domain.LedgerEntry) {
	select {
	case j.queue <- entry:
		metrics.JournalQueueDepth.Set(float64(len(j.queue)))
	default:
		j.dropped.Add(1)
		metrics.JournalDropped.Inc()
	}
}

// Start 啟動輸出迴圈 (非同步)
// ctx 結束時把佇列剩下的紀錄寫完並關閉 Sink，之後 Done 會被關閉
func (j *Journal) Start(ctx context.Context) {
	go j.run(ctx)
}

// Done 輸出迴圈結束後關閉
func (j *Journal) Done() <-chan struct{} {
	return j.done
}

// Dropped 因佇列滿而被丟棄的筆數
func (j *Journal) Dropped() int64 {
	return j.dropped.Load()
}

func (j *Journal) run(ctx context.Context) {
	defer close(j.done)

	// 關閉信號只結束迴圈，已取出的批次仍要完整寫入
	writeCtx := context.WithoutCancel(ctx)
	batch := make([]domain.LedgerEntry, 0, j.batchSize)
	for {
		select {
		case <-ctx.Done():
			// 收到關閉信號，把剩下的紀錄處理完
			j.drain(writeCtx, batch[:0])
			if err := j.sink.Close(); err != nil {
				j.logger.Error("failed to close journal sink", "error", err.Error())
			}
			return
		case entry := <-j.queue:
			batch = append(batch[:0], entry)
			batch = j.fill(batch)
			j.flush(writeCtx, batch)
		}
	}
}

// fill 不等待地把佇列中現有的紀錄補進同一批
func (j *Journal) fill(batch []domain.LedgerEntry) []domain.LedgerEntry {
	for len(batch) < j.batchSize {
		select {
		case entry := <-j.queue:
			batch = append(batch, entry)
		default:
			return batch
		}
	}
	return batch
}

func (j *Journal) drain(ctx context.Context, batch []domain.LedgerEntry) {
	for {
		batch = j.fill(batch[:0])
		if len(batch) == 0 {
			return
		}
		j.flush(ctx, batch)
	}
}

func (j *Journal) flush(ctx context.Context, batch []domain.LedgerEntry) {
	metrics.JournalQueueDepth.Set(float64(len(j.queue)))
	if err := j.sink.Write(ctx, batch); err != nil {
		metrics.JournalWriteErrors.Inc()
		j.logger.Error("failed to write journal batch",
			"error", err.Error(),
			"size", len(batch),
			"first_id", batch[0].ID,
		)
	}
	if dropped := j.dropped.Load(); dropped > j.reported {
		j.reported = dropped
		j.logger.Warn("journal queue overflow", "dropped_total", dropped)
	}
}

var _ usecase.Journal = (*Journal)(nil)

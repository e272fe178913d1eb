package journal

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
	"github.com/JoeShih716/go-mem-point/internal/logger"
	"github.com/JoeShih716/go-mem-point/pkg/wal"
)

type memorySink struct {
	mu      sync.Mutex
	entries []domain.LedgerEntry
	batches []int
	closed  bool
	err     error
}

func (s *memorySink) Write(_ context.Context, entries []domain.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	s.batches = append(s.batches, len(entries))
	return s.err
}

func (s *memorySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *memorySink) snapshot() []domain.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LedgerEntry(nil), s.entries...)
}

func entry(id int64, txType domain.TransactionType) domain.LedgerEntry {
	return domain.LedgerEntry{
		ID:            id,
		TransactionID: uuid.New(),
		UserID:        id % 3,
		Amount:        id * 10,
		Type:          txType,
		UpdateMillis:  1700000000000 + id,
	}
}

func TestJournal_WritesInOrderAndDrainsOnStop(t *testing.T) {
	t.Parallel()

	sink := &memorySink{}
	j := New(sink, 64, 8, logger.Discard)

	// Start 之前放入的紀錄也要送出
	for i := int64(1); i <= 20; i++ {
		j.Record(entry(i, domain.TransactionTypeCharge))
	}

	ctx, cancel := context.WithCancel(context.Background())
	j.Start(ctx)

	for i := int64(21); i <= 40; i++ {
		j.Record(entry(i, domain.TransactionTypeUse))
	}
	require.Eventually(t, func() bool { return len(sink.snapshot()) == 40 }, time.Second, 5*time.Millisecond)

	cancel()
	<-j.Done()

	got := sink.snapshot()
	for i, e := range got {
		assert.Equal(t, int64(i+1), e.ID)
	}
	for _, size := range sink.batches {
		assert.LessOrEqual(t, size, 8)
	}
	assert.True(t, sink.closed)
	assert.Zero(t, j.Dropped())
}

func TestJournal_DropsWhenFull(t *testing.T) {
	t.Parallel()

	sink := &memorySink{}
	j := New(sink, 2, 8, logger.Discard)

	j.Record(entry(1, domain.TransactionTypeCharge))
	j.Record(entry(2, domain.TransactionTypeCharge))
	j.Record(entry(3, domain.TransactionTypeCharge))
	assert.Equal(t, int64(1), j.Dropped())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	j.Start(ctx)
	<-j.Done()

	assert.Len(t, sink.snapshot(), 2)
}

func TestJournal_SinkErrorDoesNotStopLoop(t *testing.T) {
	t.Parallel()

	sink := &memorySink{err: assert.AnError}
	j := New(sink, 8, 1, logger.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	j.Start(ctx)

	j.Record(entry(1, domain.TransactionTypeCharge))
	j.Record(entry(2, domain.TransactionTypeUse))
	require.Eventually(t, func() bool { return len(sink.snapshot()) == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	<-j.Done()
}

// blockingSink 第一次 Write 會停住直到 release 被關閉，並記下當時 ctx 的狀態
type blockingSink struct {
	memorySink
	started chan struct{}
	release chan struct{}
	once    sync.Once
	ctxErr  error
}

func (s *blockingSink) Write(ctx context.Context, entries []domain.LedgerEntry) error {
	first := false
	s.once.Do(func() { first = true })
	if first {
		close(s.started)
		<-s.release
		s.mu.Lock()
		s.ctxErr = ctx.Err()
		s.mu.Unlock()
	}
	return s.memorySink.Write(ctx, entries)
}

func TestJournal_InFlightBatchSurvivesStop(t *testing.T) {
	t.Parallel()

	sink := &blockingSink{started: make(chan struct{}), release: make(chan struct{})}
	j := New(sink, 8, 8, logger.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	j.Start(ctx)

	j.Record(entry(1, domain.TransactionTypeCharge))
	<-sink.started

	// 寫入途中收到關閉信號
	cancel()
	close(sink.release)
	<-j.Done()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.NoError(t, sink.ctxErr)
	require.Len(t, sink.entries, 1)
	assert.Equal(t, int64(1), sink.entries[0].ID)
	assert.True(t, sink.closed)
}

func TestFileSink_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.log")
	sink, err := NewFileSink(path)
	require.NoError(t, err)

	written := []domain.LedgerEntry{
		entry(1, domain.TransactionTypeCharge),
		entry(2, domain.TransactionTypeUse),
	}
	require.NoError(t, sink.Write(context.Background(), written))
	require.NoError(t, sink.Close())

	w, err := wal.Open(path)
	require.NoError(t, err)
	defer w.Close()

	var read []domain.LedgerEntry
	require.NoError(t, w.ReadAll(func(raw []byte) error {
		e, err := DecodeEntry(raw)
		if err != nil {
			return err
		}
		read = append(read, e)
		return nil
	}))
	assert.Equal(t, written, read)
}

func TestDecodeEntry_Invalid(t *testing.T) {
	t.Parallel()

	_, err := DecodeEntry([]byte(`{"id":1,"transaction_id":"nope","type":"CHARGE"}`))
	assert.Error(t, err)

	_, err = DecodeEntry([]byte(`{"id":1,"transaction_id":"` + uuid.NewString() + `","type":"REFUND"}`))
	assert.Error(t, err)

	_, err = DecodeEntry([]byte(`not json`))
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	j, err := NewFromConfig(context.Background(), Config{Driver: DriverNone}, logger.Discard)
	require.NoError(t, err)
	assert.Nil(t, j)

	_, err = NewFromConfig(context.Background(), Config{Driver: "s3"}, logger.Discard)
	assert.Error(t, err)

	_, err = NewFromConfig(context.Background(), Config{Driver: DriverKafka}, logger.Discard)
	assert.Error(t, err)

	cfg := Config{Driver: DriverFile}
	cfg.File.Path = filepath.Join(t.TempDir(), "journal.log")
	j, err = NewFromConfig(context.Background(), cfg, logger.Discard)
	require.NoError(t, err)
	require.NotNil(t, j)
	require.NoError(t, j.sink.Close())
}

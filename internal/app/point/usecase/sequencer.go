package usecase

import (
	"context"
	"errors"
	"sync"
)

// ErrSequencerStopped Sequencer 已停止，不再接受請求
var ErrSequencerStopped = errors.New("sequencer stopped")

// sequencedRequest 包裝待執行的函式，讓 Do 可以等待結果
type sequencedRequest struct {
	fn     func() error
	result chan error
}

// Sequencer 由單一 goroutine 依序執行所有請求，不需要任何 Lock
//
// Do(等待) -> Channel -> Run Loop -> fn() -> Result Channel -> Do(收到結果)
type Sequencer struct {
	// 輸送帶 (unbuffered)，確保 Loop 停止後送出端不會卡住
	requests chan *sequencedRequest
	stopped  chan struct{}
	// Pool 減少 GC 壓力
	requestPool sync.Pool
}

func NewSequencer() *Sequencer {
	return &Sequencer{
		requests: make(chan *sequencedRequest),
		stopped:  make(chan struct{}),
		requestPool: sync.Pool{
			New: func() interface{} {
				return &sequencedRequest{
					result: make(chan error, 1),
				}
			},
		},
	}
}

// Start 啟動核心迴圈 (非同步)，ctx 結束時處理完剩餘請求後停止
func (s *Sequencer) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sequencer) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(s.stopped)
			s.drain()
			return
		case req := <-s.requests:
			req.result <- req.fn()
		}
	}
}

func (s *Sequencer) drain() {
	for {
		select {
		case req := <-s.requests:
			req.result <- req.fn()
		default:
			return
		}
	}
}

// Do 把 fn 交給核心迴圈執行並等待結果
// 必須先呼叫 Start，否則會一直等待
func (s *Sequencer) Do(_ int64, fn func() error) error {
	req := s.requestPool.Get().(*sequencedRequest)
	req.fn = fn

	select {
	case s.requests <- req:
	case <-s.stopped:
		req.fn = nil
		s.requestPool.Put(req)
		return ErrSequencerStopped
	}

	err := <-req.result
	req.fn = nil
	s.requestPool.Put(req)
	return err
}

var _ Guard = (*Sequencer)(nil)

package usecase

import (
	"fmt"
	"sync"
)

// GuardMode Guard 的實作種類
type GuardMode string

const (
	// GuardModeGlobal 全域單一 Mutex，所有使用者共用
	GuardModeGlobal GuardMode = "global"
	// GuardModePerUser 依使用者分片的 Mutex，不同使用者可並行
	GuardModePerUser GuardMode = "per_user"
	// GuardModeSequencer 單一 goroutine 依序執行 (LMAX 風格)
	GuardModeSequencer GuardMode = "sequencer"
)

// ParseGuardMode 解析設定檔的 guard.mode
func ParseGuardMode(s string) (GuardMode, error) {
	switch m := GuardMode(s); m {
	case GuardModeGlobal, GuardModePerUser, GuardModeSequencer:
		return m, nil
	case "":
		return GuardModeGlobal, nil
	default:
		return "", fmt.Errorf("unknown guard mode %q", s)
	}
}

// MutexGuard 全域鎖，所有操作完全排序
type MutexGuard struct {
	mu sync.Mutex
}

func NewMutexGuard() *MutexGuard {
	return &MutexGuard{}
}

// Do 取得全域鎖後執行 fn，失敗路徑也會釋放
func (g *MutexGuard) Do(_ int64, fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn()
}

const defaultKeyedShards = 1024

// KeyedGuard 依 userID 分片的鎖，同一使用者一定落在同一把鎖
// 鎖的數量固定，不隨看過的使用者數量成長；不同使用者可能共用一個分片
//
// 結構:
//
//	shards: userID % len(shards) -> sync.Mutex
type KeyedGuard struct {
	shards []sync.Mutex
}

func NewKeyedGuard() *KeyedGuard {
	return NewKeyedGuardWithShards(defaultKeyedShards)
}

// NewKeyedGuardWithShards 指定分片數量，n <= 0 時使用預設值
func NewKeyedGuardWithShards(n int) *KeyedGuard {
	if n <= 0 {
		n = defaultKeyedShards
	}
	return &KeyedGuard{shards: make([]sync.Mutex, n)}
}

// Do 取得該使用者所屬分片的鎖後執行 fn
func (g *KeyedGuard) Do(userID int64, fn func() error) error {
	mu := g.shard(userID)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

func (g *KeyedGuard) shard(userID int64) *sync.Mutex {
	return &g.shards[uint64(userID)%uint64(len(g.shards))]
}

var (
	_ Guard = (*MutexGuard)(nil)
	_ Guard = (*KeyedGuard)(nil)
)

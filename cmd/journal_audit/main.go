package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/JoeShih716/go-mem-point/internal/app/point/adapter/out/journal"
	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
	"github.com/JoeShih716/go-mem-point/pkg/wal"
)

// userSummary 單一使用者在 journal 中的統計
type userSummary struct {
	UserID  int64
	Charged int64
	Used    int64
	Charges int
	Uses    int
	LastID  int64
}

func (s userSummary) Net() int64 {
	return s.Charged - s.Used
}

func main() {
	path := flag.String("file", "journal.log", "journal file written by the file driver")
	flag.Parse()

	w, err := openJournal(*path)
	if err != nil {
		log.Fatalf("Failed to open journal: %v", err)
	}
	defer w.Close()

	summaries, err := audit(w)
	if err != nil {
		log.Fatalf("Failed to read journal: %v", err)
	}
	printSummaries(os.Stdout, summaries)
}

// openJournal 只開啟已存在的 journal，稽核工具不應該建立新檔
func openJournal(path string) (*wal.WAL, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return wal.Open(path)
}

// audit 逐筆讀取 journal，依使用者彙總充值與使用
func audit(w *wal.WAL) ([]userSummary, error) {
	byUser := make(map[int64]*userSummary)
	err := w.ReadAll(func(raw []byte) error {
		e, err := journal.DecodeEntry(raw)
		if err != nil {
			return err
		}
		s, ok := byUser[e.UserID]
		if !ok {
			s = &userSummary{UserID: e.UserID}
			byUser[e.UserID] = s
		}
		switch e.Type {
		case domain.TransactionTypeCharge:
			s.Charged += e.Amount
			s.Charges++
		case domain.TransactionTypeUse:
			s.Used += e.Amount
			s.Uses++
		}
		s.LastID = max(s.LastID, e.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]userSummary, 0, len(byUser))
	for _, s := range byUser {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].UserID < summaries[j].UserID })
	return summaries, nil
}

func printSummaries(out io.Writer, summaries []userSummary) {
	fmt.Fprintf(out, "%-10s %12s %12s %12s %8s %8s %10s\n", "USER", "CHARGED", "USED", "NET", "CHARGES", "USES", "LAST_ID")
	for _, s := range summaries {
		fmt.Fprintf(out, "%-10d %12d %12d %12d %8d %8d %10d\n", s.UserID, s.Charged, s.Used, s.Net(), s.Charges, s.Uses, s.LastID)
	}
}

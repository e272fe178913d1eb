package journal

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
)

// publisher *nats.Conn 的子集
type publisher interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Drain() error
}

// NATSSink 發佈到 <subject>.charge / <subject>.use
type NATSSink struct {
	conn    publisher
	subject string
}

func NewNATSSink(url, subject string) (*NATSSink, error) {
	conn, err := nats.Connect(url, nats.Name("go-mem-point-journal"))
	if err != nil {
		return nil, err
	}
	return &NATSSink{conn: conn, subject: subject}, nil
}

func (s *NATSSink) Write(ctx context.Context, entries []domain.LedgerEntry) error {
	for _, e := range entries {
		data, err := json.Marshal(NewEntryRecord(e))
		if err != nil {
			return err
		}
		if err := s.conn.Publish(s.subjectFor(e.Type), data); err != nil {
			return err
		}
	}
	return s.conn.FlushWithContext(ctx)
}

func (s *NATSSink) subjectFor(t domain.TransactionType) string {
	return s.subject + "." + strings.ToLower(t.String())
}

// Close 等待送出中的訊息後關閉連線
func (s *NATSSink) Close() error {
	return s.conn.Drain()
}

var _ Sink = (*NATSSink)(nil)

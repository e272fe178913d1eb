package journal

import (
	"context"
	"fmt"

	"github.com/JoeShih716/go-mem-point/internal/logger"
	"github.com/JoeShih716/go-mem-point/pkg/mysql"
)

const (
	DriverNone  = "none"
	DriverFile  = "file"
	DriverMySQL = "mysql"
	DriverKafka = "kafka"
	DriverNATS  = "nats"
)

// Config journal 區段的設定
type Config struct {
	Driver    string `yaml:"driver"`
	Buffer    int    `yaml:"buffer"`
	BatchSize int    `yaml:"batch_size"`

	File struct {
		Path string `yaml:"path"`
	} `yaml:"file"`

	MySQL mysql.Config `yaml:"mysql"`

	Kafka struct {
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
	} `yaml:"kafka"`

	NATS struct {
		URL     string `yaml:"url"`
		Subject string `yaml:"subject"`
	} `yaml:"nats"`
}

// NewFromConfig 依 driver 建立 Journal，driver 為 none 時回傳 nil
//
// 參數:
//
//	ctx: 上下文 (連線 / migrate 用)
//	cfg: journal 設定
//	log: Logger
//
// 回傳:
//
//	*Journal: 尚未 Start 的 Journal，或 nil
//	error: 建立 Sink 失敗
func NewFromConfig(ctx context.Context, cfg Config, log logger.Logger) (*Journal, error) {
	sink, err := newSink(ctx, cfg)
	if err != nil || sink == nil {
		return nil, err
	}
	return New(sink, cfg.Buffer, cfg.BatchSize, log), nil
}

func newSink(ctx context.Context, cfg Config) (Sink, error) {
	switch cfg.Driver {
	case DriverNone, "":
		return nil, nil
	case DriverFile:
		path := cfg.File.Path
		if path == "" {
			path = "journal.log"
		}
		return NewFileSink(path)
	case DriverMySQL:
		client, err := mysql.NewClient(ctx, cfg.MySQL)
		if err != nil {
			return nil, err
		}
		sink, err := NewMySQLSink(ctx, client)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return sink, nil
	case DriverKafka:
		if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.Topic == "" {
			return nil, fmt.Errorf("kafka journal requires brokers and topic")
		}
		return NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic), nil
	case DriverNATS:
		subject := cfg.NATS.Subject
		if subject == "" {
			subject = "point.ledger"
		}
		return NewNATSSink(cfg.NATS.URL, subject)
	default:
		return nil, fmt.Errorf("unknown journal driver %q", cfg.Driver)
	}
}

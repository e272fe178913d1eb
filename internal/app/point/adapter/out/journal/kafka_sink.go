package journal

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
)

// messageWriter *kafka.Writer 的子集，方便測試替換
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink 每筆異動發一則訊息，以 userID 為 Key 確保同一使用者的順序
type KafkaSink struct {
	writer messageWriter
}

func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (s *KafkaSink) Write(ctx context.Context, entries []domain.LedgerEntry) error {
	msgs := make([]kafka.Message, 0, len(entries))
	for _, e := range entries {
		msg, err := toKafkaMessage(e)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return s.writer.WriteMessages(ctx, msgs...)
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

func toKafkaMessage(e domain.LedgerEntry) (kafka.Message, error) {
	value, err := json.Marshal(NewEntryRecord(e))
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(e.UserID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type.String())},
		},
	}, nil
}

var _ Sink = (*KafkaSink)(nil)

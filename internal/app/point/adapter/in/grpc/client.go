package grpc

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
	"github.com/JoeShih716/go-mem-point/internal/app/point/usecase"
)

// Client PointService 的 gRPC 客戶端
// 業務錯誤會還原成 domain.ValidationError，可以直接用 errors.Is 比對
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) GetPoint(ctx context.Context, userID int64) (domain.UserPoint, error) {
	out, err := c.invoke(ctx, MethodGetPoint, map[string]interface{}{fieldUserID: userID})
	if err != nil {
		return domain.UserPoint{}, err
	}
	return pointFromStruct(out.GetFields())
}

func (c *Client) Charge(ctx context.Context, userID int64, amount int64) (domain.UserPoint, error) {
	out, err := c.invoke(ctx, MethodCharge, map[string]interface{}{fieldUserID: userID, fieldAmount: amount})
	if err != nil {
		return domain.UserPoint{}, err
	}
	return pointFromStruct(out.GetFields())
}

func (c *Client) Use(ctx context.Context, userID int64, amount int64) (domain.UserPoint, error) {
	out, err := c.invoke(ctx, MethodUse, map[string]interface{}{fieldUserID: userID, fieldAmount: amount})
	if err != nil {
		return domain.UserPoint{}, err
	}
	return pointFromStruct(out.GetFields())
}

func (c *Client) History(ctx context.Context, userID int64) ([]domain.LedgerEntry, error) {
	out, err := c.invoke(ctx, MethodHistory, map[string]interface{}{fieldUserID: userID})
	if err != nil {
		return nil, err
	}
	list := out.GetFields()[fieldEntries].GetListValue().GetValues()
	entries := make([]domain.LedgerEntry, 0, len(list))
	for _, v := range list {
		e, err := entryFromStruct(v.GetStructValue().GetFields())
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (c *Client) invoke(ctx context.Context, method string, fields map[string]interface{}) (*structpb.Struct, error) {
	// 送出前檢查，避免 float64 捨入後落到另一個使用者
	for name, v := range fields {
		if n, ok := v.(int64); ok && (n > maxSafeInteger || n < -maxSafeInteger) {
			return nil, &domain.ValidationError{Msg: unsafeIntegerMsg(name)}
		}
	}
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return nil, fromStatus(err)
	}
	return out, nil
}

// fromStatus 還原伺服器端的業務錯誤
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.InvalidArgument, codes.FailedPrecondition:
		return &domain.ValidationError{Msg: st.Message()}
	default:
		return err
	}
}

func pointFromStruct(fields map[string]*structpb.Value) (domain.UserPoint, error) {
	var p domain.UserPoint
	var err error
	if p.ID, err = numberOf(fields, "id"); err != nil {
		return domain.UserPoint{}, err
	}
	if p.Point, err = numberOf(fields, "point"); err != nil {
		return domain.UserPoint{}, err
	}
	if p.UpdateMillis, err = numberOf(fields, "update_millis"); err != nil {
		return domain.UserPoint{}, err
	}
	return p, nil
}

func entryFromStruct(fields map[string]*structpb.Value) (domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var err error
	if e.ID, err = numberOf(fields, "id"); err != nil {
		return e, err
	}
	if e.UserID, err = numberOf(fields, "user_id"); err != nil {
		return e, err
	}
	if e.Amount, err = numberOf(fields, "amount"); err != nil {
		return e, err
	}
	if e.UpdateMillis, err = numberOf(fields, "update_millis"); err != nil {
		return e, err
	}
	if e.TransactionID, err = uuid.Parse(fields["transaction_id"].GetStringValue()); err != nil {
		return e, fmt.Errorf("transaction_id: %w", err)
	}
	txType, ok := domain.ParseTransactionType(fields["type"].GetStringValue())
	if !ok {
		return e, fmt.Errorf("unknown transaction type %q", fields["type"].GetStringValue())
	}
	e.Type = txType
	return e, nil
}

func numberOf(fields map[string]*structpb.Value, name string) (int64, error) {
	v, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("response missing %q", name)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("response field %q is not a number", name)
	}
	f := n.NumberValue
	if f != math.Trunc(f) || math.Abs(f) > maxSafeInteger {
		return 0, fmt.Errorf("response field %q is not an exact integer", name)
	}
	return int64(f), nil
}

var _ usecase.PointService = (*Client)(nil)

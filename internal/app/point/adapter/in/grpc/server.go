package grpc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
	"github.com/JoeShih716/go-mem-point/internal/app/point/usecase"
	"github.com/JoeShih716/go-mem-point/internal/logger"
)

const (
	fieldUserID  = "user_id"
	fieldAmount  = "amount"
	fieldEntries = "entries"
)

// maxSafeInteger structpb 的數字是 float64，超過 2^53-1 的整數無法精確表示
// (2^53+1 會被捨入成 2^53，等於換了一個使用者)
const maxSafeInteger = 1<<53 - 1

func unsafeIntegerMsg(name string) string {
	return fmt.Sprintf("field %q exceeds ±%d", name, int64(maxSafeInteger))
}

type GrpcServer struct {
	core   usecase.PointService
	logger logger.Logger
}

func NewGrpcServer(core usecase.PointService, log logger.Logger) *GrpcServer {
	return &GrpcServer{
		core:   core,
		logger: log,
	}
}

func (s *GrpcServer) GetPoint(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := userIDField(req)
	if err != nil {
		return nil, err
	}
	p, err := s.core.GetPoint(ctx, userID)
	if err != nil {
		return nil, s.toStatus(MethodGetPoint, err)
	}
	return pointToStruct(p)
}

func (s *GrpcServer) Charge(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, amount, err := mutationFields(req)
	if err != nil {
		return nil, err
	}
	p, err := s.core.Charge(ctx, userID, amount)
	if err != nil {
		return nil, s.toStatus(MethodCharge, err)
	}
	return pointToStruct(p)
}

func (s *GrpcServer) Use(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, amount, err := mutationFields(req)
	if err != nil {
		return nil, err
	}
	p, err := s.core.Use(ctx, userID, amount)
	if err != nil {
		return nil, s.toStatus(MethodUse, err)
	}
	return pointToStruct(p)
}

func (s *GrpcServer) History(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := userIDField(req)
	if err != nil {
		return nil, err
	}
	entries, err := s.core.History(ctx, userID)
	if err != nil {
		return nil, s.toStatus(MethodHistory, err)
	}
	return historyToStruct(entries)
}

// toStatus 將核心錯誤轉成 gRPC status
// 業務規則拒絕 -> FailedPrecondition，參數錯誤 -> InvalidArgument，其餘 -> Internal
func (s *GrpcServer) toStatus(method string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance), errors.Is(err, domain.ErrBalanceCapExceeded):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error("point service failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

// LoggingInterceptor 記錄每個 RPC 的方法、狀態碼與耗時
func LoggingInterceptor(log logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Debug("rpc",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"elapsed", time.Since(start),
		)
		return resp, err
	}
}

// userIDField 缺少 user_id 視為沒有帶使用者
func userIDField(req *structpb.Struct) (int64, error) {
	if _, ok := req.GetFields()[fieldUserID]; !ok {
		return 0, status.Error(codes.InvalidArgument, domain.ErrInvalidUserID.Error())
	}
	return intField(req, fieldUserID)
}

func mutationFields(req *structpb.Struct) (userID int64, amount int64, err error) {
	if userID, err = userIDField(req); err != nil {
		return 0, 0, err
	}
	if amount, err = intField(req, fieldAmount); err != nil {
		return 0, 0, err
	}
	return userID, amount, nil
}

// intField 讀取整數欄位，必須是整數且絕對值不超過 maxSafeInteger
func intField(req *structpb.Struct, name string) (int64, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "missing field %q", name)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "field %q must be a number", name)
	}
	f := n.NumberValue
	if f != math.Trunc(f) {
		return 0, status.Errorf(codes.InvalidArgument, "field %q must be an integer", name)
	}
	if math.Abs(f) > maxSafeInteger {
		return 0, status.Error(codes.InvalidArgument, unsafeIntegerMsg(name))
	}
	return int64(f), nil
}

func pointToStruct(p domain.UserPoint) (*structpb.Struct, error) {
	return structpb.NewStruct(pointFields(p))
}

func pointFields(p domain.UserPoint) map[string]interface{} {
	return map[string]interface{}{
		"id":            p.ID,
		"point":         p.Point,
		"update_millis": p.UpdateMillis,
	}
}

func historyToStruct(entries []domain.LedgerEntry) (*structpb.Struct, error) {
	list := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		list = append(list, map[string]interface{}{
			"id":             e.ID,
			"transaction_id": e.TransactionID.String(),
			"user_id":        e.UserID,
			"amount":         e.Amount,
			"type":           e.Type.String(),
			"update_millis":  e.UpdateMillis,
		})
	}
	return structpb.NewStruct(map[string]interface{}{fieldEntries: list})
}

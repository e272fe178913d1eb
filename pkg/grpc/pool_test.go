package grpc

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestPool_ReusesConnection(t *testing.T) {
	t.Parallel()

	p := NewPool()
	defer p.Close()

	var wg sync.WaitGroup
	conns := make([]*grpc.ClientConn, 10)
	for i := range conns {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn, err := p.GetConnection("passthrough:///point")
			assert.NoError(t, err)
			conns[i] = conn
		}(i)
	}
	wg.Wait()

	for _, conn := range conns {
		assert.Same(t, conns[0], conn)
	}

	other, err := p.GetConnection("passthrough:///other")
	require.NoError(t, err)
	assert.NotSame(t, conns[0], other)
}

func TestPool_RecreatesAfterShutdown(t *testing.T) {
	t.Parallel()

	p := NewPool()
	defer p.Close()

	first, err := p.GetConnection("passthrough:///point")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := p.GetConnection("passthrough:///point")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestLoggingInterceptor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	interceptor := LoggingInterceptor(log)

	failing := func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error {
		return status.Error(codes.FailedPrecondition, "insufficient balance")
	}
	err := interceptor(context.Background(), "/point.v1.PointService/Use", nil, nil, nil, failing)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.Contains(t, buf.String(), "rpc failed")
	assert.Contains(t, buf.String(), "FailedPrecondition")

	buf.Reset()
	ok := func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error {
		return nil
	}
	require.NoError(t, interceptor(context.Background(), "/point.v1.PointService/GetPoint", nil, nil, nil, ok))
	assert.Contains(t, buf.String(), "GetPoint")
	assert.NotContains(t, buf.String(), "rpc failed")
}

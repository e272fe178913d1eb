package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
	"github.com/JoeShih716/go-mem-point/internal/app/point/usecase"
)

func TestOperationObserver(t *testing.T) {
	Init()
	Init()

	okBefore := testutil.ToFloat64(OperationsTotal.WithLabelValues("charge", OutcomeOK))
	rejectedBefore := testutil.ToFloat64(OperationsTotal.WithLabelValues("use", OutcomeRejected))

	var o OperationObserver
	o.Observe("charge", nil, time.Millisecond)
	o.Observe("use", domain.ErrInsufficientBalance, time.Millisecond)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(OperationsTotal.WithLabelValues("charge", OutcomeOK)))
	assert.Equal(t, rejectedBefore+1, testutil.ToFloat64(OperationsTotal.WithLabelValues("use", OutcomeRejected)))
}

func TestOperationObserver_InfrastructureFailure(t *testing.T) {
	Init()

	rejectedBefore := testutil.ToFloat64(OperationsTotal.WithLabelValues("history", OutcomeRejected))
	errorBefore := testutil.ToFloat64(OperationsTotal.WithLabelValues("history", OutcomeError))

	var o OperationObserver
	o.Observe("history", usecase.ErrSequencerStopped, time.Millisecond)
	o.Observe("history", fmt.Errorf("charge: %w", domain.ErrNegativeCharge), time.Millisecond)

	assert.Equal(t, errorBefore+1, testutil.ToFloat64(OperationsTotal.WithLabelValues("history", OutcomeError)))
	assert.Equal(t, rejectedBefore+1, testutil.ToFloat64(OperationsTotal.WithLabelValues("history", OutcomeRejected)))
}

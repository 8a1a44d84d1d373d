package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pricofy/barcode-lookup/internal/completion"
)

func TestCheck_OK(t *testing.T) {
	report := Check(context.Background(), completion.NewMockClient(""), time.Second)

	assert.True(t, report.Healthy())
	assert.Equal(t, StatusOK, report.Status)
	assert.Equal(t, "mock", report.Provider)
	assert.Empty(t, report.Error)
}

func TestCheck_Failure(t *testing.T) {
	mock := completion.NewMockClientWithError(errors.New("dial tcp 10.0.0.1:443: connection refused, key=sk-secret"))

	report := Check(context.Background(), mock, time.Second)

	assert.False(t, report.Healthy())
	assert.Equal(t, StatusUnavailable, report.Status)
	assert.Equal(t, string(completion.CategoryTransport), report.Error)
	assert.NotContains(t, report.Error, "sk-secret")
}

func TestCheck_Timeout(t *testing.T) {
	report := Check(context.Background(), &completion.MockClient{Block: true}, 10*time.Millisecond)

	assert.Equal(t, StatusUnavailable, report.Status)
	assert.Equal(t, string(completion.CategoryTimeout), report.Error)
}

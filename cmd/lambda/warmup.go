package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"golang.org/x/sync/errgroup"
)

const (
	WarmupSource = "warmup"
	HealthSource = "healthcheck"

	// WarmupDelay keeps this instance busy while its copies start, so each
	// copy lands on a separate instance.
	WarmupDelay = 75 * time.Millisecond

	// MaxWarmupConcurrency caps the copies started by one warmup event.
	MaxWarmupConcurrency = 20
)

// WarmupEvent is {"source":"warmup","concurrency":N}.
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

// WarmupResponse reports how many lookup instances should now be warm.
type WarmupResponse struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

// Invoker is the subset of the Lambda API used for self-invocation.
type Invoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

// Warmer answers warmup events.
type Warmer struct {
	functionName string
	delay        time.Duration

	mu      sync.Mutex
	invoker Invoker
}

// NewWarmer creates a Warmer for functionName. A nil invoker is created
// from the default AWS configuration on first use.
func NewWarmer(functionName string, invoker Invoker) *Warmer {
	return &Warmer{
		functionName: functionName,
		delay:        WarmupDelay,
		invoker:      invoker,
	}
}

type sourceFields struct {
	Source      string      `json:"source"`
	Concurrency interface{} `json:"concurrency"`
}

func peekSource(event json.RawMessage) (sourceFields, bool) {
	var fields sourceFields
	if err := json.Unmarshal(event, &fields); err != nil {
		return sourceFields{}, false
	}
	return fields, true
}

// IsWarmupEvent decodes a warmup event. A missing or non-numeric
// concurrency means no copies.
func IsWarmupEvent(event json.RawMessage) (*WarmupEvent, bool) {
	fields, ok := peekSource(event)
	if !ok || fields.Source != WarmupSource {
		return nil, false
	}

	warmup := &WarmupEvent{Source: fields.Source}
	if concurrency, ok := fields.Concurrency.(float64); ok && concurrency > 0 {
		warmup.Concurrency = int(concurrency)
	}
	if warmup.Concurrency > MaxWarmupConcurrency {
		warmup.Concurrency = MaxWarmupConcurrency
	}
	return warmup, true
}

// IsHealthEvent reports whether the event asks for a provider connectivity check.
func IsHealthEvent(event json.RawMessage) bool {
	fields, ok := peekSource(event)
	return ok && fields.Source == HealthSource
}

// Handle answers a warmup event without touching the completion provider.
// Copies are counted only when every self-invocation was accepted.
func (w *Warmer) Handle(ctx context.Context, warmup *WarmupEvent) (interface{}, error) {
	warmed := 1
	if warmup.Concurrency > 0 && w.selfInvoke(ctx, warmup.Concurrency) == nil {
		warmed += warmup.Concurrency
	}

	select {
	case <-time.After(w.delay):
	case <-ctx.Done():
	}

	return map[string]interface{}{
		"statusCode": 200,
		"body":       WarmupResponse{Status: "warm", InstancesWarmed: warmed},
	}, nil
}

func (w *Warmer) client(ctx context.Context) (Invoker, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.invoker == nil {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, err
		}
		w.invoker = lambdasdk.NewFromConfig(cfg)
	}
	return w.invoker, nil
}

// selfInvoke starts count asynchronous copies of this function.
func (w *Warmer) selfInvoke(ctx context.Context, count int) error {
	if w.functionName == "" {
		return fmt.Errorf("function name is unknown")
	}

	client, err := w.client(ctx)
	if err != nil {
		return err
	}

	// Copies carry concurrency 0 so they never fan out again.
	payload, err := json.Marshal(WarmupEvent{Source: WarmupSource})
	if err != nil {
		return err
	}

	var g errgroup.Group
	for i := 0; i < count; i++ {
		g.Go(func() error {
			_, err := client.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(w.functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})
			return err
		})
	}
	return g.Wait()
}

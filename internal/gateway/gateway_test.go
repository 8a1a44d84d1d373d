package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricofy/barcode-lookup/internal/completion"
	"github.com/pricofy/barcode-lookup/internal/domain"
	"github.com/pricofy/barcode-lookup/internal/handler"
)

func post(body string) events.APIGatewayV2HTTPRequest {
	req := events.APIGatewayV2HTTPRequest{
		Version:  "2.0",
		RouteKey: "$default",
		RawPath:  "/",
		Body:     body,
	}
	req.RequestContext.HTTP.Method = http.MethodPost
	return req
}

func newLookup(client completion.Client) *handler.Handler {
	return handler.New(client, zerolog.Nop(), handler.Config{})
}

func decodeError(t *testing.T, body string) ErrorDetail {
	t.Helper()
	var eb ErrorBody
	require.NoError(t, json.Unmarshal([]byte(body), &eb))
	return eb.Error
}

func TestServe_Success(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare request", `{"barcode":"4006381333931","language":"de"}`},
		{"callable envelope", `{"data":{"barcode":"4006381333931","language":"de"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := completion.NewMockClient("Textmarker von STABILO.")

			resp := Serve(context.Background(), newLookup(mock), post(tt.body))

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Headers["Content-Type"])
			assert.JSONEq(t, `{"result":"Textmarker von STABILO."}`, resp.Body)
			assert.Contains(t, mock.LastRequest().Messages[1].Content, "Antworte auf Deutsch.")
		})
	}
}

func TestServe_Base64Body(t *testing.T) {
	req := post(base64.StdEncoding.EncodeToString([]byte(`{"barcode":"4006381333931"}`)))
	req.IsBase64Encoded = true

	resp := Serve(context.Background(), newLookup(completion.NewMockClient("ok")), req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"result":"ok"}`, resp.Body)
}

func TestServe_EmptyResult(t *testing.T) {
	resp := Serve(context.Background(), newLookup(completion.NewMockClient("")), post(`{"barcode":"4006381333931"}`))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"result":null}`, resp.Body)
}

func TestServe_Errors(t *testing.T) {
	tests := []struct {
		name       string
		client     completion.Client
		body       string
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "missing barcode",
			client:     completion.NewMockClient("unused"),
			body:       `{"language":"en"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   StatusInvalidArgument,
			wantMsg:    handler.MsgMissingBarcode,
		},
		{
			name:       "malformed json",
			client:     completion.NewMockClient("unused"),
			body:       `{"barcode":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   StatusInvalidArgument,
			wantMsg:    handler.MsgMissingBarcode,
		},
		{
			name:       "empty body",
			client:     completion.NewMockClient("unused"),
			body:       ``,
			wantStatus: http.StatusBadRequest,
			wantCode:   StatusInvalidArgument,
			wantMsg:    handler.MsgMissingBarcode,
		},
		{
			name:       "upstream failure",
			client:     completion.NewMockClientWithError(errors.New("429 Too Many Requests org-secret")),
			body:       `{"barcode":"4006381333931"}`,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   StatusUnavailable,
			wantMsg:    handler.MsgAssistantUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Serve(context.Background(), newLookup(tt.client), post(tt.body))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			detail := decodeError(t, resp.Body)
			assert.Equal(t, tt.wantCode, detail.Status)
			assert.Equal(t, tt.wantMsg, detail.Message)
			assert.NotContains(t, resp.Body, "secret")
		})
	}
}

type failingLookup struct{}

func (failingLookup) Handle(ctx context.Context, req domain.Request) (*domain.Response, error) {
	return nil, errors.New("unexpected panic recovered: nil map")
}

func TestServe_UnknownError(t *testing.T) {
	resp := Serve(context.Background(), failingLookup{}, post(`{"barcode":"1"}`))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, resp.Body, "nil map")
}

func TestServe_Methods(t *testing.T) {
	mock := completion.NewMockClient("unused")

	options := post("")
	options.RequestContext.HTTP.Method = http.MethodOptions
	resp := Serve(context.Background(), newLookup(mock), options)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])

	get := post("")
	get.RequestContext.HTTP.Method = http.MethodGet
	resp = Serve(context.Background(), newLookup(mock), get)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "POST, OPTIONS", resp.Headers["Allow"])

	assert.Zero(t, mock.Calls())
}

func TestIsHTTPEvent(t *testing.T) {
	tests := []struct {
		name     string
		event    string
		expected bool
	}{
		{"function url", `{"version":"2.0","rawPath":"/","requestContext":{"http":{"method":"POST"}}}`, true},
		{"http api route", `{"routeKey":"POST /lookup","requestContext":{}}`, true},
		{"direct invocation", `{"barcode":"4006381333931"}`, false},
		{"warmup", `{"source":"warmup","concurrency":2}`, false},
		{"not json", `barcode`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHTTPEvent(json.RawMessage(tt.event)); got != tt.expected {
				t.Errorf("IsHTTPEvent() = %v, want %v", got, tt.expected)
			}
		})
	}
}

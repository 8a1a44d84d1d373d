// Package gateway adapts Lambda function URL and API Gateway HTTP API events
// to the barcode lookup handler.
package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/pricofy/barcode-lookup/internal/domain"
	"github.com/pricofy/barcode-lookup/internal/handler"
)

// Status codes reported in error bodies.
const (
	StatusInvalidArgument = "INVALID_ARGUMENT"
	StatusUnavailable     = "UNAVAILABLE"
	StatusInternal        = "INTERNAL"
)

// Lookup is the handler operation served over HTTP.
type Lookup interface {
	Handle(ctx context.Context, req domain.Request) (*domain.Response, error)
}

// ErrorBody is the JSON error payload.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a status code and a caller-facing message.
type ErrorDetail struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "POST, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization",
}

// IsHTTPEvent reports whether a raw Lambda event is an HTTP API (v2) request.
func IsHTTPEvent(event json.RawMessage) bool {
	var shape struct {
		Version        string          `json:"version"`
		RawPath        string          `json:"rawPath"`
		RouteKey       string          `json:"routeKey"`
		RequestContext json.RawMessage `json:"requestContext"`
	}
	if err := json.Unmarshal(event, &shape); err != nil {
		return false
	}
	if len(shape.RequestContext) == 0 {
		return false
	}
	return shape.RawPath != "" || shape.RouteKey != "" || shape.Version == "2.0"
}

// Serve handles one HTTP request.
func Serve(ctx context.Context, lookup Lookup, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	switch strings.ToUpper(req.RequestContext.HTTP.Method) {
	case http.MethodOptions:
		return respond(http.StatusNoContent, nil)
	case http.MethodPost:
	default:
		resp := respondError(http.StatusMethodNotAllowed, StatusInvalidArgument, "Only POST is supported.")
		resp.Headers["Allow"] = "POST, OPTIONS"
		return resp
	}

	lookupReq, err := decodeRequest(req)
	if err != nil {
		return respondError(http.StatusBadRequest, StatusInvalidArgument, handler.MsgMissingBarcode)
	}

	result, err := lookup.Handle(ctx, lookupReq)
	if err != nil {
		switch handler.KindOf(err) {
		case handler.InvalidArgument:
			return respondError(http.StatusBadRequest, StatusInvalidArgument, err.Error())
		case handler.UpstreamFailure:
			return respondError(http.StatusServiceUnavailable, StatusUnavailable, err.Error())
		default:
			return respondError(http.StatusInternalServerError, StatusInternal, handler.MsgAssistantUnavailable)
		}
	}

	return respond(http.StatusOK, result)
}

// decodeRequest accepts either a bare request or a {"data": request} envelope.
func decodeRequest(req events.APIGatewayV2HTTPRequest) (domain.Request, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return domain.Request{}, err
		}
		body = decoded
	}

	var envelope struct {
		Data *domain.Request `json:"data"`
		domain.Request
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&envelope); err != nil {
		return domain.Request{}, err
	}
	if envelope.Data != nil {
		return *envelope.Data, nil
	}
	return envelope.Request, nil
}

func respond(status int, payload interface{}) events.APIGatewayV2HTTPResponse {
	headers := map[string]string{}
	for k, v := range corsHeaders {
		headers[k] = v
	}

	resp := events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    headers,
	}
	if payload == nil {
		return resp
	}

	body, err := json.Marshal(payload)
	if err != nil {
		resp.StatusCode = http.StatusInternalServerError
		body = []byte(`{"error":{"status":"INTERNAL","message":"` + handler.MsgAssistantUnavailable + `"}}`)
	}
	headers["Content-Type"] = "application/json"
	resp.Body = string(body)
	return resp
}

func respondError(status int, code, message string) events.APIGatewayV2HTTPResponse {
	return respond(status, ErrorBody{Error: ErrorDetail{Status: code, Message: message}})
}

// Package domain contains the core domain types for the barcode lookup function.
package domain

// Request is the input to the barcode lookup function.
type Request struct {
	Barcode       string `json:"barcode"`
	BarcodeFormat string `json:"barcodeFormat,omitempty"`
	ProductTitle  string `json:"productTitle,omitempty"`
	Language      string `json:"language,omitempty"`
}

// Response is the output of the barcode lookup function.
// Result is nil when the model produced no content.
type Response struct {
	Result *string `json:"result"`
}

// NewResponse wraps text as a Response. Empty text yields a null result.
func NewResponse(text string) *Response {
	if text == "" {
		return &Response{}
	}
	return &Response{Result: &text}
}

package prompt

import "strings"

// Symbology groups barcode formats by how their payload should be read.
type Symbology int

const (
	// Unknown covers absent and unrecognized formats.
	Unknown Symbology = iota
	// Product covers retail item numbers (EAN/UPC/GTIN).
	Product
	// General covers codes that carry arbitrary content (QR, Data Matrix, ...).
	General
)

func (s Symbology) String() string {
	switch s {
	case Product:
		return "product"
	case General:
		return "general"
	default:
		return "unknown"
	}
}

// Format names as reported by common scanner libraries, normalized
// to upper case without separators.
var symbologies = map[string]Symbology{
	// Retail item numbers
	"EAN13": Product, "EAN8": Product, "UPCA": Product, "UPCE": Product,
	"UPCEAN": Product, "ITF": Product, "ITF14": Product, "GTIN": Product,
	"GTIN13": Product, "GTIN8": Product, "GTIN14": Product, "ISBN": Product,
	// 2D codes
	"QR": General, "QRCODE": General, "MICROQR": General, "DATAMATRIX": General,
	"AZTEC": General, "PDF417": General, "MAXICODE": General,
	// Linear codes without a product registry
	"CODE128": General, "CODE39": General, "CODE93": General, "CODABAR": General,
}

// Classify returns the symbology of a barcode format name.
func Classify(format string) Symbology {
	return symbologies[normalizeFormat(format)]
}

func normalizeFormat(format string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ', '.':
			return -1
		}
		return r
	}, strings.ToUpper(strings.TrimSpace(format)))
}

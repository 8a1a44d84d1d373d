// Package prompt builds the chat messages sent to the completion API.
package prompt

import (
	"fmt"
	"strings"

	"github.com/pricofy/barcode-lookup/internal/completion"
	"github.com/pricofy/barcode-lookup/internal/domain"
	"github.com/pricofy/barcode-lookup/internal/locale"
)

// SystemInstruction describes the assistant's role.
const SystemInstruction = "You are a precise assistant that reports barcode and product information " +
	"in the language requested by the user. Keep the answer short and factual, " +
	"and say so plainly when a code cannot be identified."

const (
	productGuidance = "It is a product code (such as EAN or UPC): name the product and its manufacturer."
	generalGuidance = "It is a general-purpose code: describe the encoded content " +
		"(for example a URL, text, contact details or Wi-Fi credentials)."
	unknownGuidance = "If it is a product code (such as EAN or UPC), name the product and its manufacturer. " +
		"If it is a general-purpose code such as a QR code, describe the encoded content " +
		"(for example a URL, text, contact details or Wi-Fi credentials)."
)

// Plan is the system and user instruction pair for one request.
type Plan struct {
	System    string
	User      string
	Symbology Symbology
}

// Build assembles the prompt for a validated request.
// The output depends only on its inputs.
func Build(req domain.Request, loc locale.Locale) Plan {
	barcode := strings.TrimSpace(req.Barcode)
	format := strings.TrimSpace(req.BarcodeFormat)
	title := strings.TrimSpace(req.ProductTitle)
	sym := Classify(format)

	var b strings.Builder
	fmt.Fprintf(&b, "What does the barcode '%s' mean?", barcode)
	if format != "" {
		fmt.Fprintf(&b, " The barcode format is %s.", format)
	}
	if title != "" {
		fmt.Fprintf(&b, " A known product title for this code is %q.", title)
	}

	b.WriteString(" ")
	switch sym {
	case Product:
		b.WriteString(productGuidance)
	case General:
		b.WriteString(generalGuidance)
	default:
		b.WriteString(unknownGuidance)
	}

	b.WriteString(" ")
	b.WriteString(loc.Instruction)

	return Plan{
		System:    SystemInstruction,
		User:      b.String(),
		Symbology: sym,
	}
}

// Messages returns the plan as an ordered system/user message pair.
func (p Plan) Messages() []completion.Message {
	return []completion.Message{
		{Role: completion.RoleSystem, Content: p.System},
		{Role: completion.RoleUser, Content: p.User},
	}
}

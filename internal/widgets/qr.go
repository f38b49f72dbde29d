package widgets

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/colornames"

	internalmcp "github.com/wagiedev/mcp-apps-go/internal/mcp"
	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

var qrWidget = &widget.Widget{
	Identifier: "show_qr",
	Title:      "Generate QR Code",
	Description: `Generate a QR code from text or a URL.

Use this tool when:
- The user wants to create a QR code
- Encoding a URL, text, or data as a scannable image
- Sharing links or information visually

Args:
    text: The text or URL to encode (default: "https://modelcontextprotocol.io")
    fill_color: Foreground color name or hex (default: "black")
    back_color: Background color name or hex (default: "white")

Returns:
    A QR code image displayed in the widget.

Example:
    show_qr(text="https://example.com", fill_color="#1a1a2e", back_color="#eaeaea")`,
	TemplateURI: "ui://widget/qr.html",
	Invoking:    "Generating QR code...",
	Invoked:     "QR code ready",
	Component:   "qr",
}

const (
	defaultQRText = "https://modelcontextprotocol.io"
	qrMIMEType    = "image/png"
	// maxQRPixels bounds the rendered image edge.
	maxQRPixels = 4096
	maxQRBox    = 100
	maxQRBorder = 100
)

var recoveryLevels = map[string]qrcode.RecoveryLevel{
	"L": qrcode.Low,
	"M": qrcode.Medium,
	"Q": qrcode.High,
	"H": qrcode.Highest,
}

type qrInput struct {
	Text            string `json:"text"`
	BoxSize         int    `json:"boxSize"`
	Border          int    `json:"border"`
	ErrorCorrection string `json:"errorCorrection"`
	FillColor       string `json:"fillColor"`
	BackColor       string `json:"backColor"`
}

type qrContent struct {
	ImageData string `json:"imageData"`
	MIMEType  string `json:"mimeType"`
}

func newQR(deps Deps) (*registry.Entry, error) {
	model, err := schema.NewModel("QrInput",
		schema.Field{Name: "text", Type: schema.TypeString, Default: defaultQRText, Description: "Text or URL to encode"},
		schema.Field{
			Name:        "box_size",
			Alias:       "boxSize",
			Type:        schema.TypeInteger,
			Default:     10,
			Description: "Box size in pixels",
			Minimum:     jsonschema.Ptr(1.0),
			Maximum:     jsonschema.Ptr(float64(maxQRBox)),
		},
		schema.Field{
			Name:        "border",
			Type:        schema.TypeInteger,
			Default:     4,
			Description: "Border size in boxes",
			Minimum:     jsonschema.Ptr(0.0),
			Maximum:     jsonschema.Ptr(float64(maxQRBorder)),
		},
		schema.Field{
			Name:        "error_correction",
			Alias:       "errorCorrection",
			Type:        schema.TypeString,
			Default:     "M",
			Description: "Error correction: L(7%), M(15%), Q(25%), H(30%)",
		},
		schema.Field{
			Name:        "fill_color",
			Alias:       "fillColor",
			Type:        schema.TypeString,
			Default:     "black",
			Description: "Foreground color (hex or name)",
		},
		schema.Field{
			Name:        "back_color",
			Alias:       "backColor",
			Type:        schema.TypeString,
			Default:     "white",
			Description: "Background color (hex or name)",
		},
	)
	if err != nil {
		return nil, err
	}

	return define(deps, qrWidget, model, func(_ context.Context, in qrInput) (*output, error) {
		text := in.Text
		if text == "" {
			text = defaultQRText
		}

		img, err := RenderQR(text, QROptions{
			BoxSize:         in.BoxSize,
			Border:          in.Border,
			ErrorCorrection: in.ErrorCorrection,
			FillColor:       in.FillColor,
			BackColor:       in.BackColor,
		})
		if err != nil {
			return nil, err
		}

		return &output{
			Narration: "QR code generated for: " + text,
			Data: qrContent{
				ImageData: base64.StdEncoding.EncodeToString(img),
				MIMEType:  qrMIMEType,
			},
			Extra: []mcp.Content{internalmcp.ImageContent(img, qrMIMEType)},
		}, nil
	}), nil
}

// QROptions controls QR rendering. Zero values fall back to defaults.
type QROptions struct {
	// BoxSize is the edge of one module in pixels, at least 1.
	BoxSize int
	// Border is the quiet zone in modules, at least 0.
	Border int
	// ErrorCorrection is L, M, Q, or H. Anything else means M.
	ErrorCorrection string
	// FillColor and BackColor are color names or #rgb / #rrggbb hex.
	FillColor string
	BackColor string
}

// RenderQR encodes text as a PNG QR code.
func RenderQR(text string, opts QROptions) ([]byte, error) {
	level, ok := recoveryLevels[strings.ToUpper(strings.TrimSpace(opts.ErrorCorrection))]
	if !ok {
		level = qrcode.Medium
	}

	code, err := qrcode.New(text, level)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}

	code.DisableBorder = true

	fill, err := parseColor(opts.FillColor, color.Black)
	if err != nil {
		return nil, err
	}

	back, err := parseColor(opts.BackColor, color.White)
	if err != nil {
		return nil, err
	}

	box := max(1, opts.BoxSize)
	border := max(0, opts.Border)
	bitmap := code.Bitmap()

	// Compare in modules so large options cannot overflow the pixel size.
	if box > maxQRPixels || border > maxQRPixels || len(bitmap)+2*border > maxQRPixels/box {
		return nil, fmt.Errorf("qr image would exceed the %dpx limit (box %d, border %d)", maxQRPixels, box, border)
	}

	size := (len(bitmap) + 2*border) * box

	img := image.NewPaletted(image.Rect(0, 0, size, size), color.Palette{back, fill})

	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}

			x0 := (x + border) * box
			y0 := (y + border) * box

			for dy := range box {
				for dx := range box {
					img.SetColorIndex(x0+dx, y0+dy, 1)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return buf.Bytes(), nil
}

func parseColor(s string, fallback color.Color) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fallback, nil
	}

	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}

	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return nil, fmt.Errorf("unknown color %q", s)
	}

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color %q", s)
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

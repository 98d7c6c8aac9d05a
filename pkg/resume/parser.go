package resume

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"code.sajari.com/docconv"
	pdf "github.com/ledongthuc/pdf"
)

const (
	binarySampleSize = 512
	binaryThreshold  = 0.1
)

// ExtractLines converts an uploaded document into a line stream.
// Supports .pdf, .docx and .doc; any other extension is read as UTF-8 text
// unless the content looks binary. An empty result is not an error.
func ExtractLines(filename string, data []byte) (Lines, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: docx: %v", ErrExtractionFailed, err)
		}
		return SplitLines(text), nil
	case ".doc":
		text, _, err := docconv.ConvertDoc(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: doc: %v", ErrExtractionFailed, err)
		}
		return SplitLines(text), nil
	default:
		if looksBinary(data) {
			if ext == "" {
				ext = "(none)"
			}
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		}
		return SplitLines(strings.ToValidUTF8(string(data), "")), nil
	}
}

func extractPDF(data []byte) (lines Lines, err error) {
	// the decoder panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			lines, err = nil, fmt.Errorf("%w: pdf: %v", ErrExtractionFailed, r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: pdf: %v", ErrExtractionFailed, err)
	}
	var out []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("%w: pdf page %d: %v", ErrExtractionFailed, i, err)
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		for _, row := range rows {
			out = append(out, joinRow(row.Content))
		}
	}
	return SplitLines(strings.Join(out, "\n")), nil
}

// joinRow glues the glyph runs of one PDF text row, inserting a space where
// the horizontal gap is wider than a fraction of the font size.
func joinRow(texts pdf.TextHorizontal) string {
	var b strings.Builder
	var prevEnd float64
	for i, t := range texts {
		if i > 0 && t.X-prevEnd > t.FontSize*0.2 && !strings.HasPrefix(t.S, " ") {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	return b.String()
}

var (
	reInlineSpace = regexp.MustCompile(`[ \f\v\x{00A0}\x{2007}\x{202F}]+`)
	reBlankRun    = regexp.MustCompile(`\n{3,}`)
)

// SplitLines normalizes line endings and spacing, keeping single blank lines
// between paragraphs.
func SplitLines(text string) Lines {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = reInlineSpace.ReplaceAllString(text, " ")
	raw := strings.Split(text, "\n")
	out := make(Lines, 0, len(raw))
	for _, l := range raw {
		out = append(out, strings.TrimSpace(l))
	}
	joined := reBlankRun.ReplaceAllString(strings.Join(out, "\n"), "\n\n")
	joined = strings.Trim(joined, "\n")
	if joined == "" {
		return Lines{}
	}
	return strings.Split(joined, "\n")
}

func looksBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if bytes.HasPrefix(data, []byte("%PDF-")) || bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		return true
	}
	n := min(binarySampleSize, len(data))
	control := 0
	for _, ch := range data[:n] {
		if ch == 0 {
			return true
		}
		if ch < 32 && ch != '\n' && ch != '\r' && ch != '\t' {
			control++
		}
	}
	return float64(control)/float64(n) > binaryThreshold
}

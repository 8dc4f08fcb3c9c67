package formatter

import (
	"fmt"
	"strings"

	"github.com/futig/census-agent/internal/entity"
)

// Format selects the rendering of a case summary
type Format string

const (
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
)

type Formatter interface {
	Format(summary *CaseSummary) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the formatter for format; empty means markdown
func (f *Factory) Create(format Format) (Formatter, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatMarkdown, "markdown", "":
		return NewMarkdownFormatter(), nil
	case FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidParameter, format)
	}
}

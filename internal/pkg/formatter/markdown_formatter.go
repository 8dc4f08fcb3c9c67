package formatter

import (
	"bytes"
	"fmt"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(summary *CaseSummary) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", summary.Title())

	if len(summary.Sections) == 0 {
		buf.WriteString("\nNo records stored.\n")
	}
	for _, s := range summary.Sections {
		fmt.Fprintf(&buf, "\n## %s\n\n", s.Title)
		for _, line := range s.Lines {
			fmt.Fprintf(&buf, "- %s\n", line)
		}
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}

package testutil

import (
	"strings"

	"github.com/Veraticus/costctl/internal/model"
)

// CSVBuilder provides a fluent interface for constructing selections.
type CSVBuilder struct {
	name string
	rows []string
	size int64
}

// NewCSV starts a selection with the given file name.
func NewCSV(name string) *CSVBuilder {
	return &CSVBuilder{name: name, size: -1}
}

// WithRows sets the file contents, one line per row.
func (b *CSVBuilder) WithRows(rows ...string) *CSVBuilder {
	b.rows = append(b.rows, rows...)
	return b
}

// WithSize overrides the reported size without allocating the content.
func (b *CSVBuilder) WithSize(size int64) *CSVBuilder {
	b.size = size
	return b
}

// Build returns the selection backed by an in-memory handle.
func (b *CSVBuilder) Build() model.SelectedFile {
	content := []byte(strings.Join(b.rows, "\n"))
	size := b.size
	if size < 0 {
		size = int64(len(content))
	}
	return model.SelectedFile{
		Name:   b.name,
		Size:   size,
		Handle: model.BytesOpener(content),
	}
}

// ValidCSV is a small cost master file that passes intake.
func ValidCSV() model.SelectedFile {
	return NewCSV("cost_master.csv").
		WithRows("ingredient_name,capacity,unit,unit_price", "玉ねぎ,1,kg,300").
		Build()
}

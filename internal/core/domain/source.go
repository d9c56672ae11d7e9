package domain

import "path/filepath"

// SourceKind distinguishes the two extract shapes.
type SourceKind string

// Available source kinds.
const (
	// SourceHistorical is the multi-year extract with a fixed filename.
	SourceHistorical SourceKind = "historical"

	// SourceIncremental is the periodic extract whose filename embeds a reporting period.
	SourceIncremental SourceKind = "incremental"
)

// Source is a spreadsheet extract chosen for a run.
type Source struct {
	// Kind identifies the extract shape.
	Kind SourceKind

	// Path is the spreadsheet location.
	Path string

	// Period is the reporting month decoded from the filename (1-12).
	// Zero when the filename carries no period or the source is historical.
	Period int
}

// Name returns the base filename.
func (s Source) Name() string {
	return filepath.Base(s.Path)
}

// MarkerSet recognises a header row.
// A row matches when it contains Primary and at least one of AnyOf.
type MarkerSet struct {
	Primary string
	AnyOf   []string
}

// TableLocation is where a data table starts inside a workbook.
type TableLocation struct {
	// Sheet is the sheet name.
	Sheet string

	// HeaderRow is the zero-based index of the header row within the sheet.
	HeaderRow int
}

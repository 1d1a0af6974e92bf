package domain

import "encoding/json"

// Form is a registered form definition: the survey schema handed to the
// front-end renderer plus presentation and document settings.
type Form struct {
	Key     string
	Version string
	Title   string
	Theme   string
	Schema  json.RawMessage
	PDF     PDFConfig
}

// PDFConfig controls whether and how a confirmation document is produced
// for a form.
type PDFConfig struct {
	Enabled        bool         `json:"enabled"               yaml:"enabled"`
	Title          string       `json:"title,omitempty"       yaml:"title"`
	Intro          string       `json:"intro,omitempty"       yaml:"intro"`
	SectionsBefore []PDFSection `json:"sections_before,omitempty" yaml:"sections_before"`
	SectionsAfter  []PDFSection `json:"sections_after,omitempty"  yaml:"sections_after"`
	Footer         string       `json:"footer,omitempty"      yaml:"footer"`
	LogoPath       string       `json:"logo_path,omitempty"   yaml:"logo_path"`
	FilenamePrefix string       `json:"filename_prefix,omitempty" yaml:"filename_prefix"`
}

// PDFSection is a free-text block placed before or after the data table.
type PDFSection struct {
	Heading string `json:"heading,omitempty" yaml:"heading"`
	Body    string `json:"body"              yaml:"body"`
}

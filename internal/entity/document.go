package entity

import "strings"

// DocumentText is the output of the text-extraction collaborator.
type DocumentText struct {
	FullText   string
	Page1      string
	Page2      string
	Pages      []string
	SourcePath string
	SourceType string // constants.PDF | constants.IMAGE
}

// NewDocumentText builds a DocumentText from per-page texts.
func NewDocumentText(pages []string) DocumentText {
	doc := DocumentText{Pages: pages, FullText: strings.Join(pages, "\n")}
	if len(pages) > 0 {
		doc.Page1 = pages[0]
	}
	if len(pages) > 1 {
		doc.Page2 = pages[1]
	}
	return doc
}

package ingestion

import (
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/resume-chat/internal/experience"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported resume document format
type Format string

// Supported formats, named by file extension.
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// FormatFromPath derives the document format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch Format(ext) {
	case FormatPDF, FormatDOCX:
		return Format(ext), nil
	default:
		return "", &DocumentReadError{
			Path:    path,
			Format:  Format(ext),
			Message: fmt.Sprintf("extension %q is not pdf or docx", ext),
			Cause:   ErrUnsupportedFormat,
		}
	}
}

// TextReader extracts the raw text of one document.
type TextReader interface {
	ReadText(path string) (string, error)
}

// PDFReader extracts text page by page.
type PDFReader struct{}

// ReadText concatenates the plain text of every page, one newline per page.
func (PDFReader) ReadText(path string) (text string, err error) {
	// The pdf package panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			err = &DocumentReadError{Path: path, Format: FormatPDF, Message: fmt.Sprintf("malformed PDF: %v", r)}
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return "", &DocumentReadError{Path: path, Format: FormatPDF, Message: "cannot open PDF", Cause: ErrEncrypted}
		}
		return "", &DocumentReadError{Path: path, Format: FormatPDF, Message: "cannot open PDF", Cause: err}
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &DocumentReadError{Path: path, Format: FormatPDF, Message: fmt.Sprintf("cannot read page %d", i), Cause: err}
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br[^>]*/>|<w:cr[^>]*/>`)
	docxTab          = regexp.MustCompile(`<w:tab[^>]*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]*>`)
)

// DOCXReader extracts the body text of word/document.xml.
type DOCXReader struct{}

// ReadText returns one line per paragraph or line break.
func (DOCXReader) ReadText(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", &DocumentReadError{Path: path, Format: FormatDOCX, Message: "cannot open DOCX", Cause: err}
	}
	defer func() { _ = r.Close() }()

	return docxXMLToText(r.Editable().GetContent()), nil
}

func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

// Document is a resume whose text has been extracted and normalized.
type Document struct {
	Path     string
	Format   Format
	Text     string
	Metadata *Metadata
}

// Loader picks a TextReader by format. The zero value is not usable; call NewLoader.
type Loader struct {
	readers map[Format]TextReader
}

// NewLoader returns a Loader with the PDF and DOCX readers registered.
func NewLoader() *Loader {
	return &Loader{readers: map[Format]TextReader{
		FormatPDF:  PDFReader{},
		FormatDOCX: DOCXReader{},
	}}
}

// WithReader overrides the reader for one format.
func (l *Loader) WithReader(format Format, r TextReader) *Loader {
	l.readers[format] = r
	return l
}

// ExtractText returns the cleaned text of the document at path.
// Failures are *DocumentReadError.
func (l *Loader) ExtractText(path string) (string, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err != nil {
		return "", &DocumentReadError{Path: path, Format: format, Message: "cannot stat file", Cause: err}
	}

	reader, ok := l.readers[format]
	if !ok {
		return "", &DocumentReadError{Path: path, Format: format, Message: "no reader registered", Cause: ErrUnsupportedFormat}
	}

	text, err := reader.ReadText(path)
	if err != nil {
		return "", err
	}

	return CleanText(text), nil
}

// Load extracts, cleans and normalizes a resume. Blank documents fail with
// *experience.EmptyTextError.
func (l *Loader) Load(path string) (*Document, error) {
	text, err := l.ExtractText(path)
	if err != nil {
		return nil, err
	}

	text = experience.Normalize(text)
	if text == "" {
		return nil, &experience.EmptyTextError{Source: path}
	}

	format, _ := FormatFromPath(path)
	return &Document{
		Path:     path,
		Format:   format,
		Text:     text,
		Metadata: NewMetadata(text, path, format),
	}, nil
}

// ExtractText reads a PDF or DOCX file with the default readers.
func ExtractText(path string) (string, error) {
	return NewLoader().ExtractText(path)
}

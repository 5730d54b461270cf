package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported document formats
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatHTML = "html"
	FormatText = "text"
)

var formatsByExtension = map[string]string{
	".pdf":      FormatPDF,
	".docx":     FormatDOCX,
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatText,
	".markdown": FormatText,
}

// DetectFormat maps a filename extension to a document format
func DetectFormat(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if format, ok := formatsByExtension[ext]; ok {
		return format, nil
	}
	return "", &UnsupportedFormatError{Filename: filename, Extension: ext}
}

// ExtractDocument decodes a resume document into raw text, dispatching on
// the filename extension. The result is not normalized.
func ExtractDocument(filename string, data []byte) (string, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatPDF:
		return extractPDFText(data)
	case FormatDOCX:
		return extractDocxText(data)
	case FormatHTML:
		return extractHTMLText(data)
	default:
		return string(data), nil
	}
}

func extractPDFText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &DecodeError{Format: FormatPDF, Message: fmt.Sprintf("reader panic: %v", r)}
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DecodeError{Format: FormatPDF, Message: "failed to read pdf", Cause: err}
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			return "", &DecodeError{Format: FormatPDF, Message: fmt.Sprintf("failed to read page %d", i), Cause: pageErr}
		}
		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:cr\s*/>`)
	docxTab          = regexp.MustCompile(`<w:tab\s*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DecodeError{Format: FormatDOCX, Message: "failed to parse docx", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}

// blockSelectors end a line in the extracted text
const blockSelectors = "p, div, section, article, header, footer, h1, h2, h3, h4, h5, h6, li, tr, dt, dd, blockquote, pre"

func extractHTMLText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", &DecodeError{Format: FormatHTML, Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript, template, nav").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("- ")
	doc.Find("td, th").AppendHtml(" ")
	doc.Find(blockSelectors).AppendHtml("\n")

	body := doc.Find("body")
	if body.Length() == 0 {
		return doc.Text(), nil
	}
	return body.Text(), nil
}

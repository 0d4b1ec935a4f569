package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Input formats reported in Document.Format.
const (
	FormatText = "text"
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

var (
	// ErrTooLarge is returned when the input exceeds the configured size limit.
	ErrTooLarge = errors.New("input exceeds size limit")
	// ErrInvalidEncoding is returned for text input that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("input is not valid UTF-8 text")
	// ErrUnsupportedFormat is returned for binary input that is not PDF or DOCX.
	// Input containing NUL bytes that does not sniff as text counts as binary.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is extracted contract text.
type Document struct {
	Text   string
	Format string
}

// Load reads and extracts the file at path. maxBytes <= 0 disables the size
// limit. A missing file yields an error matching fs.ErrNotExist.
func Load(path string, maxBytes int) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()

	doc, err := FromReader(f, maxBytes)
	if err != nil {
		return Document{}, fmt.Errorf("extract %s: %w", path, err)
	}
	return doc, nil
}

// FromReader reads at most maxBytes from r and extracts its text.
func FromReader(r io.Reader, maxBytes int) (Document, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, int64(maxBytes)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read: %w", err)
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return Document{}, fmt.Errorf("%w (%d bytes)", ErrTooLarge, maxBytes)
	}
	return FromBytes(data)
}

// FromBytes extracts text from an in-memory payload.
func FromBytes(data []byte) (Document, error) {
	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is(mimePDF):
		text, err := extractPDF(data)
		if err != nil {
			return Document{}, fmt.Errorf("pdf: %w", err)
		}
		return Document{Text: text, Format: FormatPDF}, nil
	case mtype.Is(mimeDOCX):
		text, err := extractDOCX(data)
		if err != nil {
			return Document{}, fmt.Errorf("docx: %w", err)
		}
		return Document{Text: text, Format: FormatDOCX}, nil
	case !strings.HasPrefix(mtype.String(), "text/") && bytes.IndexByte(data, 0) >= 0:
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mtype.String())
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return Document{}, ErrInvalidEncoding
	}
	return Document{Text: string(data), Format: FormatText}, nil
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return stripDocxXML(raw)
}

// stripDocxXML keeps character data and turns paragraph and line breaks into
// newlines.
func stripDocxXML(raw []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

// Package extract loads contract text from files and streams.
//
// Plain text must be valid UTF-8 (a leading byte order mark is dropped). PDF
// files are converted with github.com/ledongthuc/pdf and DOCX files by reading
// word/document.xml. The input kind is sniffed from content with
// github.com/gabriel-vasile/mimetype, not taken from the file extension.
package extract

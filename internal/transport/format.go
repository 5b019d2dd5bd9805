package transport

import "fmt"

// FileExtension maps an export format to the file extension used by
// library-style destinations.
func FileExtension(format string) string {
	switch format {
	case "word":
		return "docx"
	case "pdf":
		return "pdf"
	case "html":
		return "html"
	default:
		return "md"
	}
}

// ContentType maps an export format to the MIME type sent to the
// remote platform.
func ContentType(format string) string {
	switch format {
	case "word":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "pdf":
		return "application/pdf"
	case "html":
		return "text/html"
	default:
		return "text/markdown"
	}
}

// FileName builds the destination file name for a document.
func FileName(title, format string) string {
	return fmt.Sprintf("%s.%s", title, FileExtension(format))
}

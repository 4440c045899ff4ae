package types

import "strings"

// ContentType is the MIME type recorded on an attachment. The constants
// cover the attachment kinds the report generator renders natively.
type ContentType string

const (
	ContentTypeText      ContentType = "text/plain"
	ContentTypeJSON      ContentType = "application/json"
	ContentTypeXML       ContentType = "application/xml"
	ContentTypeHTML      ContentType = "text/html"
	ContentTypeCSV       ContentType = "text/csv"
	ContentTypeTSV       ContentType = "text/tab-separated-values"
	ContentTypeCSS       ContentType = "text/css"
	ContentTypeURI       ContentType = "text/uri-list"
	ContentTypeSVG       ContentType = "image/svg+xml"
	ContentTypePNG       ContentType = "image/png"
	ContentTypeJPEG      ContentType = "image/jpeg"
	ContentTypeWebM      ContentType = "video/webm"
	ContentTypeMP4       ContentType = "video/mp4"
	ContentTypeZip       ContentType = "application/zip"
	ContentTypeImageDiff ContentType = "application/vnd.allure.image.diff"
)

func (c ContentType) String() string {
	return string(c)
}

// Extension returns the file extension used when persisting an attachment
// of this content type. Unknown types fall back to "bin".
func (c ContentType) Extension() string {
	switch c {
	case ContentTypeText:
		return "txt"
	case ContentTypeJSON:
		return "json"
	case ContentTypeXML:
		return "xml"
	case ContentTypeHTML:
		return "html"
	case ContentTypeCSV:
		return "csv"
	case ContentTypeTSV:
		return "tsv"
	case ContentTypeCSS:
		return "css"
	case ContentTypeURI:
		return "uri"
	case ContentTypeSVG:
		return "svg"
	case ContentTypePNG:
		return "png"
	case ContentTypeJPEG:
		return "jpg"
	case ContentTypeWebM:
		return "webm"
	case ContentTypeMP4:
		return "mp4"
	case ContentTypeZip:
		return "zip"
	case ContentTypeImageDiff:
		return "imagediff"
	}
	return "bin"
}

// ContentTypeForExtension guesses the content type for a file extension.
// Returns an empty ContentType when the extension is not recognized.
func ContentTypeForExtension(ext string) ContentType {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "txt", "log":
		return ContentTypeText
	case "json":
		return ContentTypeJSON
	case "xml":
		return ContentTypeXML
	case "html", "htm":
		return ContentTypeHTML
	case "csv":
		return ContentTypeCSV
	case "tsv":
		return ContentTypeTSV
	case "css":
		return ContentTypeCSS
	case "svg":
		return ContentTypeSVG
	case "png":
		return ContentTypePNG
	case "jpg", "jpeg":
		return ContentTypeJPEG
	case "webm":
		return ContentTypeWebM
	case "mp4":
		return ContentTypeMP4
	case "zip":
		return ContentTypeZip
	}
	return ""
}

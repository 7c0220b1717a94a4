package mime

import (
	"path/filepath"
)

type MIME = string

const (
	OctetStream MIME = "application/octet-stream"
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	GIF         MIME = "image/gif"
	JPEG        MIME = "image/jpeg"

	// HTMLUTF8 is used for bodies generated by the server itself.
	HTMLUTF8 MIME = "text/html;charset=UTF-8"
)

// Extension maps lower-case file suffixes to their content types. Anything not
// listed here is served as Plain.
var Extension = map[string]MIME{
	".htm":   HTML,
	".html":  HTML,
	".gif":   GIF,
	".jpg":   JPEG,
	".jpeg":  JPEG,
	".class": OctetStream,
	".jar":   OctetStream,
}

// FromFilename returns the content type of a file by its name suffix.
func FromFilename(name string) MIME {
	if m, found := Extension[filepath.Ext(name)]; found {
		return m
	}

	return Plain
}

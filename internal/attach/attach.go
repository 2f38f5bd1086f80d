// Package attach handles the attachment linkage convention: a "file"
// field holding semicolon-separated "description:relativePath:mimetype"
// or bare-path segments, resolved relative to the bibliography file's
// directory. It also renames linked files to match citation keys.
package attach

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Attachment is one linked file from a file field.
type Attachment struct {
	Description string
	Path        string // as stored, usually relative
	MIMEType    string
}

// Parse splits a file field into its attachment segments.
func Parse(value string) ([]Attachment, error) {
	var attachments []Attachment
	for _, seg := range strings.Split(value, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		parts := strings.Split(seg, ":")
		switch len(parts) {
		case 1:
			attachments = append(attachments, Attachment{Path: parts[0]})
		case 3:
			attachments = append(attachments, Attachment{
				Description: parts[0],
				Path:        parts[1],
				MIMEType:    parts[2],
			})
		default:
			return nil, fmt.Errorf("malformed attachment segment: %q", seg)
		}
	}
	return attachments, nil
}

// Format renders attachments back into the file field form. Segments
// with a description or MIME type use the three-part form.
func Format(attachments []Attachment) string {
	segs := make([]string, len(attachments))
	for i, a := range attachments {
		if a.Description == "" && a.MIMEType == "" {
			segs[i] = a.Path
		} else {
			segs[i] = a.Description + ":" + a.Path + ":" + a.MIMEType
		}
	}
	return strings.Join(segs, ";")
}

// Resolve returns the absolute location of the attachment relative to
// the bibliography file's directory. Absolute stored paths are
// returned unchanged.
func (a Attachment) Resolve(bibDir string) string {
	if filepath.IsAbs(a.Path) {
		return a.Path
	}
	return filepath.Join(bibDir, a.Path)
}

package upload

import (
	"path/filepath"
	"strings"
)

// UploadedFile is a handle to a file staged on local disk during upload
// processing, paired with the name the uploader gave it. Files coming
// out of an archive keep their in-archive name as OriginalName.
type UploadedFile struct {
	Path         string
	OriginalName string
}

func NewUploadedFile(path, originalName string) UploadedFile {
	return UploadedFile{Path: path, OriginalName: originalName}
}

// OriginalFileExtension returns the lowercased extension of the original
// name, without the leading dot.
func (f UploadedFile) OriginalFileExtension() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(f.OriginalName)), ".")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package meca

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
)

// ExtractContentXML locates the full-text content entry in a fully
// downloaded MECA archive and returns it decoded as UTF-8. The content
// entry is the XML file whose name carries the "content" marker. The
// second return value is false when the archive cannot be opened or holds
// no such entry.
func ExtractContentXML(archive []byte) (string, bool) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return "", false
	}

	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		if !strings.HasSuffix(name, ".xml") || !strings.Contains(name, "content") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", false
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", false
		}
		return string(data), true
	}

	return "", false
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package meca

import (
	"strings"
	"testing"

	"github.com/pdiddy/meca-fetch/internal/meca/mecatest"
)

func TestExtractContentXML(t *testing.T) {
	const body = `<?xml version="1.0"?><article><title>Cortical maps</title></article>`
	archive := mecatest.Archive(fixtureID, body, mecatest.MethodDeflate)

	got, ok := ExtractContentXML(archive)
	if !ok {
		t.Fatal("ExtractContentXML found no content entry")
	}
	if got != body {
		t.Errorf("ExtractContentXML = %q, want %q", got, body)
	}
}

func TestExtractContentXMLIgnoresOtherEntries(t *testing.T) {
	archive := mecatest.Build(0,
		mecatest.Entry{Name: "transfer.xml", Data: mecatest.Manifest(fixtureID), Method: mecatest.MethodDeflate},
		mecatest.Entry{Name: "manifest.xml", Data: []byte("<manifest/>"), Method: mecatest.MethodStored},
		mecatest.Entry{Name: "content/2024.12.18.628357.xml", Data: []byte("<article/>"), Method: mecatest.MethodStored},
	)

	got, ok := ExtractContentXML(archive)
	if !ok {
		t.Fatal("ExtractContentXML found no content entry")
	}
	if got != "<article/>" {
		t.Errorf("ExtractContentXML = %q, want content entry body", got)
	}
}

func TestExtractContentXMLNoContentEntry(t *testing.T) {
	archive := mecatest.Build(0,
		mecatest.Entry{Name: "transfer.xml", Data: mecatest.Manifest(fixtureID), Method: mecatest.MethodDeflate},
	)
	if _, ok := ExtractContentXML(archive); ok {
		t.Error("ExtractContentXML reported content in archive without one")
	}
}

func TestExtractContentXMLCorruptArchive(t *testing.T) {
	if _, ok := ExtractContentXML([]byte(strings.Repeat("x", 100))); ok {
		t.Error("ExtractContentXML reported content in non-ZIP bytes")
	}
}

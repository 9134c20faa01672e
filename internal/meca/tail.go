// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package meca reads MECA archives: ZIP-format containers bundling a
// preprint's submission package, including a transfer.xml manifest and the
// full-text content XML. The tail parser locates and decompresses the
// manifest from only the last few KB of an archive, so a month of 20-400MB
// deposits can be indexed without downloading any of them in full.
// Implements: prd008-fulltext-archive R1 (selective DOI extraction).
package meca

import (
	"bytes"
	"encoding/binary"
	"io"
	"regexp"

	"github.com/klauspost/compress/flate"
)

// TailWindow is the number of bytes read from the end of an archive. It
// comfortably holds the end-of-central-directory record, the central
// directory, and the compressed manifest for typical MECA deposits.
// Archives whose central directory outgrows the window are not supported;
// extraction reports no DOI rather than issuing a larger read.
const TailWindow = 32768

// ManifestName is the MECA transfer manifest entry name.
const ManifestName = "transfer.xml"

// DOIPrefix is bioRxiv's DOI namespace.
const DOIPrefix = "10.1101/"

// ZIP record signatures.
var (
	eocdSig    = []byte("PK\x05\x06")
	centralSig = []byte("PK\x01\x02")
	localSig   = []byte("PK\x03\x04")
)

// Fixed record sizes preceding the variable-length name fields.
const (
	eocdFixedLen    = 22
	centralFixedLen = 46
	localFixedLen   = 30
)

// atomPattern captures the date-coded identifier from a manifest path like
// "/biorxiv/early/2024/12/20/2024.12.18.628357.atom".
var atomPattern = regexp.MustCompile(`/(\d[\d.]+)\.atom`)

// TailSize returns the number of trailing bytes to request for an archive
// of the given size.
func TailSize(fileSize int64) int64 {
	if fileSize < TailWindow {
		return fileSize
	}
	return TailWindow
}

// ExtractDOI derives an archive's DOI from its trailing bytes. tail is the
// last TailSize(fileSize) bytes of the archive; fileSize is the full object
// size, needed to translate the absolute offsets stored in ZIP records into
// tail-relative positions.
//
// The second return value is false whenever the tail does not yield a DOI:
// no end-of-central-directory record, central directory or manifest data
// outside the window, unsupported compression, or no identifier in the
// decompressed manifest. Callers treat all of these the same way and leave
// the archive out of the index.
func ExtractDOI(tail []byte, fileSize int64) (string, bool) {
	tailStart := fileSize - int64(len(tail))

	eocd := bytes.LastIndex(tail, eocdSig)
	if eocd < 0 || eocd+eocdFixedLen > len(tail) {
		return "", false
	}

	// Absolute offset of the central directory, from the EOCD record.
	cdOffset := int64(binary.LittleEndian.Uint32(tail[eocd+16:]))
	if cdOffset < tailStart || cdOffset-tailStart > int64(len(tail)) {
		// Central directory starts before the window, or the offset is
		// garbage and points past it.
		return "", false
	}

	cd := tail[cdOffset-tailStart:]
	pos := 0
	for pos+centralFixedLen <= len(cd) {
		if !bytes.Equal(cd[pos:pos+4], centralSig) {
			// Either the directory genuinely ends here or the window cut
			// it short; the two cases are indistinguishable from the tail.
			break
		}
		nameLen := int(binary.LittleEndian.Uint16(cd[pos+28:]))
		extraLen := int(binary.LittleEndian.Uint16(cd[pos+30:]))
		commentLen := int(binary.LittleEndian.Uint16(cd[pos+32:]))
		localOffset := int64(binary.LittleEndian.Uint32(cd[pos+42:]))

		if pos+centralFixedLen+nameLen > len(cd) {
			break
		}
		name := cd[pos+centralFixedLen : pos+centralFixedLen+nameLen]
		if string(name) == ManifestName {
			return manifestDOI(tail, tailStart, localOffset)
		}

		pos += centralFixedLen + nameLen + extraLen + commentLen
	}

	return "", false
}

// manifestDOI slices the manifest entry's compressed payload out of the
// tail via its local file header, decompresses it, and applies the DOI
// pattern.
func manifestDOI(tail []byte, tailStart, localOffset int64) (string, bool) {
	if localOffset < tailStart || localOffset-tailStart > int64(len(tail)) {
		// Entry data lies before the window, or the offset is garbage.
		return "", false
	}

	entry := tail[localOffset-tailStart:]
	if len(entry) < localFixedLen || !bytes.Equal(entry[:4], localSig) {
		return "", false
	}

	method := binary.LittleEndian.Uint16(entry[8:])
	compSize := int(binary.LittleEndian.Uint32(entry[18:]))
	nameLen := int(binary.LittleEndian.Uint16(entry[26:]))
	extraLen := int(binary.LittleEndian.Uint16(entry[28:]))

	dataStart := localFixedLen + nameLen + extraLen
	if dataStart+compSize > len(entry) {
		return "", false
	}
	compressed := entry[dataStart : dataStart+compSize]

	var content []byte
	switch method {
	case 0: // stored
		content = compressed
	case 8: // DEFLATE, raw stream
		r := flate.NewReader(bytes.NewReader(compressed))
		decompressed, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return "", false
		}
		content = decompressed
	default:
		return "", false
	}

	m := atomPattern.FindSubmatch(content)
	if m == nil {
		return "", false
	}
	return DOIPrefix + string(m[1]), true
}

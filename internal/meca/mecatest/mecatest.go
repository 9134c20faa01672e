// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mecatest builds byte-exact MECA archive fixtures for tests.
// Archives are assembled record by record (local headers with true sizes
// and CRCs, central directory, end-of-central-directory) so they exercise
// the tail parser and still open with archive/zip.
package mecatest

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/klauspost/compress/flate"
)

// Compression methods used in fixtures.
const (
	MethodStored  uint16 = 0
	MethodDeflate uint16 = 8
)

// Entry is one archive member.
type Entry struct {
	Name   string
	Data   []byte
	Method uint16
}

// Build assembles a ZIP archive from entries. pad bytes of zeroes are
// written first, standing in for archive content that precedes the tail
// window; all stored offsets account for it.
func Build(pad int, entries ...Entry) []byte {
	var buf bytes.Buffer
	buf.Write(make([]byte, pad))

	type placed struct {
		Entry
		offset uint32
		comp   []byte
		crc    uint32
	}

	placedEntries := make([]placed, 0, len(entries))
	for _, e := range entries {
		comp := e.Data
		if e.Method == MethodDeflate {
			comp = Deflate(e.Data)
		}
		p := placed{
			Entry:  e,
			offset: uint32(buf.Len()),
			comp:   comp,
			crc:    crc32.ChecksumIEEE(e.Data),
		}

		buf.Write([]byte("PK\x03\x04"))
		u16(&buf, 20) // version needed
		u16(&buf, 0)  // flags
		u16(&buf, p.Method)
		u16(&buf, 0) // mod time
		u16(&buf, 0) // mod date
		u32(&buf, p.crc)
		u32(&buf, uint32(len(p.comp)))
		u32(&buf, uint32(len(p.Data)))
		u16(&buf, uint16(len(p.Name)))
		u16(&buf, 0) // extra len
		buf.WriteString(p.Name)
		buf.Write(p.comp)

		placedEntries = append(placedEntries, p)
	}

	cdStart := buf.Len()
	for _, p := range placedEntries {
		buf.Write([]byte("PK\x01\x02"))
		u16(&buf, 20) // version made by
		u16(&buf, 20) // version needed
		u16(&buf, 0)  // flags
		u16(&buf, p.Method)
		u16(&buf, 0) // mod time
		u16(&buf, 0) // mod date
		u32(&buf, p.crc)
		u32(&buf, uint32(len(p.comp)))
		u32(&buf, uint32(len(p.Data)))
		u16(&buf, uint16(len(p.Name)))
		u16(&buf, 0) // extra len
		u16(&buf, 0) // comment len
		u16(&buf, 0) // disk number
		u16(&buf, 0) // internal attrs
		u32(&buf, 0) // external attrs
		u32(&buf, p.offset)
		buf.WriteString(p.Name)
	}
	cdSize := buf.Len() - cdStart

	buf.Write([]byte("PK\x05\x06"))
	u16(&buf, 0) // disk number
	u16(&buf, 0) // central directory disk
	u16(&buf, uint16(len(entries)))
	u16(&buf, uint16(len(entries)))
	u32(&buf, uint32(cdSize))
	u32(&buf, uint32(cdStart))
	u16(&buf, 0) // comment len

	return buf.Bytes()
}

// Manifest returns a transfer.xml body whose resource path embeds the
// date-coded identifier, e.g. "2024.12.18.628357".
func Manifest(id string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>
<transfer><destination><resource href="/biorxiv/early/2024/12/20/` + id + `.atom"/></destination></transfer>`)
}

// Archive builds a well-formed MECA fixture holding a transfer manifest
// for id and a content XML body.
func Archive(id, contentXML string, method uint16) []byte {
	return Build(0,
		Entry{Name: "transfer.xml", Data: Manifest(id), Method: method},
		Entry{Name: "content/" + id + ".xml", Data: []byte(contentXML), Method: method},
	)
}

// Deflate compresses data as a raw DEFLATE stream.
func Deflate(data []byte) []byte {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		panic(err)
	}
	if _, err := w.Write(data); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func u16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func u32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

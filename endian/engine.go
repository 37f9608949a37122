// Package endian provides the byte order engines used by bina.
//
// BINA files carry their byte order as the last character of the signature
// ("BINA210L" or "BINA210B"). The byte order applies only to the integer
// fields of the file preamble; segment payloads are always little-endian.
// Use ForTag to map a signature tag to an engine:
//
//	engine, ok := endian.ForTag(format.BigEndian)
//	engine.PutUint32(b[8:12], fileSize)
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"

	"github.com/arloliu/bina/format"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForTag returns the engine for a signature endian tag.
// The second result is false for an unknown tag, in which case the little-endian
// engine is returned.
func ForTag(tag format.Endianness) (EndianEngine, bool) {
	switch tag {
	case format.LittleEndian:
		return binary.LittleEndian, true
	case format.BigEndian:
		return binary.BigEndian, true
	default:
		return binary.LittleEndian, false
	}
}

// TagOf returns the signature tag for engine.
func TagOf(engine EndianEngine) format.Endianness {
	if engine == GetBigEndianEngine() {
		return format.BigEndian
	}

	return format.LittleEndian
}

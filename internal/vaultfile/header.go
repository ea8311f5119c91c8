package vaultfile

import (
	"bytes"

	"github.com/dmitrijs2005/passlock/internal/common"
	"github.com/dmitrijs2005/passlock/internal/cryptox"
)

// On-disk layout:
//
//	magic "PVLT" (4) | version (1) | salt (16) | nonce (12) | ciphertext+tag
//
// The header bytes are bound into the AEAD tag as associated data, so a
// header swapped between files fails authentication even though the header
// itself is plaintext.
const (
	magic = "PVLT"

	// Version is the current on-disk format version. Unlock refuses any
	// other value rather than guessing a layout.
	Version = 0x01

	headerSize = len(magic) + 1 + cryptox.SaltSize + cryptox.NonceSize
)

type header struct {
	version byte
	salt    []byte
	nonce   []byte
}

func (h header) encode() []byte {
	buf := make([]byte, 0, headerSize)
	buf = append(buf, magic...)
	buf = append(buf, h.version)
	buf = append(buf, h.salt...)
	buf = append(buf, h.nonce...)
	return buf
}

// decodeHeader splits raw into the parsed header and the remaining
// ciphertext. Truncated or malformed headers are detectable before any
// cryptographic operation and are reported as common.ErrCorruptFile.
func decodeHeader(raw []byte) (header, []byte, error) {
	var h header
	if len(raw) < headerSize {
		return h, nil, common.ErrCorruptFile
	}
	if !bytes.Equal(raw[:len(magic)], []byte(magic)) {
		return h, nil, common.ErrCorruptFile
	}
	h.version = raw[len(magic)]
	if h.version != Version {
		return h, nil, common.ErrCorruptFile
	}
	off := len(magic) + 1
	h.salt = raw[off : off+cryptox.SaltSize]
	off += cryptox.SaltSize
	h.nonce = raw[off : off+cryptox.NonceSize]
	off += cryptox.NonceSize
	return h, raw[off:], nil
}

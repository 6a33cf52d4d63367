// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"time"
)

// BlobRecord is a payload stored in the large storage tier.
type BlobRecord struct {
	// ID has the form "<scopeId>-<unixMillis>-<random>".
	ID         string    `json:"id"`
	ScopeID    string    `json:"scope_id"`
	Payload    []byte    `json:"-"`
	MimeType   string    `json:"mime_type"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
	Size       int64     `json:"size"`

	// Checksum is the hex blake2b-256 digest of Payload.
	Checksum string `json:"checksum"`
}

// BlobRefKind discriminates the variants of [BlobRef].
type BlobRefKind int

const (
	// BlobRefNone is the zero value: nothing stored under the key.
	BlobRefNone BlobRefKind = iota
	// BlobRefInline means the payload lives in the small tier itself.
	BlobRefInline
	// BlobRefReference means the small tier only holds the id of a
	// [BlobRecord] in the large tier.
	BlobRefReference
)

// String implements fmt.Stringer.
func (k BlobRefKind) String() string {
	switch k {
	case BlobRefInline:
		return "inline"
	case BlobRefReference:
		return "reference"
	default:
		return "none"
	}
}

// BlobRef is the value stored in the small tier under a logical key: either
// the payload itself or a reference into the large tier.
type BlobRef struct {
	Kind   BlobRefKind
	Inline []byte
	RefID  string
}

// InlineRef builds an inline [BlobRef].
func InlineRef(payload []byte) BlobRef {
	return BlobRef{Kind: BlobRefInline, Inline: payload}
}

// ReferenceRef builds a [BlobRef] pointing at a large-tier record.
func ReferenceRef(id string) BlobRef {
	return BlobRef{Kind: BlobRefReference, RefID: id}
}

// Small-tier encodings of the two variants.
const (
	inlineRefPrefix    = "inline:"
	referenceRefPrefix = "tier2:"
)

// Encode returns the small-tier representation of r.
func (r BlobRef) Encode() []byte {
	switch r.Kind {
	case BlobRefInline:
		out := make([]byte, 0, len(inlineRefPrefix)+len(r.Inline))
		out = append(out, inlineRefPrefix...)
		return append(out, r.Inline...)
	case BlobRefReference:
		return []byte(referenceRefPrefix + r.RefID)
	default:
		return nil
	}
}

// DecodeBlobRef parses a small-tier value produced by [BlobRef.Encode].
// ok is false for values in neither encoding.
func DecodeBlobRef(raw []byte) (ref BlobRef, ok bool) {
	switch {
	case bytes.HasPrefix(raw, []byte(inlineRefPrefix)):
		payload := bytes.Clone(raw[len(inlineRefPrefix):])
		if payload == nil {
			payload = []byte{}
		}
		return InlineRef(payload), true
	case bytes.HasPrefix(raw, []byte(referenceRefPrefix)):
		id := string(raw[len(referenceRefPrefix):])
		if id == "" {
			return BlobRef{}, false
		}
		return ReferenceRef(id), true
	default:
		return BlobRef{}, false
	}
}

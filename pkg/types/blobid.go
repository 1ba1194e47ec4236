package types

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
)

// BlobID is a Git-style SHA-1 of raw file content.
type BlobID [20]byte

// ComputeBlobID hashes "blob {len}\0{content}" like git hash-object.
func ComputeBlobID(content []byte) BlobID {
	h := sha1.New()
	h.Write([]byte("blob " + strconv.Itoa(len(content)) + "\x00"))
	h.Write(content)

	var id BlobID
	copy(id[:], h.Sum(nil))
	return id
}

// IsZero reports whether the ID was never computed.
func (id BlobID) IsZero() bool {
	return id == BlobID{}
}

// Hex returns the 40-character hex form.
func (id BlobID) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id BlobID) String() string {
	return id.Hex()
}

// ParseBlobID parses the hex form produced by Hex.
func ParseBlobID(s string) (BlobID, error) {
	var id BlobID
	if len(s) != 2*len(id) {
		return id, fmt.Errorf("invalid blob ID length: expected %d, got %d", 2*len(id), len(s))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, fmt.Errorf("invalid hex string: %w", err)
	}
	return id, nil
}

// MarshalJSON encodes the ID as a hex string.
func (id BlobID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

// UnmarshalJSON decodes a hex string.
func (id *BlobID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseBlobID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

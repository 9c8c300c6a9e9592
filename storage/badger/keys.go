package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/medlex/core"
)

// Key prefixes for different data types
const (
	conceptRecordPrefix  = "conrec"
	conceptMappingPrefix = "conmap"
	languagePrefix       = "lang"
	searchPrefix         = "search"
	searchIDSeq          = "searchseq"
	selectionPrefix      = "selsyn"
	selectionIDSeq       = "selsynseq"
	viewPrefix           = "conview"
	viewIDSeq            = "conviewseq"
)

// makeConceptKey generates a key for a concept record by ID.
func makeConceptKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", conceptRecordPrefix, id))
}

// makeMappingKey generates a composite key for a "Maps to" edge.
// Format: prefix:sourceID:targetID
func makeMappingKey(sourceID, targetID core.ID) []byte {
	prefix := conceptMappingPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for sourceID + 8 bytes for targetID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(sourceID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(targetID))
	return buf
}

// makePartialMappingKey generates a partial key for mapping queries.
// Format: prefix:sourceID
func makePartialMappingKey(sourceID core.ID) []byte {
	prefix := conceptMappingPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for sourceID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(sourceID))
	return buf
}

// makeLanguageKey generates a key for a language by its 2-letter code.
func makeLanguageKey(code string) []byte {
	return []byte(fmt.Sprintf("%s:%s", languagePrefix, code))
}

// makeSearchKey generates a key for a search query by ID.
// IDs are encoded BigEndian so iteration yields ascending ID order.
func makeSearchKey(id core.ID) []byte {
	prefix := searchPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeSelectionKey generates a composite key for a synonym selection.
// Format: prefix:searchID:seq so selections group by search and keep
// insertion order.
func makeSelectionKey(searchID core.ID, seq uint64) []byte {
	prefix := selectionPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for searchID + 8 bytes for seq
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(searchID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makePartialSelectionKey generates a partial key for selection queries.
// Format: prefix:searchID
func makePartialSelectionKey(searchID core.ID) []byte {
	prefix := selectionPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for searchID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(searchID))
	return buf
}

// makeViewKey generates a key for a concept view fact by sequence number.
func makeViewKey(seq uint64) []byte {
	prefix := viewPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

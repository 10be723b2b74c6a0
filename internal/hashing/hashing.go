// Package hashing detects games that end in a position already seen.
package hashing

import (
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// DuplicateDetector tracks seen final positions for duplicate game detection.
// It is not safe for concurrent use.
type DuplicateDetector struct {
	// hashTable stores seen signatures by Zobrist hash
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires the same number of plies
	useExactMatch bool
	// maxCapacity caps the number of stored signatures; 0 means unlimited
	maxCapacity int
	// size is the number of stored signatures
	size int
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// PlyCount is the number of half-moves played from the initial position
	PlyCount int
	// WeakHash is a placement checksum for quick comparison
	WeakHash uint32
}

// NewSignature computes the signature of g's current position.
func NewSignature(g *engine.Game) GameSignature {
	return GameSignature{
		Hash:     GenerateZobristHash(g),
		PlyCount: len(g.History()),
		WeakHash: WeakHash(g),
	}
}

// NewDuplicateDetector creates a new duplicate detector.
// maxCapacity of 0 means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// CheckAndAdd checks if a game is a duplicate and adds it to the hash table.
// Returns true if the game is a duplicate. Once the detector is full new
// signatures are still checked but no longer stored.
func (d *DuplicateDetector) CheckAndAdd(g *engine.Game) bool {
	if g == nil {
		return false
	}

	sig := NewSignature(g)
	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return true
		}
	}

	if !d.IsFull() {
		d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
		d.size++
	}
	return false
}

// signaturesMatch checks if two game signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	if d.useExactMatch && a.PlyCount != b.PlyCount {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique games stored.
func (d *DuplicateDetector) UniqueCount() int {
	return d.size
}

// IsFull returns true if the detector has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.size >= d.maxCapacity
}

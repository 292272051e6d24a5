// Package kmer packs DNA k-mers into fixed-width integers and counts base
// mismatches between two k-mer chains. The packing scheme and the
// incremental chain-reconstruction loop below are grounded on
// github.com/grailbio/bio/fusion/kmer.go's kmerizer and on the byte-at-a-time
// table-lookup loops in github.com/grailbio/bio/biosimd/revcomp_generic.go.
package kmer

import (
	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
)

// Kmer is a packed sequence of up to 32 DNA bases, 2 bits each. The first
// base of the sequence occupies the highest-order bits, matching the
// left-to-right packing fusion.kmerizer performs ((acc<<2)|nextBase).
type Kmer uint64

const invalidBase = uint8(255)

var baseToBits [256]uint8
var bitsToBase = [4]byte{'A', 'C', 'G', 'T'}

func init() {
	for i := range baseToBits {
		baseToBits[i] = invalidBase
	}
	baseToBits['A'], baseToBits['a'] = 0, 0
	baseToBits['C'], baseToBits['c'] = 1, 1
	baseToBits['G'], baseToBits['g'] = 2, 2
	baseToBits['T'], baseToBits['t'] = 3, 3
}

// Pack encodes an ASCII ACGT sequence of length <= 32 into a Kmer. It
// returns false if the sequence contains a base outside {A,C,G,T}.
func Pack(seq string) (Kmer, bool) {
	var k Kmer
	b := gunsafe.StringToBytes(seq)
	for _, ch := range b {
		bits := baseToBits[ch]
		if bits == invalidBase {
			return 0, false
		}
		k = (k << 2) | Kmer(bits)
	}
	return k, true
}

// MustPack is Pack, but panics (mirroring fusion/stitcher.go's
// `panic("shoulnd't happen")` on an unexpected ambiguous base) when the
// caller has already validated seq contains only ACGT.
func MustPack(seq string) Kmer {
	k, ok := Pack(seq)
	if !ok {
		log.Panicf("kmer.MustPack: non-ACGT base in %q", seq)
	}
	return k
}

// Unpack decodes a Kmer of the given base length back into ASCII.
func Unpack(k Kmer, length int) string {
	buf := make([]byte, length)
	appendBases(buf, k, length)
	return gunsafe.BytesToString(buf)
}

// appendBases writes the `length` bases encoded in k into dst, which must
// have len(dst) >= length. Bases are written high-order-first, the same
// byte-at-a-time unpacking shape as biosimd's UnpackSeq loop.
func appendBases(dst []byte, k Kmer, length int) {
	for i := length - 1; i >= 0; i-- {
		dst[i] = bitsToBase[k&3]
		k >>= 2
	}
}

// lastBase returns the final (lowest-order) base of a k-mer, the base that
// a chain's next k-mer adds relative to its predecessor.
func lastBase(k Kmer) byte { return bitsToBase[k&3] }

// ChainBases reconstructs the full base sequence spanned by a chain of
// length-k overlapping k-mers: the k bases of chain[0], followed by one
// trailing base per subsequent k-mer. This mirrors how fusion's kmerizer
// advances incrementally, adding exactly one base's worth of state per
// Scan() call, rather than re-unpacking every k-mer from scratch.
func ChainBases(k int, chain []Kmer) []byte {
	if len(chain) == 0 {
		return nil
	}
	out := make([]byte, 0, k+len(chain)-1)
	head := make([]byte, k)
	appendBases(head, chain[0], k)
	out = append(out, head...)
	for _, km := range chain[1:] {
		out = append(out, lastBase(km))
	}
	return out
}

// BasesDifferent counts base mismatches between pathA and pathB, aligned
// left-to-right, compared over min(len(pathA), len(pathB)) + k - 1 bases
// (spec §4.1).
func BasesDifferent(k int, pathA, pathB []Kmer) int {
	if len(pathA) == 0 || len(pathB) == 0 {
		return 0
	}
	limit := minInt(len(pathA), len(pathB)) + k - 1
	seqA := ChainBases(k, pathA)
	seqB := ChainBases(k, pathB)
	diff := 0
	for i := 0; i < limit; i++ {
		if seqA[i] != seqB[i] {
			diff++
		}
	}
	return diff
}

// ReverseBasesDifferent is BasesDifferent, but aligned right-to-left: it
// compares the trailing min(len(pathA), len(pathB)) + k - 1 bases of each
// chain. Used when traversing predecessors (spec §4.1, §4.6).
func ReverseBasesDifferent(k int, pathA, pathB []Kmer) int {
	if len(pathA) == 0 || len(pathB) == 0 {
		return 0
	}
	limit := minInt(len(pathA), len(pathB)) + k - 1
	seqA := ChainBases(k, pathA)
	seqB := ChainBases(k, pathB)
	diff := 0
	for i := 0; i < limit; i++ {
		a := seqA[len(seqA)-1-i]
		b := seqB[len(seqB)-1-i]
		if a != b {
			diff++
		}
	}
	return diff
}

// Hash64 gives a k-mer chain a content hash for cheap duplicate detection,
// using the same farm.Hash64WithSeed call fusion/kmer_index.go uses to
// shard k-mers. No other package in this module calls it.
func Hash64(k int, chain []Kmer) uint64 {
	bases := ChainBases(k, chain)
	return farm.Hash64WithSeed(bases, 0)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

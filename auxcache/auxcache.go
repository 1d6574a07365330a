// Package auxcache implements the caller-owned auxiliary data blob that
// amortizes LMS Merkle tree recomputation across many signings.
//
// The blob holds precomputed values for the nodes closest to the root
// of one LMS tree (the levels that change least often and cost the
// most to recompute), plus an HMAC-SHA256 integrity tag binding its
// contents to the tree's master seed. It never allocates: the caller
// supplies the backing []byte (e.g. mmap'd from disk, shared across
// instances) exactly as bwesterb-go-xmssmt's PrivateKeyContainer treats
// its subtree cache as caller/container-owned scratch, adapted here
// from a file-backed container to a pure in-memory one: persisting the
// blob itself across process restarts is the caller's job.
package auxcache

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
)

const (
	markerUnused    byte = 0x00
	markerPopulated byte = 0x80

	tagLen = sha256.Size
)

// Cache is a view over a caller-owned byte slice, interpreted as a
// cache of precomputed Merkle node values for one LMS tree.
//
// Layout: [marker(1) | slot(0) | slot(1) | ... | slot(n-1) | hmacTag(32)]
// where each slot holds nodeSize bytes. Slot i holds the value of tree
// node index i+1, i.e. the cache always covers a root-anchored prefix
// of node indices [1, n]: closest to root is always cached first.
type Cache struct {
	buf      []byte
	nodeSize int
	slots    int
	valid    bool
}

// ErrTooSmall is returned when the supplied buffer cannot hold even the
// marker and tag, let alone a single cached node.
var ErrTooSmall = errors.New("auxcache: buffer too small to hold any cached nodes")

// Load interprets buf as an aux cache for a tree whose node values are
// nodeSize bytes, validating its integrity tag against seed. If the tag
// does not match (corrupt, stale, or simply never populated), the
// returned Cache reports every lookup as a miss and Valid() is false:
// an aux blob without a matching tag is treated as absent, never as a
// source of signature corruption.
func Load(buf []byte, nodeSize int, seed []byte) (*Cache, error) {
	slots := (len(buf) - 1 - tagLen) / nodeSize
	if slots < 1 {
		return nil, ErrTooSmall
	}
	c := &Cache{buf: buf, nodeSize: nodeSize, slots: slots}

	if buf[0] != markerPopulated {
		return c, nil
	}
	content := buf[:1+slots*nodeSize]
	gotTag := buf[1+slots*nodeSize : 1+slots*nodeSize+tagLen]
	if hmac.Equal(gotTag, tagOf(seed, content)) {
		c.valid = true
	}
	return c, nil
}

// Valid reports whether the cache's contents passed integrity
// verification against the seed supplied to Load.
func (c *Cache) Valid() bool {
	return c != nil && c.valid
}

// Capacity returns the number of root-anchored node slots this buffer
// can hold.
func (c *Cache) Capacity() int {
	if c == nil {
		return 0
	}
	return c.slots
}

// Get returns the cached value for 1-indexed Merkle tree node index r,
// and whether it was present. A node outside the cached root-anchored
// prefix, or a cache that failed integrity validation, always misses.
func (c *Cache) Get(r uint32) ([]byte, bool) {
	if c == nil || !c.valid || r < 1 || int(r) > c.slots {
		return nil, false
	}
	off := 1 + int(r-1)*c.nodeSize
	return c.buf[off : off+c.nodeSize], true
}

// InRange reports whether node index r falls within the cacheable
// root-anchored prefix, regardless of whether it has been populated
// yet. Used while populating the cache for the first time.
func (c *Cache) InRange(r uint32) bool {
	return c != nil && r >= 1 && int(r) <= c.slots
}

// Put stores value for node index r. It does not by itself make the
// cache valid for future Get calls by other instances — call Seal once
// population is complete.
func (c *Cache) Put(r uint32, value []byte) {
	if c == nil || !c.InRange(r) {
		return
	}
	off := 1 + int(r-1)*c.nodeSize
	copy(c.buf[off:off+c.nodeSize], value)
}

// Seal marks the cache populated and recomputes its integrity tag
// against seed. Call this once, after every in-range node has been
// written via Put, to make the buffer's contents durable across a
// future Load with the same seed.
func (c *Cache) Seal(seed []byte) {
	if c == nil {
		return
	}
	c.buf[0] = markerPopulated
	content := c.buf[:1+c.slots*c.nodeSize]
	copy(c.buf[1+c.slots*c.nodeSize:1+c.slots*c.nodeSize+tagLen], tagOf(seed, content))
	c.valid = true
}

func tagOf(seed, content []byte) []byte {
	mac := hmac.New(sha256.New, seed)
	mac.Write(content)
	return mac.Sum(nil)
}

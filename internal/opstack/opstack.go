// Package opstack is the write-side buffer described as component C3: it
// accumulates put/delete operations for one block, tracks a before-image
// per key so the batch can be undone, and serializes that undo record for
// storage under the undo row.
//
// The stack is writer-local: callers serialize block application through
// a single writer, the same scheduling model the store itself assumes.
// Each method takes an internal lock, so concurrent calls do not corrupt
// the buffer, but ops from interleaved writers land in one generation.
package opstack

import (
	"bytes"
	"sync"

	"github.com/deso-protocol/go-deadlock"
	"github.com/vmihailenco/msgpack/v5"
)

// Op is a single buffered mutation: a put (IsDelete false, NewValue the
// written bytes, nil for an empty value) or a delete (IsDelete true,
// NewValue nil). OldValue is the before-image, nil if the key did not
// exist before this batch touched it.
type Op struct {
	Key      []byte
	OldValue []byte
	NewValue []byte
	IsDelete bool
	// HadBeforeImage is false for unsafe-prefix keys, where the stack never
	// attempted to read the prior value.
	HadBeforeImage bool
}

// undoOp is the wire shape persisted into the undo row: the inverse of Op,
// i.e. what must be re-applied to roll the mutation back.
type undoOp struct {
	Key      []byte
	Value    []byte
	IsDelete bool
}

// Reader is the minimal read surface the stack needs to capture a
// before-image; *prefixdb.DB satisfies it without opstack importing that
// package (which itself depends on opstack), avoiding an import cycle.
type Reader interface {
	Get(key []byte) ([]byte, error)
}

// Stack buffers one write generation's worth of mutations. After a
// generation is committed, Reset empties it so the same Stack buffers the
// next block.
type Stack struct {
	mu sync.Mutex

	reader Reader
	// unsafe holds the prefix bytes the stack will never fetch a
	// before-image for — supplied at construction, per §4.2.
	unsafe map[byte]struct{}

	// order preserves insertion order of distinct keys so the undo log and
	// the batch apply in a deterministic sequence.
	order []string
	byKey map[string]*Op
}

// New builds a Stack over reader, which is consulted for before-images
// except for keys whose first byte is in unsafePrefixes.
func New(reader Reader, unsafePrefixes ...byte) *Stack {
	unsafe := make(map[byte]struct{}, len(unsafePrefixes))
	for _, p := range unsafePrefixes {
		unsafe[p] = struct{}{}
	}
	return &Stack{
		reader: reader,
		unsafe: unsafe,
		byKey:  make(map[string]*Op),
	}
}

// Put buffers a write of key -> value. If this is the first time key is
// touched in this generation, its before-image is captured now (unless the
// key's prefix is on the unsafe allowlist).
func (s *Stack) Put(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, err := s.entryFor(key)
	if err != nil {
		return err
	}
	op.NewValue = append([]byte(nil), value...)
	op.IsDelete = false
	return nil
}

// Delete buffers a deletion of key.
func (s *Stack) Delete(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, err := s.entryFor(key)
	if err != nil {
		return err
	}
	op.NewValue = nil
	op.IsDelete = true
	return nil
}

// entryFor returns the existing Op for key if this generation has already
// touched it (preserving its first before-image, per the conflict policy),
// or creates a new one after reading the before-image from the store.
func (s *Stack) entryFor(key []byte) (*Op, error) {
	k := string(key)
	if op, ok := s.byKey[k]; ok {
		return op, nil
	}

	op := &Op{Key: append([]byte(nil), key...)}
	if !s.isUnsafe(key) {
		old, err := s.reader.Get(key)
		if err != nil {
			return nil, err
		}
		if old != nil {
			op.OldValue = append([]byte(nil), old...)
			op.HadBeforeImage = true
		}
	}
	s.byKey[k] = op
	s.order = append(s.order, k)
	return op, nil
}

func (s *Stack) isUnsafe(key []byte) bool {
	if len(key) == 0 {
		return false
	}
	_, ok := s.unsafe[key[0]]
	return ok
}

// Ops returns the buffered mutations in the order their keys were first
// touched, applying the "last after-image wins" half of the conflict
// policy (the map already holds only the latest write per key).
func (s *Stack) Ops() []Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Op, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, *s.byKey[k])
	}
	return out
}

// Len reports how many distinct keys this generation has touched.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Reset discards all buffered ops, for reuse across generations.
func (s *Stack) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = s.order[:0]
	s.byKey = make(map[string]*Op)
}

// Undo serializes the inverse of every buffered op — what the store must
// apply to roll this generation back — as the opaque byte string stored in
// the undo row. Ops whose prefix was unsafe (and so carry no before-image)
// are skipped: they are, by construction, never part of consensus state
// that a reorg needs to restore.
func (s *Stack) Undo() ([]byte, error) {
	ops := s.Ops()
	undo := make([]undoOp, 0, len(ops))
	for _, op := range ops {
		if !op.HadBeforeImage && op.OldValue == nil && s.isUnsafe(op.Key) {
			continue
		}
		if op.OldValue == nil {
			// The key did not exist before; undoing means deleting it.
			undo = append(undo, undoOp{Key: op.Key, IsDelete: true})
		} else {
			undo = append(undo, undoOp{Key: op.Key, Value: op.OldValue})
		}
	}
	return msgpack.Marshal(undo)
}

// ApplyUndo decodes a serialized undo record and returns it as an ordered
// list of inverse ops, ready to hand to a batch writer during a rollback.
func ApplyUndo(data []byte) ([]Op, error) {
	var undo []undoOp
	if err := msgpack.Unmarshal(data, &undo); err != nil {
		return nil, err
	}
	ops := make([]Op, 0, len(undo))
	for _, u := range undo {
		ops = append(ops, Op{
			Key:      u.Key,
			NewValue: u.Value,
			IsDelete: u.IsDelete,
		})
	}
	return ops, nil
}

// WriterGuard serializes access to a single store writer across however
// many goroutines feed it blocks; unlike sync.Mutex, go-deadlock detects a
// writer that recursively re-enters the lock instead of hanging forever.
type WriterGuard struct {
	mu deadlock.Mutex
}

func (g *WriterGuard) Lock()   { g.mu.Lock() }
func (g *WriterGuard) Unlock() { g.mu.Unlock() }

// Equal reports whether two byte-string values are identical, treating a
// nil slice and an empty slice as equal — used by tests asserting
// before/after image contents.
func Equal(a, b []byte) bool {
	return bytes.Equal(a, b)
}

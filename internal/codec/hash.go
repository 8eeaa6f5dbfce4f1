package codec

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// DisplayHash formats a stored 32-byte tx/block/claim hash the way the
// protocol displays hashes at its boundaries: reversed byte order, hex
// encoded (the "reverse-hash display" invariant, §3.3). Stored rows keep
// the hash in its canonical wire order; only callers formatting a hash for
// a human or an external API go through this.
func DisplayHash(hash [TxHashLen]byte) string {
	return chainhash.Hash(hash).String()
}

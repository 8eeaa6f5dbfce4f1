package claimmeta

import (
	"crypto/sha512"
	"io"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/chainclaims/hub/internal/huberr"
)

// sha384ChunkMultiplier matches the original's `128 * sha384.block_size`
// read chunk size; sha512.New384's block size is 128 bytes, same as
// Python's hashlib, so the chunk is 16KiB either way.
const sha384ChunkMultiplier = 128

// Source is a stream claim's file-source metadata: name, size, media type,
// and the SHA-384 hash identifying its content, the Go analogue of Source
// in attrs.py.
type Source struct {
	Name        string
	Size        uint64
	MediaType   string
	FileHash    []byte // 48 bytes, raw SHA-384 digest
	SDHash      []byte
	BTInfoHash  []byte
	URL         string
}

// FileHashHex returns FileHash hex-encoded via go-ethereum's hexutil,
// the representation this module stores and serves on the wire (§9 Open
// Question "bt_infohash representation", resolved in favor of hex here
// rather than the original's raw decode()).
func (s Source) FileHashHex() string { return hexutil.Encode(s.FileHash) }

// SetFileHashHex decodes a hexutil-encoded digest into FileHash.
func (s *Source) SetFileHashHex(h string) error {
	b, err := hexutil.Decode(h)
	if err != nil {
		return huberr.Invalid("source file_hash: %v", err)
	}
	s.FileHash = b
	return nil
}

func (s Source) SDHashHex() string { return hexutil.Encode(s.SDHash) }

func (s *Source) SetSDHashHex(h string) error {
	b, err := hexutil.Decode(h)
	if err != nil {
		return huberr.Invalid("source sd_hash: %v", err)
	}
	s.SDHash = b
	return nil
}

// BTInfoHashHex is the hex encoding resolving the "bt_infohash
// representation" Open Question: stored and served as hex, never as the
// raw undecodable bytes the original's bt_infohash_bytes property
// produced by calling .decode() on arbitrary binary data.
func (s Source) BTInfoHashHex() string { return hexutil.Encode(s.BTInfoHash) }

func (s *Source) SetBTInfoHashHex(h string) error {
	b, err := hexutil.Decode(h)
	if err != nil {
		return huberr.Invalid("source bt_infohash: %v", err)
	}
	s.BTInfoHash = b
	return nil
}

// Update reads filePath, sets Name/Size/FileHash from it, and stores the
// caller-supplied media type in MediaType. It returns ErrMissingFile if
// the path does not exist and ErrEmptyFile if it exists but is zero bytes,
// matching MissingPublishedFileError/EmptyPublishedFileError in the
// original — checked in that order: existence first, then the size.
func (s *Source) Update(filePath string, mediaType string) error {
	if filePath == "" {
		return nil
	}
	s.Name = filepath.Base(filePath)
	s.MediaType = mediaType

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return huberr.ErrMissingFile
	}
	if err != nil {
		return err
	}
	s.Size = uint64(info.Size())
	if s.Size == 0 {
		return huberr.ErrEmptyFile
	}

	digest, err := sha384File(filePath)
	if err != nil {
		return err
	}
	s.FileHash = digest
	return nil
}

// sha384File hashes filePath in 128*BlockSize chunks, mirroring
// calculate_sha384_file_hash's streaming read loop rather than reading the
// whole file into memory at once.
func sha384File(filePath string) ([]byte, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := sha512.New384()
	buf := make([]byte, sha384ChunkMultiplier*h.BlockSize())
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

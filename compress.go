package flagset

import (
	"bytes"
	"github.com/golang/snappy"
	"github.com/pierrec/lz4"
	"github.com/pkg/errors"
	"io"
	"strings"
)

type CompressAlgorithm uint8

const (
	CompSnappy CompressAlgorithm = iota // default
	CompNone
	CompLz4
)

var ErrAlgorithm = errors.New("unknown compression algorithm")

func (a CompressAlgorithm) String() string {
	switch a {
	case CompSnappy:
		return "snappy"
	case CompNone:
		return "none"
	case CompLz4:
		return "lz4"
	}
	return "unknown"
}

// ParseCompression maps "snappy", "none" or "lz4" to its algorithm.
func ParseCompression(s string) (CompressAlgorithm, error) {
	switch strings.ToLower(s) {
	case "snappy", "":
		return CompSnappy, nil
	case "none":
		return CompNone, nil
	case "lz4":
		return CompLz4, nil
	}
	return 0, errors.Wrap(ErrAlgorithm, s)
}

// Decode implements envconfig.Decoder.
func (a *CompressAlgorithm) Decode(value string) error {
	v, err := ParseCompression(value)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

type Compressor func([]byte) ([]byte, error)
// DeCompressor expands in to exactly size bytes, or fails with ErrTruncated.
type DeCompressor func(in []byte, size int) ([]byte, error)

var (
	SnappyCompress Compressor = func(in []byte) ([]byte, error) {
		return snappy.Encode(nil, in), nil
	}
	SnappyDeCompress DeCompressor = func(in []byte, size int) ([]byte, error) {
		n, err := snappy.DecodedLen(in)
		if err != nil {
			return nil, err
		}
		if n != size {
			return nil, errors.Wrapf(ErrTruncated, "snappy length %d, want %d", n, size)
		}
		return snappy.Decode(make([]byte, size), in)
	}
)

var (
	Lz4Compress Compressor = func(in []byte) ([]byte, error) {
		buf := &bytes.Buffer{}
		writer := lz4.NewWriter(buf)
		writer.NoChecksum = true
		if _, err := writer.Write(in); err != nil {
			return nil, errors.Wrap(err, "lz4 write")
		}
		if err := writer.Close(); err != nil {
			return nil, errors.Wrap(err, "lz4 close")
		}
		return buf.Bytes(), nil
	}

	Lz4DeCompress DeCompressor = func(in []byte, size int) ([]byte, error) {
		buf := bytes.NewBuffer(make([]byte, 0, size))
		reader := lz4.NewReader(bytes.NewReader(in))
		if _, err := buf.ReadFrom(io.LimitReader(reader, int64(size)+1)); err != nil {
			return nil, err
		}
		if buf.Len() != size {
			return nil, errors.Wrapf(ErrTruncated, "lz4 length %d, want %d", buf.Len(), size)
		}
		return buf.Bytes(), nil
	}
)

// compressors returns the pair for a, or nil for CompNone.
func compressors(a CompressAlgorithm) (Compressor, DeCompressor, error) {
	switch a {
	case CompSnappy:
		return SnappyCompress, SnappyDeCompress, nil
	case CompLz4:
		return Lz4Compress, Lz4DeCompress, nil
	case CompNone:
		return nil, nil, nil
	}
	return nil, nil, errors.Wrapf(ErrAlgorithm, "%d", a)
}

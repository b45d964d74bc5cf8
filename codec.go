package flagset

import (
	"bytes"
	"encoding/binary"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"hash/crc32"
	"io"
	"math"
)

const (
	// "FSET" in bigEndian
	Magic   uint32 = 0x46534554
	Version uint8  = 1

	// magic + version + width + flag + algorithm
	headerSize   = 8
	checksumSize = 4

	// upper bound of decoded/encoded size for snappy and lz4
	maxRatio = 256
)

type BlockFlag uint8

const (
	// payload is compressed with the header's algorithm
	BlockCompressed BlockFlag = 1 << iota
	// trailing crc32 is present
	BlockChecksum
)

var (
	ErrBadMagic  = errors.New("not a flag set block")
	ErrVersion   = errors.New("unsupported block version")
	ErrWidth     = errors.New("block width does not match flag type")
	ErrChecksum  = errors.New("block checksum mismatch")
	ErrTruncated = errors.New("block truncated")
	ErrTrailing  = errors.New("trailing bytes after block")
)

// Options controls how Pack encodes a block.
type Options struct {
	// Compression is tried on the payload; it is kept only when the result is
	// smaller than the plain encoding.
	Compression CompressAlgorithm

	// NoChecksum omits the trailing crc32.
	NoChecksum bool
}

var DefaultOptions = &Options{
	Compression: CompSnappy,
}

// Pack encodes sets into one block.
func Pack[F constraints.Unsigned](sets []Set[F], options *Options) ([]byte, error) {
	if options == nil {
		options = DefaultOptions
	}
	compress, _, err := compressors(options.Compression)
	if err != nil {
		return nil, err
	}

	w := width[F]()
	payload := make([]byte, len(sets)*w)
	for i, s := range sets {
		putWord(payload[i*w:], uint64(s.Bits()), w)
	}

	var flag BlockFlag
	if compress != nil {
		c, err := compress(payload)
		if err != nil {
			return nil, errors.Wrap(err, "compress payload")
		}
		if len(c) < len(payload) {
			payload = c
			flag = SetBits(flag, BlockCompressed)
		}
	}
	if !options.NoChecksum {
		flag = SetBits(flag, BlockChecksum)
	}

	buf := bytes.NewBuffer(make([]byte, 0, headerSize+2*binary.MaxVarintLen64+len(payload)+checksumSize))
	var head [headerSize]byte
	binary.BigEndian.PutUint32(head[0:], Magic)
	head[4] = Version
	head[5] = byte(w)
	head[6] = byte(flag)
	head[7] = byte(options.Compression)
	buf.Write(head[:])

	lenBuf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(lenBuf, uint64(len(sets)))
	buf.Write(lenBuf[:n])
	n = binary.PutUvarint(lenBuf, uint64(len(payload)))
	buf.Write(lenBuf[:n])
	buf.Write(payload)

	if HasAny(flag, BlockChecksum) {
		var sum [checksumSize]byte
		binary.BigEndian.PutUint32(sum[:], crc32.ChecksumIEEE(payload))
		buf.Write(sum[:])
	}
	return buf.Bytes(), nil
}

// Unpack decodes a block written by Pack with the same flag width.
func Unpack[F constraints.Unsigned](data []byte) ([]Set[F], error) {
	if len(data) < headerSize {
		return nil, errors.Wrapf(ErrTruncated, "header needs %d bytes, got %d", headerSize, len(data))
	}
	if binary.BigEndian.Uint32(data[0:]) != Magic {
		return nil, ErrBadMagic
	}
	if data[4] != Version {
		return nil, errors.Wrapf(ErrVersion, "%d", data[4])
	}
	w := width[F]()
	if int(data[5]) != w {
		return nil, errors.Wrapf(ErrWidth, "block has %d bytes per set, want %d", data[5], w)
	}
	flag := BlockFlag(data[6])
	_, decompress, err := compressors(CompressAlgorithm(data[7]))
	if err != nil {
		return nil, err
	}

	reader := bytes.NewReader(data[headerSize:])
	count, err := binary.ReadUvarint(reader)
	if err != nil {
		return nil, errors.Wrap(ErrTruncated, "failed to read set count")
	}
	size, err := binary.ReadUvarint(reader)
	if err != nil {
		return nil, errors.Wrap(ErrTruncated, "failed to read payload length")
	}
	if uint64(reader.Len()) < size {
		return nil, errors.Wrapf(ErrTruncated, "payload needs %d bytes, got %d", size, reader.Len())
	}
	payload := make([]byte, size)
	_, _ = reader.Read(payload)

	if HasAny(flag, BlockChecksum) {
		var sum [checksumSize]byte
		if _, err := io.ReadFull(reader, sum[:]); err != nil {
			return nil, errors.Wrap(ErrTruncated, "failed to read checksum")
		}
		if binary.BigEndian.Uint32(sum[:]) != crc32.ChecksumIEEE(payload) {
			return nil, ErrChecksum
		}
	}

	if reader.Len() != 0 {
		return nil, errors.Wrapf(ErrTrailing, "%d bytes", reader.Len())
	}

	if count > uint64(math.MaxInt32/w) {
		return nil, errors.Wrapf(ErrTruncated, "%d sets", count)
	}
	expected := int(count) * w
	if HasAny(flag, BlockCompressed) {
		if decompress == nil {
			return nil, errors.Wrap(ErrAlgorithm, "compressed block without algorithm")
		}
		if expected > len(payload)*maxRatio {
			return nil, errors.Wrapf(ErrTruncated, "%d sets cannot fit in %d compressed bytes", count, len(payload))
		}
		if payload, err = decompress(payload, expected); err != nil {
			return nil, errors.Wrap(err, "failed to decompress payload")
		}
	}
	if len(payload) != expected {
		return nil, errors.Wrapf(ErrTruncated, "%d sets need %d bytes, payload has %d", count, expected, len(payload))
	}

	sets := make([]Set[F], count)
	for i := range sets {
		sets[i] = FromBits(F(word(payload[i*w:], w)))
	}
	return sets, nil
}

func putWord(b []byte, v uint64, w int) {
	for i := 0; i < w; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func word(b []byte, w int) uint64 {
	var v uint64
	for i := 0; i < w; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

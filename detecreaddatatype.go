package indeploci

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZlib
	DataTypeBZip2
	DataTypeLZW
)

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZlib:
		return "zlib"
	case DataTypeBZip2:
		return "bzip2"
	case DataTypeLZW:
		return "compress (.Z)"
	}

	return "invalid"
}

// Checked in this order. zlib has no magic number; its two byte header is
// 0x78 followed by one of the flag bytes for the four compression levels.
var byteCodeSigs = []struct {
	dt  DataType
	sig []byte
}{
	{DataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeLZW, []byte{0x1f, 0x9d}},
	{DataTypeBZip2, []byte{0x42, 0x5a, 0x68}},
	{DataTypeZlib, []byte{0x78, 0x01}},
	{DataTypeZlib, []byte{0x78, 0x5e}},
	{DataTypeZlib, []byte{0x78, 0x9c}},
	{DataTypeZlib, []byte{0x78, 0xda}},
}

// DetectDataType matches the leading bytes of a stream against known
// compression signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(head []byte) DataType {
	for _, s := range byteCodeSigs {
		if bytes.HasPrefix(head, s.sig) {
			return s.dt
		}
	}

	return DataTypeNoCompression
}

// MaybeDecompress peeks at the start of r and, if it carries a known
// compression signature, returns a reader of the decompressed data. Closing
// the result closes r.
func MaybeDecompress(r io.ReadCloser) (io.ReadCloser, DataType, error) {
	buffered := bufio.NewReader(r)
	head, err := buffered.Peek(6)
	if err != nil && err != io.EOF {
		return nil, DataTypeInvalid, pfx.Err(err)
	}

	dt := DetectDataType(head)

	var out io.Reader
	switch dt {
	case DataTypeGzip:
		out, err = gzip.NewReader(buffered)
	case DataTypeZip:
		// Only the first member of the archive is read
		zr := zipstream.NewReader(buffered)
		if _, err = zr.Next(); err == nil {
			out = zr
		}
	case DataTypeBZip2:
		out = bzip2.NewReader(buffered)
	case DataTypeXZ:
		out, err = xz.NewReader(buffered, 0)
	case DataTypeZlib:
		out, err = zlib.NewReader(buffered)
	case DataTypeLZW:
		err = fmt.Errorf("%s input is not supported; decompress it first", dt)
	default:
		out = buffered
	}
	if err != nil {
		return nil, DataTypeInvalid, pfx.Err(err)
	}

	return &chainedCloser{Reader: out, closers: []io.Closer{asCloser(out), r}}, dt, nil
}

func asCloser(r io.Reader) io.Closer {
	if c, ok := r.(io.Closer); ok {
		return c
	}

	return nil
}

// chainedCloser closes every non-nil closer in order and reports the first
// error.
type chainedCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *chainedCloser) Close() error {
	var first error
	for _, closer := range c.closers {
		if closer == nil {
			continue
		}
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

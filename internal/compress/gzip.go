package compress

import (
	"bytes"
	"compress/gzip"
)

// GZip is the stdlib codec. Slower than LZ4 and larger than Brotli, but
// every tool can read its output, so it is the safe pick for exports.
type GZip struct {
}

func NewGZip() GZip {
	return GZip{}
}

func (g GZip) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (g GZip) Decode(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	// Close checks the stream checksum
	if err := r.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

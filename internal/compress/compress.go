package compress

// Compress encodes document text before it is written to the text column
// and decodes it on the way back out.
type Compress interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// Names recorded on the document row so reads pick the right codec.
const (
	NameNop    = ""
	NameGZip   = "gzip"
	NameBrotli = "brotli"
	NameLZ4    = "lz4"
)

// FromName returns the codec for a recorded name. Unknown names fall back
// to the nop codec.
func FromName(name string) Compress {
	switch name {
	case NameGZip:
		return NewGZip()
	case NameBrotli:
		return NewBrotli()
	case NameLZ4:
		return NewLZ4()
	default:
		return NewNop()
	}
}

// Name returns the recorded name of a codec.
func Name(c Compress) string {
	switch c.(type) {
	case GZip:
		return NameGZip
	case Brotli:
		return NameBrotli
	case LZ4:
		return NameLZ4
	default:
		return NameNop
	}
}

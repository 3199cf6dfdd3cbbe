package codec

// Bytes is an identity codec for []byte values. Encode/Decode return the
// input unchanged, so binary output of a computation survives a cache round
// trip byte-for-byte.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String is a trivial codec for Go string values. Encode converts to []byte,
// and Decode converts back to string. By convention this assumes UTF-8 and
// performs no validation. An empty string encodes to an empty (non-absent)
// entry, distinct from a cache miss.
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }

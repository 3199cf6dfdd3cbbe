// Package codec defines how cached values are serialized for storage and
// deserialized on retrieval. Codecs are independent of the coordinator and
// compose by wrapping (see Limit).
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

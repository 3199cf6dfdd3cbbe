package codec

import "google.golang.org/protobuf/proto"

// Protobuf serializes proto messages. A constructor for the concrete
// message type is required because Decode must allocate one
// (e.g., func() *mypb.Quote { return &mypb.Quote{} }).
type Protobuf[T proto.Message] struct {
	new func() T
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}
func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}

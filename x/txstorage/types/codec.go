package types

import (
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
	"github.com/fxamacker/cbor/v2"
)

// Collection values are encoded with canonical CBOR so that state bytes are
// identical across nodes regardless of map iteration or struct evolution in
// the encoder.
var cborEnc cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to build canonical cbor encoder: %v", err))
	}
	cborEnc = em
}

// CBORValue returns a collections value codec for V backed by canonical
// CBOR, with JSON used for genesis import/export.
func CBORValue[V any](name string) collcodec.ValueCodec[V] {
	return cborValueCodec[V]{name: name}
}

type cborValueCodec[V any] struct {
	name string
}

func (c cborValueCodec[V]) Encode(value V) ([]byte, error) {
	return cborEnc.Marshal(value)
}

func (c cborValueCodec[V]) Decode(b []byte) (V, error) {
	var value V
	if err := cbor.Unmarshal(b, &value); err != nil {
		return value, fmt.Errorf("failed to decode %s: %w", c.name, err)
	}
	return value, nil
}

func (c cborValueCodec[V]) EncodeJSON(value V) ([]byte, error) {
	return json.Marshal(value)
}

func (c cborValueCodec[V]) DecodeJSON(b []byte) (V, error) {
	var value V
	if err := json.Unmarshal(b, &value); err != nil {
		return value, fmt.Errorf("failed to decode %s json: %w", c.name, err)
	}
	return value, nil
}

func (c cborValueCodec[V]) Stringify(value V) string {
	return fmt.Sprintf("%v", value)
}

func (c cborValueCodec[V]) ValueType() string {
	return c.name
}

package api

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content-subtype the NetworkStats RPCs are negotiated
// with. The message types in this package are plain structs rather than
// protoc output, so they cannot travel through the default proto codec;
// the client stubs request this codec on every call and the server side
// resolves it from the encoding registry.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (jsonCodec) Name() string { return CodecName }

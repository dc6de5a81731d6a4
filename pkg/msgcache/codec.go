package msgcache

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/amannn/next-intl-sub001/pkg/icu"
)

// Codec serializes messages for stores that keep bytes (Redis).
// Both built-in codecs write the compact form produced by icu.Compact.
type Codec interface {
	Marshal(msg icu.Message) ([]byte, error)
	Unmarshal(data []byte) (icu.Message, error)
}

// JSONCodec encodes messages as compact JSON. It is human-readable in
// redis-cli and the default codec.
type JSONCodec struct{}

func (JSONCodec) Marshal(msg icu.Message) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (JSONCodec) Unmarshal(data []byte) (icu.Message, error) {
	var msg icu.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}
	return msg, nil
}

// MsgpackCodec encodes messages as compact msgpack, with sorted map keys so
// equal messages produce equal bytes.
type MsgpackCodec struct{}

func (MsgpackCodec) Marshal(msg icu.Message) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(msg); err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return buf.Bytes(), nil
}

func (MsgpackCodec) Unmarshal(data []byte) (icu.Message, error) {
	var msg icu.Message
	if err := msgpack.Unmarshal(data, &msg); err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}
	return msg, nil
}

var (
	_ Codec = JSONCodec{}
	_ Codec = MsgpackCodec{}
)

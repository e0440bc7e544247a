package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	collcodec "cosmossdk.io/collections/codec"
)

// UnmarshalObject decodes a single JSON object into v, rejecting trailing
// data. Fields v does not know are ignored.
func UnmarshalObject(bz []byte, v any) error {
	if trimmed := bytes.TrimLeft(bz, " \t\r\n"); len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("expected a json object")
	}
	dec := json.NewDecoder(bytes.NewReader(bz))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after json document")
	}
	return nil
}

// UnmarshalEnum decodes an externally tagged enum into v, a pointer to a
// struct with one field per variant. The object must have exactly one key
// naming a variant. Variant bodies are decoded like UnmarshalObject and may
// carry fields v does not know.
func UnmarshalEnum(bz []byte, v any) error {
	var raw map[string]json.RawMessage
	if err := UnmarshalObject(bz, &raw); err != nil {
		return err
	}
	known := variantNames(v)
	for key := range raw {
		if _, ok := known[key]; !ok {
			return fmt.Errorf("unknown variant %q", key)
		}
	}
	if len(raw) > 1 {
		return fmt.Errorf("expected exactly one variant, got %d", len(raw))
	}
	return json.Unmarshal(bz, v)
}

// variantNames lists the json names of the fields of the struct v points to.
func variantNames(v any) map[string]struct{} {
	names := make(map[string]struct{})
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return names
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = field.Name
		}
		names[name] = struct{}{}
	}
	return names
}

// CountVariants returns how many of the given enum variants are set.
func CountVariants(set ...bool) int {
	n := 0
	for _, ok := range set {
		if ok {
			n++
		}
	}
	return n
}

// JSONValue is a collections value codec storing T as JSON, the encoding
// CosmWasm contracts use for their own state.
func JSONValue[T any]() collcodec.ValueCodec[T] {
	return jsonValue[T]{}
}

type jsonValue[T any] struct{}

func (jsonValue[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (jsonValue[T]) Decode(b []byte) (T, error) {
	var v T
	err := json.Unmarshal(b, &v)
	return v, err
}

func (c jsonValue[T]) EncodeJSON(value T) ([]byte, error) {
	return c.Encode(value)
}

func (c jsonValue[T]) DecodeJSON(b []byte) (T, error) {
	return c.Decode(b)
}

func (c jsonValue[T]) Stringify(value T) string {
	bz, err := c.Encode(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(bz)
}

func (jsonValue[T]) ValueType() string {
	var v T
	return fmt.Sprintf("json(%T)", v)
}

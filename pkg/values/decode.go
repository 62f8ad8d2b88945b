/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: decode.go
Description: Order-preserving JSON decoding for the Akaylee Mapper. Walks the token
stream directly so that object key order survives into the Value model, keeping
schema inference stable and reproducible across runs.
*/

package values

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Decode parses a JSON document into a Value, preserving object key order.
// Numbers are decoded with json.Number so integers and floats stay distinct.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Null(), err
	}

	// Reject trailing content
	if _, err := dec.Token(); err != io.EOF {
		return Null(), fmt.Errorf("unexpected trailing content in JSON document")
	}
	return v, nil
}

// MustParse decodes a JSON literal and panics on error. Test helper.
func MustParse(doc string) Value {
	v, err := Decode([]byte(doc))
	if err != nil {
		panic(err)
	}
	return v
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null(), fmt.Errorf("failed to decode JSON value: %w", err)
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return fromNumber(t), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeList(dec)
		default:
			return Null(), fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return Null(), fmt.Errorf("unexpected JSON token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	v := Value{kind: KindObject, obj: make(map[string]Value)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Null(), fmt.Errorf("failed to decode object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return Null(), fmt.Errorf("object key is not a string: %v", keyTok)
		}
		child, err := decodeValue(dec)
		if err != nil {
			return Null(), err
		}
		if _, exists := v.obj[key]; !exists {
			v.keys = append(v.keys, key)
		}
		v.obj[key] = child
	}
	// Consume closing '}'
	if _, err := dec.Token(); err != nil {
		return Null(), fmt.Errorf("failed to decode object end: %w", err)
	}
	return v, nil
}

func decodeList(dec *json.Decoder) (Value, error) {
	v := Value{kind: KindList, list: []Value{}}
	for dec.More() {
		elem, err := decodeValue(dec)
		if err != nil {
			return Null(), err
		}
		v.list = append(v.list, elem)
	}
	// Consume closing ']'
	if _, err := dec.Token(); err != nil {
		return Null(), fmt.Errorf("failed to decode list end: %w", err)
	}
	return v, nil
}

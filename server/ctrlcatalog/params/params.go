// Package params decodes catalog request bodies.
//
// Bodies are JSON objects. They are decoded into a generic map first and then
// into the typed request with mapstructure, so unknown keys and wrongly typed
// values are rejected. A key set to null is treated the same as a missing
// key, and an empty body is an empty object.
package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// MaxBodySize bounds JSON request bodies. Partition uploads are not decoded here.
const MaxBodySize = 1 << 20

var (
	ErrBadBody  = errors.New("bad request body")
	ErrBadValue = errors.New("bad value")
)

var (
	jsonNumberType  = reflect.TypeOf(json.Number(""))
	stringSliceType = reflect.TypeOf([]string(nil))
)

func Decode(r io.Reader, out interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r, MaxBodySize))
	dec.UseNumber()

	var raw map[string]interface{}
	switch err := dec.Decode(&raw); {
	case errors.Is(err, io.EOF):
		// empty body
	case err != nil:
		return fmt.Errorf("%w: %v", ErrBadBody, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after object", ErrBadBody)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  hook,
		ErrorUnused: true,
		TagName:     "json",
		Result:      out,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrBadBody, err)
	}
	return nil
}

func hook(from, to reflect.Type, data interface{}) (interface{}, error) {
	switch {
	// mapstructure happily turns a json.Number into a string since it has
	// string kind, but a number where a string is expected is a bad request
	case from == jsonNumberType && to.Kind() == reflect.String:
		return nil, fmt.Errorf("expected a string, got number %v", data)
	// a single string is accepted where a list of strings is expected
	case from.Kind() == reflect.String && from != jsonNumberType && to == stringSliceType:
		return []string{reflect.ValueOf(data).String()}, nil
	}
	return data, nil
}

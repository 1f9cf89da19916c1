package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/kaptinlin/jsonrepair"
)

// ParseStringAs parses a string into the specified type T. Primitive types
// (string, bool, int, uint, float) are converted directly; complex types
// (structs, maps, slices) are JSON-unmarshaled. When unmarshaling fails the
// string is run through jsonrepair and retried once, since language models
// routinely emit almost-JSON (single quotes, unquoted keys, trailing
// commas).
//
// Example usage:
//
//	// Valid JSON
//	input, err := parse.ParseStringAs[Input](`{"url":"https://example.com"}`)
//
//	// Almost-JSON, auto-repaired
//	input, err := parse.ParseStringAs[Input](`{url: 'https://example.com'}`)
func ParseStringAs[T any](content string) (T, error) {
	var result T

	switch reflect.TypeFor[T]().Kind() {
	case reflect.String:
		reflect.ValueOf(&result).Elem().SetString(content)
		return result, nil

	case reflect.Bool:
		val, err := strconv.ParseBool(content)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as bool: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetBool(val)
		return result, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		val, err := strconv.ParseInt(content, 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as int: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetInt(val)
		return result, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		val, err := strconv.ParseUint(content, 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as uint: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetUint(val)
		return result, nil

	case reflect.Float32, reflect.Float64:
		val, err := strconv.ParseFloat(content, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as float: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetFloat(val)
		return result, nil

	default:
		if err := json.Unmarshal([]byte(content), &result); err != nil {
			repaired, repairErr := jsonrepair.JSONRepair(content)
			if repairErr != nil {
				return result, fmt.Errorf("failed to parse content as %T: %w", result, err)
			}
			if err := json.Unmarshal([]byte(repaired), &result); err != nil {
				return result, fmt.Errorf("failed to parse repaired content as %T: %w", result, err)
			}
		}
		return result, nil
	}
}

// Package parse provides tolerant string-to-type parsing for tool inputs.
// Language models do not always emit strict JSON, so parsing falls back to
// automatic repair before failing.
package parse

package cmn

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/erinpentecost/byteline"
)

var errorJSONSyntax = Err(
	"json.syntax",
	"Invalid JSON document", "Line: %d", "Column: %d", "Caused by: %s",
)

// JSON https://www.json.org/json-en.html
//
// Keys are looked up as written ("basset.handles") and, when absent, through nested objects
// ({"basset": {"handles": ...}}).
type JSON map[string]interface{}

func JSONParse(data []byte) (*JSON, error) {
	var obj = &JSON{}
	err := json.Unmarshal(data, obj)
	if err != nil {
		var offset int64 = -1
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) {
			offset = syntaxErr.Offset
		} else if errors.As(err, &typeErr) {
			offset = typeErr.Offset
		}
		if offset < 0 {
			return nil, err
		}
		line, column := jsonPosition(data, int(offset))
		return nil, errorJSONSyntax(line, column, err)
	}
	return obj, nil
}

// jsonPosition converts a byte offset into line and column
func jsonPosition(data []byte, offset int) (int, int) {
	lineTracker := byteline.NewReader(bytes.NewReader(data))
	if _, err := io.Copy(io.Discard, lineTracker); err != nil {
		return 0, 0
	}
	if offset > 0 {
		// encoding/json reports the offset after the offending byte
		offset--
	}
	line, column, err := lineTracker.GetLineAndColumn(offset)
	if err != nil {
		return 0, 0
	}
	return line, column
}

func (j *JSON) Encode() ([]byte, error) {
	return json.Marshal(j.Get())
}

func (j *JSON) Get() map[string]interface{} {
	if j == nil || *j == nil {
		return map[string]interface{}{}
	}
	return *j
}

// Set a value, dotted keys are stored as written
func (j *JSON) Set(key string, value interface{}) {
	if *j == nil {
		*j = JSON{}
	}
	(*j)[key] = value
}

// Value finds a key, first as written then through nested objects
func (j *JSON) Value(key string) (interface{}, bool) {
	values := j.Get()
	if value, exists := values[key]; exists {
		return value, true
	}
	head, tail, nested := strings.Cut(key, ".")
	if !nested {
		return nil, false
	}
	child, isObject := values[head].(map[string]interface{})
	if !isObject {
		return nil, false
	}
	childJSON := JSON(child)
	return childJSON.Value(tail)
}

// Has determine if the JSON contains a specific key.
func (j *JSON) Has(key string) (exists bool) {
	_, exists = j.Value(key)
	return
}

// IsNull true when the key is absent or explicitly null
func (j *JSON) IsNull(key string) bool {
	value, _ := j.Value(key)
	return value == nil
}

func (j *JSON) String(key string) string {
	value, _ := j.Value(key)
	if s, isString := value.(string); isString {
		return s
	}
	return ""
}

func (j *JSON) Number(key string) float64 {
	value, _ := j.Value(key)
	if n, isNumber := value.(float64); isNumber {
		return n
	}
	return 0
}

func (j *JSON) Bool(key string) bool {
	value, _ := j.Value(key)
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	}
	return false
}

func (j *JSON) Object(key string) *JSON {
	value, _ := j.Value(key)
	if obj, isObject := value.(map[string]interface{}); isObject {
		o := JSON(obj)
		return &o
	}
	return nil
}

func (j *JSON) Array(key string) []*JSON {
	value, _ := j.Value(key)
	items, isArray := value.([]interface{})
	if !isArray {
		return nil
	}
	var out []*JSON
	for _, item := range items {
		if obj, isObject := item.(map[string]interface{}); isObject {
			o := JSON(obj)
			out = append(out, &o)
		}
	}
	return out
}

func (j *JSON) ArrayString(key string) []string {
	value, _ := j.Value(key)
	items, isArray := value.([]interface{})
	if !isArray {
		if s, isString := value.(string); isString && s != "" {
			return []string{s}
		}
		return nil
	}
	var out []string
	for _, item := range items {
		if s, isString := item.(string); isString {
			out = append(out, s)
		}
	}
	return out
}

// StringMap the string values of an object
func (j *JSON) StringMap(key string) map[string]string {
	obj := j.Object(key)
	if obj == nil {
		return nil
	}
	out := map[string]string{}
	for k, v := range obj.Get() {
		if s, isString := v.(string); isString {
			out[k] = s
		}
	}
	return out
}

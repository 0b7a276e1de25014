package jsontree

import (
	"bytes"
	"encoding/json"
	"github.com/morikuni/failure"
	"io"
	"strconv"
)

type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeNull    Type = "null"
)

// Value is a decoded JSON value. Exactly one payload field is meaningful,
// selected by Type. Object members keep their document order.
type Value struct {
	Type   Type
	Str    string
	Number json.Number
	Bool   bool
	Object []Member
	Array  []Value
}

type Member struct {
	Key   string
	Value Value
}

func String(s string) Value          { return Value{Type: TypeString, Str: s} }
func Number(n string) Value          { return Value{Type: TypeNumber, Number: json.Number(n)} }
func Bool(b bool) Value              { return Value{Type: TypeBoolean, Bool: b} }
func Null() Value                    { return Value{Type: TypeNull} }
func Array(items ...Value) Value     { return Value{Type: TypeArray, Array: items} }
func Object(members ...Member) Value { return Value{Type: TypeObject, Object: members} }

func (v Value) IsContainer() bool {
	return v.Type == TypeObject || v.Type == TypeArray
}

// Len is the number of members or items of a container.
func (v Value) Len() int {
	switch v.Type {
	case TypeObject:
		return len(v.Object)
	case TypeArray:
		return len(v.Array)
	}
	return 0
}

// Field returns the member value for key.
func (v Value) Field(key string) (Value, bool) {
	for _, m := range v.Object {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// MaxDepth bounds how deeply arrays and objects may nest in a document.
const MaxDepth = 10000

// Parse decodes a single JSON document.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decode(dec, 0)
	if failure.Is(err, InvalidPayload) {
		return Value{}, err
	}
	if err != nil {
		return Value{}, failure.Translate(err, InvalidPayload)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, failure.New(InvalidPayload, failure.Message("unexpected data after JSON document"))
	}
	return v, nil
}

func decode(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		if depth >= MaxDepth {
			return Value{}, failure.New(InvalidPayload,
				failure.Context{"depth": strconv.Itoa(depth)},
				failure.Messagef("JSON nested deeper than %d levels", MaxDepth),
			)
		}
		if t == '{' {
			return decodeObject(dec, depth+1)
		}
		return decodeArray(dec, depth+1)
	case string:
		return String(t), nil
	case json.Number:
		return Value{Type: TypeNumber, Number: t}, nil
	case bool:
		return Bool(t), nil
	default:
		return Null(), nil
	}
}

func decodeObject(dec *json.Decoder, depth int) (Value, error) {
	obj := Value{Type: TypeObject, Object: []Member{}}
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, _ := tok.(string)
		val, err := decode(dec, depth)
		if err != nil {
			return Value{}, err
		}
		// a repeated key keeps its first position and its last value
		if i, ok := index[key]; ok {
			obj.Object[i].Value = val
			continue
		}
		index[key] = len(obj.Object)
		obj.Object = append(obj.Object, Member{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder, depth int) (Value, error) {
	arr := Value{Type: TypeArray, Array: []Value{}}
	for dec.More() {
		val, err := decode(dec, depth)
		if err != nil {
			return Value{}, err
		}
		arr.Array = append(arr.Array, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return arr, nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) write(buf *bytes.Buffer) error {
	switch v.Type {
	case TypeObject:
		buf.WriteByte('{')
		for i, m := range v.Object {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := m.Value.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case TypeArray:
		buf.WriteByte('[')
		for i, item := range v.Array {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case TypeString:
		s, err := json.Marshal(v.Str)
		if err != nil {
			return err
		}
		buf.Write(s)
	case TypeNumber:
		buf.WriteString(v.Number.String())
	case TypeBoolean:
		if v.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	default:
		buf.WriteString("null")
	}
	return nil
}

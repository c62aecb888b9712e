// Package dict implements the key/value tuple codec used on the phone
// link. A message is a small dictionary of integer-keyed tagged values,
// serialized little-endian: one count byte followed by tuples of
// [key u32][type u8][length u16][value].
package dict

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	tupleHeaderLen = 4 + 1 + 2
	countLen       = 1

	// MaxValueLen bounds one tuple value; the count field is uint16.
	MaxValueLen = int(^uint16(0))
)

var (
	ErrShortMessage    = errors.New("dict: short message")
	ErrShortTupleValue = errors.New("dict: short tuple value")
	ErrTooManyTuples   = errors.New("dict: too many tuples")
	ErrValueTooLarge   = errors.New("dict: value too large")
	ErrWidthMismatch   = errors.New("dict: integer width mismatch")
)

// Type IDs from the dictionary contract.
const (
	TypeBytes   uint8 = 0
	TypeCString uint8 = 1
	TypeUint    uint8 = 2
	TypeInt     uint8 = 3
)

// Tuple is one decoded dictionary entry. Integer tuples carry their
// width implicitly in the value length (1, 2 or 4 bytes).
type Tuple struct {
	Key   uint32
	Type  uint8
	Value []byte
}

func Uint8Tuple(key uint32, v uint8) Tuple {
	return Tuple{Key: key, Type: TypeUint, Value: []byte{v}}
}

func Uint16Tuple(key uint32, v uint16) Tuple {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, v)
	return Tuple{Key: key, Type: TypeUint, Value: buf}
}

func Uint32Tuple(key uint32, v uint32) Tuple {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return Tuple{Key: key, Type: TypeUint, Value: buf}
}

// CStringTuple encodes s with the trailing NUL the device side expects.
func CStringTuple(key uint32, s string) Tuple {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return Tuple{Key: key, Type: TypeCString, Value: buf}
}

func BytesTuple(key uint32, v []byte) Tuple {
	buf := make([]byte, len(v))
	copy(buf, v)
	return Tuple{Key: key, Type: TypeBytes, Value: buf}
}

// Uint8 returns the tuple value as uint8.
func (t Tuple) Uint8() (uint8, error) {
	if len(t.Value) != 1 {
		return 0, fmt.Errorf("%w: key=%d len=%d want=1", ErrWidthMismatch, t.Key, len(t.Value))
	}
	return t.Value[0], nil
}

// Uint16 returns the tuple value as little-endian uint16.
func (t Tuple) Uint16() (uint16, error) {
	if len(t.Value) != 2 {
		return 0, fmt.Errorf("%w: key=%d len=%d want=2", ErrWidthMismatch, t.Key, len(t.Value))
	}
	return binary.LittleEndian.Uint16(t.Value), nil
}

// Uint32 returns the tuple value as little-endian uint32.
func (t Tuple) Uint32() (uint32, error) {
	if len(t.Value) != 4 {
		return 0, fmt.Errorf("%w: key=%d len=%d want=4", ErrWidthMismatch, t.Key, len(t.Value))
	}
	return binary.LittleEndian.Uint32(t.Value), nil
}

// CString returns the tuple value as a string, stopping at the first NUL.
// A value without a terminator is used whole.
func (t Tuple) CString() string {
	for i, b := range t.Value {
		if b == 0 {
			return string(t.Value[:i])
		}
	}
	return string(t.Value)
}

// Encode serializes tuples into one wire message.
func Encode(tuples []Tuple) ([]byte, error) {
	if len(tuples) > int(^uint8(0)) {
		return nil, ErrTooManyTuples
	}
	size := countLen
	for _, t := range tuples {
		if len(t.Value) > MaxValueLen {
			return nil, fmt.Errorf("%w: key=%d len=%d", ErrValueTooLarge, t.Key, len(t.Value))
		}
		size += tupleHeaderLen + len(t.Value)
	}
	out := make([]byte, 0, size)
	out = append(out, uint8(len(tuples)))
	for _, t := range tuples {
		var head [tupleHeaderLen]byte
		binary.LittleEndian.PutUint32(head[0:4], t.Key)
		head[4] = t.Type
		binary.LittleEndian.PutUint16(head[5:7], uint16(len(t.Value)))
		out = append(out, head[:]...)
		out = append(out, t.Value...)
	}
	return out, nil
}

// Decode parses one wire message into tuples. Bytes beyond the declared
// tuple count are ignored.
func Decode(buf []byte) ([]Tuple, error) {
	if len(buf) < countLen {
		return nil, ErrShortMessage
	}
	count := int(buf[0])
	tuples := make([]Tuple, 0, count)
	i := countLen
	for n := 0; n < count; n++ {
		if len(buf)-i < tupleHeaderLen {
			return nil, ErrShortMessage
		}
		key := binary.LittleEndian.Uint32(buf[i : i+4])
		typeID := buf[i+4]
		l := int(binary.LittleEndian.Uint16(buf[i+5 : i+7]))
		i += tupleHeaderLen
		if len(buf)-i < l {
			return nil, ErrShortTupleValue
		}
		val := make([]byte, l)
		copy(val, buf[i:i+l])
		i += l
		tuples = append(tuples, Tuple{Key: key, Type: typeID, Value: val})
	}
	return tuples, nil
}

// Get returns the first tuple with the given key.
func Get(tuples []Tuple, key uint32) (Tuple, bool) {
	for _, t := range tuples {
		if t.Key == key {
			return t, true
		}
	}
	return Tuple{}, false
}

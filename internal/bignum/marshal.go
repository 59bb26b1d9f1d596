package bignum

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ msgpack.CustomEncoder = BigInt{}
	_ msgpack.CustomDecoder = (*BigInt)(nil)
	_ msgpack.CustomEncoder = BigUint{}
	_ msgpack.CustomDecoder = (*BigUint)(nil)
)

// MarshalText implements encoding.TextMarshaler.
func (i BigInt) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *BigInt) UnmarshalText(text []byte) error {
	v, err := ParseInt(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (u BigUint) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *BigUint) UnmarshalText(text []byte) error {
	v, err := ParseUint(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// EncodeMsgpack stores i as its decimal string.
func (i BigInt) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(i.String())
}

// DecodeMsgpack reads a value written by EncodeMsgpack.
func (i *BigInt) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	v, err := ParseInt(s)
	if err != nil {
		return fmt.Errorf("msgpack: %w", err)
	}
	*i = v
	return nil
}

// EncodeMsgpack stores u as its decimal string.
func (u BigUint) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(u.String())
}

// DecodeMsgpack reads a value written by EncodeMsgpack.
func (u *BigUint) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	v, err := ParseUint(s)
	if err != nil {
		return fmt.Errorf("msgpack: %w", err)
	}
	*u = v
	return nil
}

package main

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
	obf "github.com/starfederation/obf-go"
)

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

type encodeCmd struct {
	ioFlags `embed:""`

	From string `help:"Input format." enum:"json,yaml,cbor" default:"json"`
	Zstd bool   `help:"Compress the output as a zstd frame."`
}

func (c *encodeCmd) Run() error {
	in, err := c.read()
	if err != nil {
		return err
	}
	out, err := encodeInput(in, c.From, c.Zstd)
	if err != nil {
		return err
	}
	return c.write(out)
}

type decodeCmd struct {
	ioFlags `embed:""`

	To string `help:"Output format." enum:"json,cbor" default:"json"`
}

func (c *decodeCmd) Run() error {
	in, err := c.read()
	if err != nil {
		return err
	}
	out, err := decodeInput(in, c.To)
	if err != nil {
		return err
	}
	return c.write(out)
}

type dumpCmd struct {
	ioFlags `embed:""`
}

func (c *dumpCmd) Run() error {
	in, err := c.read()
	if err != nil {
		return err
	}
	v, err := readValue(in)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := obf.Dump(&buf, v); err != nil {
		return err
	}
	return c.write(buf.Bytes())
}

type hashCmd struct {
	ioFlags `embed:""`
}

func (c *hashCmd) Run() error {
	in, err := c.read()
	if err != nil {
		return err
	}
	v, err := readValue(in)
	if err != nil {
		return err
	}
	return c.write([]byte(fingerprintHex(v) + "\n"))
}

func encodeInput(in []byte, from string, compress bool) ([]byte, error) {
	var (
		v   obf.Value
		err error
	)
	switch from {
	case "json":
		v, err = obf.FromJSON(in)
	case "yaml":
		v, err = obf.FromYAML(in)
	case "cbor":
		v, err = obf.FromCBOR(in)
	default:
		return nil, fmt.Errorf("unknown input format %q", from)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", from, err)
	}
	out := obf.Encode(v)
	if !compress {
		return out, nil
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(out, nil), nil
}

func decodeInput(in []byte, to string) ([]byte, error) {
	v, err := readValue(in)
	if err != nil {
		return nil, err
	}
	switch to {
	case "json":
		return []byte(obf.ToJSON(v) + "\n"), nil
	case "cbor":
		return obf.ToCBOR(v)
	default:
		return nil, fmt.Errorf("unknown output format %q", to)
	}
}

// readValue decodes in, unwrapping a zstd frame first when present.
func readValue(in []byte) (obf.Value, error) {
	if bytes.HasPrefix(in, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return obf.Value{}, err
		}
		defer dec.Close()
		in, err = dec.DecodeAll(in, nil)
		if err != nil {
			return obf.Value{}, fmt.Errorf("zstd: %w", err)
		}
	}
	return obf.DecodeAll(in)
}

func fingerprintHex(v obf.Value) string {
	return fmt.Sprintf("%016x", obf.Fingerprint(v))
}

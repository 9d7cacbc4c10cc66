package obf

// MarshalBinary implements encoding.BinaryMarshaler.
func (v Value) MarshalBinary() ([]byte, error) {
	return Encode(v), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The whole of data
// must be a single encoded Value.
func (v *Value) UnmarshalBinary(data []byte) error {
	out, err := DecodeAll(data)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

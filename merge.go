package obf

// MergePatch applies merge-patch semantics (RFC 7386, extended to Objects) and
// returns the merged tree. Neither argument is modified.
//
// A Dictionary patch is merged key by key into a Dictionary target; a None
// entry in the patch deletes the key. Object patches merge the same way into
// Object targets. A target of another type is replaced by an empty container
// first. Any other patch replaces the target outright.
func MergePatch(target, patch Value) Value {
	switch patch.typ {
	case TypeDictionary:
		out := target.Clone()
		if out.typ != TypeDictionary {
			out = NewDictionary()
		}
		for k, p := range patch.dict {
			if p.typ == TypeNone {
				delete(out.dict, k)
				continue
			}
			var base Value
			if cur, ok := out.dict[k]; ok {
				base = *cur
			}
			merged := MergePatch(base, *p)
			out.dict[k] = &merged
		}
		return out
	case TypeObject:
		out := target.Clone()
		if out.typ != TypeObject {
			out = NewObject()
		}
		for k, p := range patch.obj {
			if p.typ == TypeNone {
				delete(out.obj, k)
				continue
			}
			var base Value
			if cur, ok := out.obj[k]; ok {
				base = *cur
			}
			merged := MergePatch(base, *p)
			out.obj[k] = &merged
		}
		return out
	default:
		return patch.Clone()
	}
}

// MergeBinary applies an encoded patch to an encoded target and returns the
// encoded result.
func MergeBinary(target, patch []byte) ([]byte, error) {
	t, err := DecodeAll(target)
	if err != nil {
		return nil, err
	}
	p, err := DecodeAll(patch)
	if err != nil {
		return nil, err
	}
	return Encode(MergePatch(t, p)), nil
}

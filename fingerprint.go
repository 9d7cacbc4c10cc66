package obf

import (
	"github.com/delaneyj/toolbelt/bytebufferpool"
	"github.com/zeebo/xxh3"
)

// Fingerprint returns the xxh3 hash of the encoding of v. Container entries
// are encoded in key order, so equal trees always share a fingerprint.
func Fingerprint(v Value) uint64 {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	encodeValueToBuffer(buf, v)
	return xxh3.Hash(buf.Bytes())
}

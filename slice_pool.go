package obf

import "github.com/delaneyj/toolbelt"

var (
	objectKeyPool = toolbelt.New(func() []uint32 { return make([]uint32, 0, 16) })
	dictKeyPool   = toolbelt.New(func() []string { return make([]string, 0, 16) })
)

func getObjectKeys(n int) []uint32 {
	s := objectKeyPool.Get()
	if cap(s) < n {
		return make([]uint32, 0, n)
	}
	return s[:0]
}

func putObjectKeys(s []uint32) {
	if s == nil {
		return
	}
	objectKeyPool.Put(s[:0])
}

func getDictKeys(n int) []string {
	s := dictKeyPool.Get()
	if cap(s) < n {
		return make([]string, 0, n)
	}
	return s[:0]
}

func putDictKeys(s []string) {
	if s == nil {
		return
	}
	clear(s)
	dictKeyPool.Put(s[:0])
}

package memtrack

import "unsafe"

func unsafeString(bytes []byte) string {
	return unsafe.String(&bytes[0], len(bytes))
}

// File: vectored/buffers.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package vectored

import (
	"unsafe"

	"github.com/momentics/fdextra/api"
)

// Buffers converts loosely typed values into a vector list. []byte values
// are used as is and strings are viewed without copying; the writer never
// modifies either. Any other element type is an invalid-argument error.
func Buffers(values ...any) ([][]byte, error) {
	out := make([][]byte, len(values))
	for i, v := range values {
		switch b := v.(type) {
		case []byte:
			out[i] = b
		case string:
			out[i] = unsafe.Slice(unsafe.StringData(b), len(b))
		default:
			return nil, api.InvalidArgument("write_vectored", "element %d: unsupported type %T", i, v)
		}
	}
	return out, nil
}

//go:build darwin

// File: advisory/primitive_nocache.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package advisory

import "golang.org/x/sys/unix"

// nocache sets F_NOCACHE, which has no read-back.
type nocache struct{}

func platformPrimitive() primitive { return nocache{} }

func (nocache) name() string    { return "F_NOCACHE" }
func (nocache) queryable() bool { return false }

func (nocache) get(int) (bool, error) { return false, nil }

func (nocache) set(fd int, on bool) error {
	arg := 0
	if on {
		arg = 1
	}
	_, err := unix.FcntlInt(uintptr(fd), unix.F_NOCACHE, arg)
	return err
}

//go:build linux || freebsd

// File: advisory/primitive_odirect.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package advisory

import "golang.org/x/sys/unix"

// odirect toggles O_DIRECT through F_GETFL/F_SETFL.
type odirect struct{}

func platformPrimitive() primitive { return odirect{} }

func (odirect) name() string    { return "O_DIRECT" }
func (odirect) queryable() bool { return true }

func (odirect) get(fd int) (bool, error) {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return false, err
	}
	return flags&unix.O_DIRECT != 0, nil
}

func (odirect) set(fd int, on bool) error {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return err
	}
	if on {
		flags |= unix.O_DIRECT
	} else {
		flags &^= unix.O_DIRECT
	}
	_, err = unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags)
	return err
}

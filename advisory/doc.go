// File: advisory/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package advisory tracks the "uncached I/O" advice applied to descriptors.
//
// On Linux and FreeBSD the advice is the O_DIRECT status flag, which the
// kernel reports back, so Get always reflects the descriptor's real state.
// On Darwin it is F_NOCACHE, which cannot be read back; Get returns the last
// value set through the tracker for that descriptor. Other platforms have no
// such primitive and this package exports nothing there.
//
// Advice is keyed by descriptor number. A descriptor produced by dup starts
// without advice in the tracker. Hosts should call Forget when they close a
// descriptor; in addition, an entry whose file identity no longer matches the
// descriptor is discarded on the next Get.
package advisory

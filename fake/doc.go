// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake implementations of the syscall-level collaborators for testing.
// Provides predictable, controllable behavior without touching the OS
// descriptor table.
package fake

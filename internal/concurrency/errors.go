// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error definitions for concurrency module.

package concurrency

import "github.com/momentics/fdextra/api"

var (
	// ErrRegionClosed indicates the region has been shut down.
	ErrRegionClosed = api.ErrRegionClosed
)

// File: lifecycle/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package lifecycle implements bulk descriptor operations that respect the
// host's reserved descriptors: closing every descriptor from a threshold up
// and walking the open descriptors with a visitor.
package lifecycle

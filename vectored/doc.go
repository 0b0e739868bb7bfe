// File: vectored/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package vectored writes a list of buffers to a descriptor with writev(2),
// looping over short writes, EINTR and EAGAIN until every byte is accepted or
// a hard error occurs. Bytes are written in list order and never duplicated;
// the caller's buffers are never copied or modified.
package vectored

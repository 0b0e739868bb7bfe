package vectored

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvance(t *testing.T) {
	views := [][]byte{[]byte("ab"), {}, []byte("cde"), []byte("f")}

	got := advance(append([][]byte(nil), views...), 0)
	assert.Len(t, got, 4)

	got = advance(append([][]byte(nil), views...), 2)
	assert.Equal(t, [][]byte{[]byte("cde"), []byte("f")}, got)

	got = advance(append([][]byte(nil), views...), 3)
	assert.Equal(t, [][]byte{[]byte("de"), []byte("f")}, got)

	got = advance(append([][]byte(nil), views...), 6)
	assert.Empty(t, got)

	got = advance([][]byte{{}, {}, []byte("x")}, 0)
	assert.Equal(t, [][]byte{[]byte("x")}, got)
}

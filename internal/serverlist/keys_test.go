package serverlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys_Example(t *testing.T) {
	dir := mustDecode(t, exampleList)
	assert.Equal(t, []string{"address", "mods", "name", "port"}, Keys(dir))
}

func TestKeys_UnionWithoutDuplicates(t *testing.T) {
	dir := mustDecode(t, `{"list": [
		{"b": 1, "a": 2},
		{"c": 3, "a": 4},
		{},
		{"B": 5}
	]}`)
	// Byte order: upper case sorts before lower case.
	assert.Equal(t, []string{"B", "a", "b", "c"}, Keys(dir))
}

func TestKeys_Empty(t *testing.T) {
	assert.Empty(t, Keys(Directory{}))
	assert.Empty(t, Keys(nil))
}

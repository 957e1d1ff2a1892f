package serverlist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const exampleList = `{"list": [
	{"address": "1.2.3.4", "port": 30000, "name": "Foo", "mods": ["a", "b"]},
	{"address": "5.6.7.8", "port": 30001, "name": "Bar"}
]}`

// mustDecode decodes body with the default list field or fails the test.
func mustDecode(t *testing.T, body string) Directory {
	t.Helper()
	dir, err := Decode([]byte(body), DefaultListField)
	require.NoError(t, err)
	return dir
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWellFormedLines(t *testing.T) {
	blob := "hash:a1,parents:b2 c3,branch:main,msg:fix: bug,cdate:100,adate:90,author:Ada,email:ada@example.com\n" +
		"hash:b2,parents:,branch:main,msg:root,cdate:50,adate:50,author:Bo,email:bo@example.com\n"

	entries, malformed := Parse(blob)
	require.Equal(t, 0, malformed)
	require.Len(t, entries, 2)

	assert.Equal(t, "a1", entries[0].Hash)
	assert.Equal(t, []string{"b2", "c3"}, entries[0].Parents)
	assert.Equal(t, "main", entries[0].Branch)
	assert.Equal(t, "fix: bug", entries[0].Message)
	assert.Equal(t, "Ada", entries[0].Author.Name)
	assert.Equal(t, "ada@example.com", entries[0].Author.Email)

	assert.Empty(t, entries[1].Parents)
}

func TestParseSkipsMalformedLines(t *testing.T) {
	blob := "not a valid line\n" +
		"hash:,parents:b2,branch:main,msg:missing hash,cdate:1,adate:1,author:X,email:x@x.com\n" +
		"hash:ok1,parents:,branch:main,msg:fine,cdate:1,adate:1,author:X,email:x@x.com\n"

	entries, malformed := Parse(blob)
	assert.Equal(t, 2, malformed)
	require.Len(t, entries, 1)
	assert.Equal(t, "ok1", entries[0].Hash)
}

func TestParseEmptyBlob(t *testing.T) {
	entries, malformed := Parse("")
	assert.Empty(t, entries)
	assert.Equal(t, 0, malformed)
}

func TestParseIgnoresBlankLines(t *testing.T) {
	blob := "\n\nhash:a1,parents:,branch:main,msg:m,cdate:1,adate:1,author:A,email:a@a.com\n\n"
	entries, malformed := Parse(blob)
	assert.Equal(t, 0, malformed)
	require.Len(t, entries, 1)
}

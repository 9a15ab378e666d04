package listfile

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/djcass44/debcat/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(t *testing.T, p string) catalog.Entry {
	e, err := catalog.NewEntry(p)
	require.NoError(t, err)
	return e
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []catalog.Entry{
		entry(t, "main/f/foo/foo_1.0.deb").WithSize(12345),
		entry(t, "main/b/bar/bar_1.deb"),
	})
	require.NoError(t, err)

	expected := `DictBegin
Type/String,type,RepoFileSpec
Type/String,theDir,main/f/foo
Type/String,fileNameMinusPath,foo_1.0.deb
Type/Int64,fileSize,12345
DictEnd
DictBegin
Type/String,type,RepoFileSpec
Type/String,theDir,main/b/bar
Type/String,fileNameMinusPath,bar_1.deb
DictEnd
`
	assert.EqualValues(t, expected, buf.String())
}

func TestRoundTrip(t *testing.T) {
	c := catalog.Sort([]catalog.Entry{
		entry(t, "main/z/zed/zed.deb"),
		entry(t, "main/a/apt/apt_1.deb").WithSize(1),
		entry(t, "contrib/c/c/c.deb").WithSize(0),
	})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, c))

	out, err := Read(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, c, catalog.Sort(out))
}

func TestRead(t *testing.T) {
	t.Run("fields in any order with blank lines", func(t *testing.T) {
		in := "\nDictBegin\nType/String,type,RepoFileSpec\nType/Int64,fileSize,7\nType/String,fileNameMinusPath,a.deb\n\nType/String,theDir,main/a\nDictEnd\n\n"
		out, err := Read(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.EqualValues(t, "main/a", out[0].Directory())
		assert.EqualValues(t, "a.deb", out[0].FileName())
		size, ok := out[0].Size()
		assert.True(t, ok)
		assert.EqualValues(t, 7, size)
	})
	t.Run("file order is kept", func(t *testing.T) {
		in := "DictBegin\nType/String,type,RepoFileSpec\nType/String,theDir,main/b\nType/String,fileNameMinusPath,b.deb\nDictEnd\n" +
			"DictBegin\nType/String,type,RepoFileSpec\nType/String,theDir,main/a\nType/String,fileNameMinusPath,a.deb\nDictEnd\n"
		out, err := Read(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.EqualValues(t, "main/b", out[0].Directory())
		assert.EqualValues(t, "main/a", out[1].Directory())
	})
	t.Run("empty file", func(t *testing.T) {
		out, err := Read(strings.NewReader(""))
		assert.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestRead_Errors(t *testing.T) {
	var cases = []struct {
		name string
		in   string
		line int
		err  error
	}{
		{"missing file name", "DictBegin\nType/String,type,RepoFileSpec\nType/String,theDir,main/a\nDictEnd\n", 4, ErrIncompleteRecord},
		{"missing dir", "DictBegin\nType/String,type,RepoFileSpec\nType/String,fileNameMinusPath,a.deb\nDictEnd\n", 4, ErrIncompleteRecord},
		{"dir twice", "DictBegin\nType/String,type,RepoFileSpec\nType/String,theDir,a\nType/String,theDir,b\n", 4, ErrFieldSetTwice},
		{"size twice", "DictBegin\nType/String,type,RepoFileSpec\nType/Int64,fileSize,1\nType/Int64,fileSize,1\n", 4, ErrFieldSetTwice},
		{"negative size", "DictBegin\nType/String,type,RepoFileSpec\nType/Int64,fileSize,-1\n", 3, ErrUnrecognisedLine},
		{"size with string tag", "DictBegin\nType/String,type,RepoFileSpec\nType/String,fileSize,1\n", 3, ErrUnrecognisedLine},
		{"dir with int tag", "DictBegin\nType/String,type,RepoFileSpec\nType/Int64,theDir,a\n", 3, ErrUnrecognisedLine},
		{"unknown field", "DictBegin\nType/String,type,RepoFileSpec\nType/String,colour,red\n", 3, ErrUnrecognisedLine},
		{"unknown tag", "DictBegin\nType/String,type,RepoFileSpec\nType/Bool,theDir,a\n", 3, ErrUnrecognisedLine},
		{"type not first", "DictBegin\nType/String,theDir,main/a\n", 2, ErrUnrecognisedLine},
		{"wrong type", "DictBegin\nType/String,type,Other\n", 2, ErrUnrecognisedLine},
		{"value with comma", "DictBegin\nType/String,type,RepoFileSpec\nType/String,theDir,a,b\n", 3, ErrUnrecognisedLine},
		{"no dict begin", "Type/String,type,RepoFileSpec\n", 1, ErrUnrecognisedLine},
		{"nested dict begin", "DictBegin\nDictBegin\n", 2, ErrUnrecognisedLine},
		{"empty dict", "DictBegin\nDictEnd\n", 2, ErrUnrecognisedLine},
		{"empty dir", "DictBegin\nType/String,type,RepoFileSpec\nType/String,theDir,\nType/String,fileNameMinusPath,a.deb\nDictEnd\n", 5, catalog.ErrInvalidPath},
		{"truncated", "DictBegin\nType/String,type,RepoFileSpec\n", 2, ErrIncompleteRecord},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Read(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, tt.err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.EqualValues(t, tt.line, perr.Line)
		})
	}
}

func TestWrite_InvalidValues(t *testing.T) {
	var cases = []struct {
		name string
		dir  string
		file string
	}{
		{"comma in file name", "main/f/foo", "foo,1.deb"},
		{"comma in dir", "main/f/foo,bar", "foo.deb"},
		{"newline in file name", "main/f/foo", "foo\n.deb"},
		{"carriage return in dir", "main/f/foo\r", "foo.deb"},
		{"leading space in file name", "main/f/foo", " foo.deb"},
		{"trailing space in file name", "main/f/foo", "foo.deb "},
		{"leading space in dir", " main/f/foo", "foo.deb"},
		{"tab in dir", "main/f/foo\t", "foo.deb"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			e, err := catalog.NewEntryFrom(tt.dir, tt.file)
			require.NoError(t, err)

			var buf bytes.Buffer
			err = Write(&buf, []catalog.Entry{entry(t, "main/a/a.deb"), e})
			assert.ErrorIs(t, err, ErrInvalidValue)
			assert.Empty(t, buf.String())
		})
	}
	t.Run("inner spaces are kept", func(t *testing.T) {
		e := entry(t, "main/f/foo bar/foo 1.deb")
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, []catalog.Entry{e}))
		out, err := Read(&buf)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.EqualValues(t, e, out[0])
	})
}

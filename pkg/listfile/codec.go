package listfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/djcass44/debcat/pkg/catalog"
	"github.com/djcass44/debcat/pkg/strutil"
)

const (
	lineDictBegin = "DictBegin"
	lineDictEnd   = "DictEnd"

	TypeString = "Type/String"
	TypeInt64  = "Type/Int64"

	fieldType     = "type"
	fieldDir      = "theDir"
	fieldFileName = "fileNameMinusPath"
	fieldFileSize = "fileSize"

	recordType = "RepoFileSpec"
)

var (
	ErrUnrecognisedLine = errors.New("line not recognized")
	ErrFieldSetTwice    = errors.New("dict property set twice")
	ErrIncompleteRecord = errors.New("dict not valid")
	ErrInvalidValue     = errors.New("value cannot be stored")
)

// ParseError describes a fatal problem at a given line of a catalog
// file.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Write serialises entries in the order given. Entries whose directory
// or file name would not read back unchanged are refused before
// anything is written.
func Write(w io.Writer, entries []catalog.Entry) error {
	for _, e := range entries {
		if err := checkValue(e.Directory()); err != nil {
			return err
		}
		if err := checkValue(e.FileName()); err != nil {
			return err
		}
	}
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		writeLine(bw, lineDictBegin)
		writeField(bw, TypeString, fieldType, recordType)
		writeField(bw, TypeString, fieldDir, e.Directory())
		writeField(bw, TypeString, fieldFileName, e.FileName())
		if size, ok := e.Size(); ok {
			writeField(bw, TypeInt64, fieldFileSize, strconv.FormatInt(size, 10))
		}
		writeLine(bw, lineDictEnd)
	}
	return bw.Flush()
}

// checkValue rejects values that Read would split or trim.
func checkValue(s string) error {
	if strings.ContainsAny(s, ",\n\r") || strings.TrimSpace(s) != s {
		return fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	return nil
}

func writeLine(w *bufio.Writer, s string) {
	_, _ = w.WriteString(s)
	_ = w.WriteByte('\n')
}

func writeField(w *bufio.Writer, tag, name, value string) {
	writeLine(w, tag+","+name+","+value)
}

// record accumulates the fields of a single DictBegin/DictEnd block.
type record struct {
	dir, name   *string
	size        *int64
	haveTypeTag bool
}

func (r *record) set(tag, name, value string) error {
	switch name {
	case fieldDir, fieldFileName:
		if tag != TypeString {
			return ErrUnrecognisedLine
		}
		target := &r.dir
		if name == fieldFileName {
			target = &r.name
		}
		if *target != nil {
			return ErrFieldSetTwice
		}
		*target = &value
	case fieldFileSize:
		if tag != TypeInt64 {
			return ErrUnrecognisedLine
		}
		if r.size != nil {
			return ErrFieldSetTwice
		}
		size, err := strconv.ParseUint(value, 10, 63)
		if err != nil {
			return ErrUnrecognisedLine
		}
		s := int64(size)
		r.size = &s
	default:
		return ErrUnrecognisedLine
	}
	return nil
}

func (r *record) entry() (catalog.Entry, error) {
	if r.dir == nil || r.name == nil {
		return catalog.Entry{}, ErrIncompleteRecord
	}
	e, err := catalog.NewEntryFrom(*r.dir, *r.name)
	if err != nil {
		return catalog.Entry{}, err
	}
	if r.size != nil {
		e = e.WithSize(*r.size)
	}
	return e, nil
}

// Read parses a catalog file. Entries are returned in file order and
// are neither sorted nor de-duplicated.
func Read(r io.Reader) ([]catalog.Entry, error) {
	sc := bufio.NewScanner(r)
	var (
		out    []catalog.Entry
		rec    *record
		lineNo int
	)
	fail := func(line string, err error) error {
		return &ParseError{Line: lineNo, Text: line, Err: err}
	}
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		switch {
		case rec == nil:
			if line != lineDictBegin {
				return nil, fail(line, ErrUnrecognisedLine)
			}
			rec = &record{}
		case line == lineDictEnd:
			if !rec.haveTypeTag {
				return nil, fail(line, ErrUnrecognisedLine)
			}
			e, err := rec.entry()
			if err != nil {
				return nil, fail(line, err)
			}
			out = append(out, e)
			rec = nil
		default:
			// <tag>,<field>,<value>
			if strutil.Count(line, ',') != 2 {
				return nil, fail(line, ErrUnrecognisedLine)
			}
			tag, _ := strutil.Field(line, 0, ',')
			name, _ := strutil.Field(line, 1, ',')
			value, _ := strutil.Field(line, 2, ',')

			if !rec.haveTypeTag {
				// the type must always be the first field
				if tag != TypeString || name != fieldType || value != recordType {
					return nil, fail(line, ErrUnrecognisedLine)
				}
				rec.haveTypeTag = true
				continue
			}
			if err := rec.set(tag, name, value); err != nil {
				return nil, fail(line, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", lineNo+1, err)
	}
	if rec != nil {
		return nil, fail("", ErrIncompleteRecord)
	}
	return out, nil
}

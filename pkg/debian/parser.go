package debian

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/djcass44/debcat/pkg/catalog"
	"github.com/djcass44/debcat/pkg/strutil"
	"github.com/go-logr/logr"
)

var (
	ErrUnexpectedLine = errors.New("unexpected line")
	ErrFieldSetTwice  = errors.New("property set twice")
	ErrMalformedField = errors.New("property malformed")
)

// ParseError describes a fatal problem at a given line of a listing.
type ParseError struct {
	Line  int
	Text  string
	Label string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("line %d: %v: %s: %q", e.Line, e.Err, e.Label, e.Text)
	}
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

const packagePrefix = "Package: "

// maxLineSize bounds a single line; long Description blocks are
// split over continuation lines so this is generous.
const maxLineSize = 16 * 1024 * 1024

type state int

const (
	betweenStanzas state = iota
	inStanza
)

type fieldHandler func(pkg *PackageRecord, value string) error

// fieldHandlers are the only labels that are understood. Any other
// label is accepted and ignored.
var fieldHandlers = map[string]fieldHandler{
	"Filename": func(pkg *PackageRecord, value string) error {
		if pkg.FullPath != "" {
			return ErrFieldSetTwice
		}
		pkg.FullPath = value
		return nil
	},
	"Directory": func(pkg *PackageRecord, value string) error {
		if pkg.Directory != "" {
			return ErrFieldSetTwice
		}
		pkg.Directory = value
		return nil
	},
	"Size": func(pkg *PackageRecord, value string) error {
		if pkg.Size != nil {
			return ErrFieldSetTwice
		}
		size, err := strconv.ParseUint(value, 10, 63)
		if err != nil {
			return ErrMalformedField
		}
		s := int64(size)
		pkg.Size = &s
		return nil
	},
	"Files": func(pkg *PackageRecord, value string) error {
		// checksum size filename
		fields, ok := strutil.SplitN(value, ' ', 3)
		if !ok || fields[2] == "" {
			return ErrMalformedField
		}
		size, err := strconv.ParseUint(fields[1], 10, 63)
		if err != nil {
			return ErrMalformedField
		}
		pkg.Files = append(pkg.Files, catalog.File{
			Name: fields[2],
			Size: int64(size),
		})
		return nil
	},
}

// Parser reads PackageRecords from a Debian control file listing, one
// stanza at a time.
type Parser struct {
	sc    *bufio.Scanner
	line  int
	state state
	label string
	pkg   *PackageRecord
	err   error
}

func NewParser(r io.Reader) *Parser {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Parser{sc: sc}
}

// Next returns the next record. It returns io.EOF once the listing is
// exhausted. Any other error is fatal and is returned by every
// subsequent call.
func (p *Parser) Next() (*PackageRecord, error) {
	if p.err != nil {
		return nil, p.err
	}
	pkg, err := p.next()
	if err != nil {
		p.err = err
	}
	return pkg, err
}

func (p *Parser) next() (*PackageRecord, error) {
	for p.sc.Scan() {
		p.line++
		line := strings.TrimSuffix(p.sc.Text(), "\r")

		switch p.state {
		case betweenStanzas:
			if line == "" {
				continue
			}
			if !strings.HasPrefix(line, packagePrefix) {
				return nil, &ParseError{Line: p.line, Text: line, Err: ErrUnexpectedLine}
			}
			p.pkg = &PackageRecord{Name: strings.TrimSpace(line[len(packagePrefix):])}
			p.label = ""
			p.state = inStanza
		case inStanza:
			if line == "" {
				return p.closeStanza(), nil
			}
			if err := p.parseLine(line); err != nil {
				return nil, err
			}
		}
	}
	if err := p.sc.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", p.line+1, err)
	}
	if p.state == inStanza {
		return p.closeStanza(), nil
	}
	return nil, io.EOF
}

func (p *Parser) closeStanza() *PackageRecord {
	pkg := p.pkg
	p.pkg = nil
	p.label = ""
	p.state = betweenStanzas
	return pkg
}

// parseLine handles a non-blank line inside a stanza. The line is
// either a continuation of the current field or a new "Label: value"
// field.
func (p *Parser) parseLine(line string) error {
	if line[0] == ' ' {
		if p.label == "" {
			return &ParseError{Line: p.line, Text: line, Err: ErrUnexpectedLine}
		}
		return p.dispatch(line, strings.TrimSpace(line[1:]))
	}

	end := 0
	for end < len(line) && isLabelChar(line[end]) {
		end++
	}
	if end == 0 || end >= len(line) || line[end] != ':' {
		return &ParseError{Line: p.line, Text: line, Err: ErrUnexpectedLine}
	}
	p.label = line[:end]
	value := strings.TrimSpace(line[end+1:])
	if value == "" {
		// the value starts on the following continuation lines
		return nil
	}
	return p.dispatch(line, value)
}

func (p *Parser) dispatch(line, value string) error {
	fn, ok := fieldHandlers[p.label]
	if !ok {
		return nil
	}
	if err := fn(p.pkg, value); err != nil {
		return &ParseError{Line: p.line, Text: line, Label: p.label, Err: err}
	}
	return nil
}

func isLabelChar(c byte) bool {
	return c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c >= '0' && c <= '9' ||
		c == '-'
}

// Parse reads every record from a listing.
func Parse(ctx context.Context, r io.Reader) ([]*PackageRecord, error) {
	log := logr.FromContextOrDiscard(ctx)

	p := NewParser(r)
	var out []*PackageRecord
	for {
		pkg, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		log.V(6).Info("parsed package", "name", pkg.Name, "line", p.line)
		out = append(out, pkg)
		if len(out)%1000 == 0 {
			log.V(2).Info("loading package list", "count", len(out), "line", p.line)
		}
	}
	log.V(1).Info("successfully parsed package list", "count", len(out), "lines", p.line)
	return out, nil
}

package netfile

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser parses design files.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser builds a design-format parser.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(designLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("netfile: build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse reads a design from r.
func (p *Parser) Parse(r io.Reader) (*File, error) {
	f, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("netfile: %w", err)
	}

	return f, nil
}

// ParseString parses a design held in a string.
func (p *Parser) ParseString(input string) (*File, error) {
	f, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("netfile: %w", err)
	}

	return f, nil
}

// ParseFile parses a design from a file path.
func (p *Parser) ParseFile(filename string) (*File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("netfile: open: %w", err)
	}
	defer f.Close()

	return p.Parse(f)
}

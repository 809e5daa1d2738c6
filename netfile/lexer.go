package netfile

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// designLexer tokenizes the design format: identifiers, integers, and the
// few punctuation marks the grammar needs. Keywords are matched as literal
// identifier values by the grammar.
var designLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	{Name: "Arrow", Pattern: `->`},
	{Name: "Dot", Pattern: `\.`},

	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
})

package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"
	NEWLINE = "NEWLINE"

	// Literals
	NUMBER = "NUMBER"
	IDENT  = "IDENT"

	// Operators
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	CARET    = "^"
	ASSIGN   = "="

	// Delimiters
	LPAREN    = "("
	RPAREN    = ")"
	SEMICOLON = ";"
)

type Token struct {
	Type    TokenType
	Lexeme  string // raw text as it appeared in the source
	Literal string
	Line    int
	Column  int
}

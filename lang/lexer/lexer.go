// Package lexer scans lumen source text into a token stream. It is an
// external collaborator of the compiler: the compiler consumes whatever
// ordered, EOF-terminated token sequence a Lexer (or anything else with
// the same shape) produces.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lumen-lang/lumen/lang/token"
)

// A Lexer scans a single source buffer into tokens, one at a time.
type Lexer struct {
	src        string
	start      int // start of the current lexeme
	pos        int // current scan position
	line, col  int
	startLine  int
	startCol   int
	hadError   bool
	errHandler func(line, col int, msg string)
}

// New returns a Lexer ready to scan src. If errHandler is nil, scan errors
// are silently turned into ILLEGAL tokens.
func New(src string, errHandler func(line, col int, msg string)) *Lexer {
	return &Lexer{src: src, line: 1, col: 1, errHandler: errHandler}
}

// HadError reports whether any scan error was reported during scanning.
func (l *Lexer) HadError() bool { return l.hadError }

// ScanAll scans the full source into a token slice terminated by an EOF
// token. It never returns early: a scan error produces an ILLEGAL token
// and scanning continues, matching the contract that the compiler always
// receives a finite, EOF-terminated sequence.
func ScanAll(src string, errHandler func(line, col int, msg string)) []token.Token {
	l := New(src, errHandler)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next scans and returns the next token.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndComments()
	l.start = l.pos
	l.startLine, l.startCol = l.line, l.col

	if l.atEnd() {
		return l.make(token.EOF)
	}

	c := l.advance()

	switch {
	case isAlpha(c) && c != '_':
		return l.identifier()
	case isDigit(c):
		return l.number()
	}

	switch c {
	case '(':
		return l.make(token.LPAREN)
	case ')':
		return l.make(token.RPAREN)
	case '{':
		return l.make(token.LBRACE)
	case '}':
		return l.make(token.RBRACE)
	case ',':
		return l.make(token.COMMA)
	case '.':
		return l.make(token.DOT)
	case ';':
		return l.make(token.SEMICOLON)
	case '*':
		return l.make(token.STAR)
	case ':':
		return l.make(token.COLON)
	case '+':
		if l.matchAdvance('+') {
			return l.make(token.PLUS_PLUS)
		}
		return l.make(token.PLUS)
	case '-':
		if l.matchAdvance('-') {
			return l.make(token.MINUS_MINUS)
		}
		if l.matchAdvance('>') {
			return l.make(token.ARROW)
		}
		return l.make(token.MINUS)
	case '/':
		return l.make(token.SLASH)
	case '!':
		if l.matchAdvance('=') {
			return l.make(token.BANG_EQ)
		}
		return l.make(token.BANG)
	case '=':
		if l.matchAdvance('=') {
			return l.make(token.EQ_EQ)
		}
		return l.make(token.EQ)
	case '<':
		if l.matchAdvance('=') {
			return l.make(token.LT_EQ)
		}
		return l.make(token.LT)
	case '>':
		if l.matchAdvance('=') {
			return l.make(token.GT_EQ)
		}
		return l.make(token.GT)
	case '"', '\'':
		return l.string(c)
	case '_':
		if !isAlphaNumeric(l.peek()) {
			return l.make(token.UNDERSCORE)
		}
		return l.identifier()
	}

	l.errorf("unexpected character %q", c)
	return l.make(token.ILLEGAL)
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) matchAdvance(want byte) bool {
	if l.atEnd() || l.src[l.pos] != want {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		switch c := l.peek(); c {
		case ' ', '\r', '\t', '\n':
			l.advance()
		case '/':
			if l.peekAt(1) == '/' {
				for !l.atEnd() && l.peek() != '\n' {
					l.advance()
				}
			} else if l.peekAt(1) == '*' {
				l.advance()
				l.advance()
				for !l.atEnd() && !(l.peek() == '*' && l.peekAt(1) == '/') {
					l.advance()
				}
				if !l.atEnd() {
					l.advance()
					l.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) identifier() token.Token {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	text := l.src[l.start:l.pos]
	if kind, ok := token.Keywords[text]; ok {
		return l.make(kind)
	}
	return l.make(token.IDENT)
}

func (l *Lexer) number() token.Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	return l.make(token.NUMBER)
}

func (l *Lexer) string(quote byte) token.Token {
	var sb strings.Builder
	for !l.atEnd() && l.peek() != quote {
		c := l.advance()
		if c == '\\' && !l.atEnd() {
			esc := l.advance()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case '\'':
				sb.WriteByte('\'')
			default:
				sb.WriteByte(esc)
			}
			continue
		}
		sb.WriteByte(c)
	}
	if l.atEnd() {
		l.errorf("unterminated string")
		return l.make(token.ILLEGAL)
	}
	l.advance() // closing quote
	tok := l.make(token.STRING)
	tok.Lexeme = sb.String()
	return tok
}

func (l *Lexer) make(kind token.Kind) token.Token {
	lexeme := l.src[l.start:l.pos]
	return token.Token{Kind: kind, Lexeme: lexeme, Line: l.startLine, Col: l.startCol}
}

func (l *Lexer) errorf(format string, args ...any) {
	l.hadError = true
	if l.errHandler != nil {
		l.errHandler(l.startLine, l.startCol, fmt.Sprintf(format, args...))
	}
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

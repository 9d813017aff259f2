package lexer_test

import (
	"testing"

	"github.com/lumen-lang/lumen/lang/lexer"
	"github.com/lumen-lang/lumen/lang/token"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestScanAllBasic(t *testing.T) {
	toks := lexer.ScanAll(`let x = 10; x = x + 5;`, nil)
	require.Equal(t, []token.Kind{
		token.LET, token.IDENT, token.EQ, token.NUMBER, token.SEMICOLON,
		token.IDENT, token.EQ, token.IDENT, token.PLUS, token.NUMBER, token.SEMICOLON,
		token.EOF,
	}, kinds(toks))
}

func TestScanAllOperators(t *testing.T) {
	toks := lexer.ScanAll(`<= >= == != ++ -- -> _`, nil)
	require.Equal(t, []token.Kind{
		token.LT_EQ, token.GT_EQ, token.EQ_EQ, token.BANG_EQ,
		token.PLUS_PLUS, token.MINUS_MINUS, token.ARROW, token.UNDERSCORE, token.EOF,
	}, kinds(toks))
}

func TestScanStringEscapes(t *testing.T) {
	toks := lexer.ScanAll(`"a\nb"`, nil)
	require.Len(t, toks, 2)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, "a\nb", toks[0].Lexeme)
}

func TestScanSingleQuoteString(t *testing.T) {
	toks := lexer.ScanAll(`'hi'`, nil)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, "hi", toks[0].Lexeme)
}

func TestScanComments(t *testing.T) {
	toks := lexer.ScanAll("// line comment\n1 /* block\ncomment */ 2", nil)
	require.Equal(t, []token.Kind{token.NUMBER, token.NUMBER, token.EOF}, kinds(toks))
}

func TestScanUnterminatedStringReportsError(t *testing.T) {
	var msgs []string
	toks := lexer.ScanAll(`"abc`, func(line, col int, msg string) {
		msgs = append(msgs, msg)
	})
	require.Equal(t, token.ILLEGAL, toks[0].Kind)
	require.NotEmpty(t, msgs)
}

func TestScanLineAndColumn(t *testing.T) {
	toks := lexer.ScanAll("x\ny", nil)
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 1, toks[0].Col)
	require.Equal(t, 2, toks[1].Line)
	require.Equal(t, 1, toks[1].Col)
}

func TestScanKeywords(t *testing.T) {
	toks := lexer.ScanAll("fn let const if else while for return break continue print switch and or true false nil", nil)
	want := []token.Kind{
		token.FN, token.LET, token.CONST, token.IF, token.ELSE, token.WHILE, token.FOR,
		token.RETURN, token.BREAK, token.CONTINUE, token.PRINT, token.SWITCH,
		token.AND, token.OR, token.TRUE, token.FALSE, token.NIL, token.EOF,
	}
	require.Equal(t, want, kinds(toks))
}

package compiler

import "github.com/lumen-lang/lumen/lang/token"

// precedence orders binding strength for parsePrecedence, from loosest to
// tightest, per spec.md §4.3.2.
type precedence int8

const (
	precNone precedence = iota
	precAssignment
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)

// prefixFn tags which prefix parse routine a rule dispatches to. Recast
// from the pointer-to-member-function rule tables of some compilers into
// a plain enum so the rule table stays comparable data, per spec.md §9.
type prefixFn int8

const (
	prefixNone prefixFn = iota
	prefixGrouping
	prefixUnary
	prefixLiteral
	prefixNumber
	prefixString
	prefixVariable
	prefixIncDec
)

type infixFn int8

const (
	infixNone infixFn = iota
	infixBinary
	infixAnd
	infixOr
	infixCall
)

type postfixFn int8

const (
	postfixNone postfixFn = iota
	postfixIncDec
)

// rule is one row of the Pratt table: {prefix, infix, postfix, precedence}.
type rule struct {
	prefix  prefixFn
	infix   infixFn
	postfix postfixFn
	prec    precedence
}

var rules = map[token.Kind]rule{
	token.LPAREN:      {prefix: prefixGrouping, infix: infixCall, prec: precCall},
	token.MINUS:       {prefix: prefixUnary, infix: infixBinary, prec: precTerm},
	token.PLUS:        {infix: infixBinary, prec: precTerm},
	token.SLASH:       {infix: infixBinary, prec: precFactor},
	token.STAR:        {infix: infixBinary, prec: precFactor},
	token.NUMBER:      {prefix: prefixNumber},
	token.STRING:      {prefix: prefixString},
	token.TRUE:        {prefix: prefixLiteral},
	token.FALSE:       {prefix: prefixLiteral},
	token.NIL:         {prefix: prefixLiteral},
	token.BANG:        {prefix: prefixUnary},
	token.BANG_EQ:     {infix: infixBinary, prec: precEquality},
	token.EQ_EQ:       {infix: infixBinary, prec: precEquality},
	token.GT:          {infix: infixBinary, prec: precComparison},
	token.GT_EQ:       {infix: infixBinary, prec: precComparison},
	token.LT:          {infix: infixBinary, prec: precComparison},
	token.LT_EQ:       {infix: infixBinary, prec: precComparison},
	token.IDENT:       {prefix: prefixVariable},
	token.AND:         {infix: infixAnd, prec: precAnd},
	token.OR:          {infix: infixOr, prec: precOr},
	token.PLUS_PLUS:   {prefix: prefixIncDec, postfix: postfixIncDec, prec: precCall},
	token.MINUS_MINUS: {prefix: prefixIncDec, postfix: postfixIncDec, prec: precCall},
}

func precedenceOf(k token.Kind) precedence { return rules[k].prec }

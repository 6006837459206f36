package lexer

import (
	"testing"

	"github.com/kristofer/quest/pkg/token"
)

func TestNextToken_BasicPunctuation(t *testing.T) {
	input := `. : , -> ( ) [ ] { }`

	tests := []struct {
		kind    token.Kind
		literal string
	}{
		{token.DOT, "."},
		{token.COLON, ":"},
		{token.COMMA, ","},
		{token.ARROW, "->"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.LBRACKET, "["},
		{token.RBRACKET, "]"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%v, got=%v (%q)", i, tt.kind, tok.Kind, tok.Literal)
		}
		if tok.Literal != tt.literal {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.literal, tok.Literal)
		}
	}
}

func TestNextToken_Operators(t *testing.T) {
	input := `+ - * / % < > <= >= == != << >> & | ^ ~ ?: ? .. += -= *= /= %=`

	tests := []struct {
		kind    token.Kind
		literal string
	}{
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.STAR, "*"},
		{token.SLASH, "/"},
		{token.PERCENT, "%"},
		{token.LT, "<"},
		{token.GT, ">"},
		{token.LE, "<="},
		{token.GE, ">="},
		{token.EQ, "=="},
		{token.NEQ, "!="},
		{token.SHL, "<<"},
		{token.SHR, ">>"},
		{token.BITAND, "&"},
		{token.BITOR, "|"},
		{token.BITXOR, "^"},
		{token.BITNOT, "~"},
		{token.ELVIS, "?:"},
		{token.QUESTION, "?"},
		{token.CONCAT, ".."},
		{token.PLUS_ASSIGN, "+="},
		{token.MINUS_ASSIGN, "-="},
		{token.STAR_ASSIGN, "*="},
		{token.SLASH_ASSIGN, "/="},
		{token.PERCENT_ASSIGN, "%="},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%v, got=%v (%q)", i, tt.kind, tok.Kind, tok.Literal)
		}
		if tok.Literal != tt.literal {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.literal, tok.Literal)
		}
	}
}

func TestNextToken_Numbers(t *testing.T) {
	input := `42 3.14 0xFF 0b101 0o17 1_000_000 2.5e10 999999999999999999999999n`

	tests := []struct {
		kind    token.Kind
		literal string
	}{
		{token.INT, "42"},
		{token.FLOAT, "3.14"},
		{token.INT, "0xFF"},
		{token.INT, "0b101"},
		{token.INT, "0o17"},
		{token.INT, "1000000"},
		{token.FLOAT, "2.5e10"},
		{token.BIGINT, "999999999999999999999999"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%v, got=%v (%q)", i, tt.kind, tok.Kind, tok.Literal)
		}
		if tok.Literal != tt.literal {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.literal, tok.Literal)
		}
	}
}

func TestNextToken_Strings(t *testing.T) {
	input := `"Hello, World!" 'raw \n text' ""`

	tests := []struct {
		kind    token.Kind
		literal string
	}{
		{token.STRING, "Hello, World!"},
		{token.STRING, `raw \n text`},
		{token.STRING, ""},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%v, got=%v (%q)", i, tt.kind, tok.Kind, tok.Literal)
		}
		if tok.Literal != tt.literal {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.literal, tok.Literal)
		}
	}
}

func TestNextToken_InterpolatedStringPrefix(t *testing.T) {
	input := `f"hello {{name}}"`
	l := New(input)
	tok := l.NextToken()
	if tok.Kind != token.FSTRING {
		t.Fatalf("expected FSTRING, got %v", tok.Kind)
	}
	if tok.Literal != "hello {{name}}" {
		t.Fatalf("unexpected literal: %q", tok.Literal)
	}
}

func TestNextToken_Keywords(t *testing.T) {
	input := `let const fun end if elif else while for in to until step break continue return raise try catch ensure with as use type trait impl and or not true false nil del self match pub`

	expected := []token.Kind{
		token.LET, token.CONST, token.FUN, token.END, token.IF, token.ELIF, token.ELSE,
		token.WHILE, token.FOR, token.IN, token.TO, token.UNTIL, token.STEP,
		token.BREAK, token.CONTINUE, token.RETURN, token.RAISE,
		token.TRY, token.CATCH, token.ENSURE, token.WITH, token.AS,
		token.USE, token.TYPE, token.TRAIT, token.IMPL,
		token.AND, token.OR, token.NOT, token.TRUE, token.FALSE, token.NIL,
		token.DEL, token.SELF, token.MATCH, token.PUB,
		token.EOF,
	}

	l := New(input)
	for i, kind := range expected {
		tok := l.NextToken()
		if tok.Kind != kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%v, got=%v (%q)", i, kind, tok.Kind, tok.Literal)
		}
	}
}

func TestNextToken_Identifiers(t *testing.T) {
	input := `x count Point println is_valid _private`

	expected := []string{"x", "count", "Point", "println", "is_valid", "_private"}

	l := New(input)
	for i, lit := range expected {
		tok := l.NextToken()
		if tok.Kind != token.IDENT {
			t.Fatalf("tests[%d] - expected IDENT, got %v", i, tok.Kind)
		}
		if tok.Literal != lit {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, lit, tok.Literal)
		}
	}
}

func TestNextToken_CommentsToEndOfLine(t *testing.T) {
	input := "x # this is a comment\ny"

	expected := []token.Kind{token.IDENT, token.IDENT, token.EOF}
	l := New(input)
	for i, kind := range expected {
		tok := l.NextToken()
		if tok.Kind != kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%v, got=%v", i, kind, tok.Kind)
		}
	}
}

func TestNextToken_TripleQuotedString(t *testing.T) {
	input := `"""multi
line
string"""`
	l := New(input)
	tok := l.NextToken()
	if tok.Kind != token.STRING {
		t.Fatalf("expected STRING, got %v", tok.Kind)
	}
	if tok.Literal != "multi\nline\nstring" {
		t.Fatalf("unexpected literal: %q", tok.Literal)
	}
}

func TestLineAndColumn_Tracking(t *testing.T) {
	input := "x\ny\nz"

	l := New(input)
	tok1 := l.NextToken()
	if tok1.Pos.Line != 1 {
		t.Errorf("expected token on line 1, got line %d", tok1.Pos.Line)
	}
	tok2 := l.NextToken()
	if tok2.Pos.Line != 2 {
		t.Errorf("expected token on line 2, got line %d", tok2.Pos.Line)
	}
	tok3 := l.NextToken()
	if tok3.Pos.Line != 3 {
		t.Errorf("expected token on line 3, got line %d", tok3.Pos.Line)
	}
}

func TestTokenize_DrainsToEOF(t *testing.T) {
	input := `"Hello" println`

	l := New(input)
	tokens := l.Tokenize()

	if len(tokens) != 3 { // STRING, IDENT, EOF
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	expectedKinds := []token.Kind{token.STRING, token.IDENT, token.EOF}
	for i, kind := range expectedKinds {
		if tokens[i].Kind != kind {
			t.Fatalf("token %d: expected kind %v, got %v", i, kind, tokens[i].Kind)
		}
	}
}

func TestNextToken_IllegalCharacter(t *testing.T) {
	input := `x @ y`

	l := New(input)
	l.NextToken() // x
	tok := l.NextToken()
	if tok.Kind != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %v", tok.Kind)
	}
}

package specifier

import "testing"

func TestLexerTokens(t *testing.T) {
	l := NewLexer("dep:Foo[self:Bar]::Baz(x,y)->z")
	var got []TokenType
	for {
		tok := l.NextToken()
		got = append(got, tok.Type)
		if tok.Type == EOF {
			break
		}
	}
	want := []TokenType{
		IDENT, COLON, IDENT, LBRACKET, IDENT, COLON, IDENT, RBRACKET,
		DCOLON, IDENT, LPAREN, IDENT, COMMA, IDENT, RPAREN, ARROW, IDENT, EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerSpecialRoots(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"%here", "%here"},
		{"$Self", "$Self"},
		{"$T", "$T"},
	}
	for _, tt := range tests {
		l := NewLexer(tt.input)
		tok := l.NextToken()
		if tok.Type != IDENT || tok.Literal != tt.want {
			t.Errorf("NewLexer(%q) first token = %+v, want IDENT %q", tt.input, tok, tt.want)
		}
	}
}

func TestLexerSkipsWhitespaceBetweenTokens(t *testing.T) {
	// The normalized call-suffix form carries spaces; re-lexing it must
	// produce the same stream as the unspaced raw form.
	for _, in := range []string{"self:Fn(dep:A, dep:B) -> dep:R", "self:Fn(dep:A,dep:B)->dep:R"} {
		l := NewLexer(in)
		var got []TokenType
		for {
			tok := l.NextToken()
			got = append(got, tok.Type)
			if tok.Type == EOF {
				break
			}
		}
		want := []TokenType{
			IDENT, COLON, IDENT, LPAREN, IDENT, COLON, IDENT, COMMA,
			IDENT, COLON, IDENT, RPAREN, ARROW, IDENT, COLON, IDENT, EOF,
		}
		if len(got) != len(want) {
			t.Fatalf("lexing %q: got %d tokens, want %d: %v", in, len(got), len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("lexing %q: token %d: got %v, want %v", in, i, got[i], want[i])
			}
		}
	}
}

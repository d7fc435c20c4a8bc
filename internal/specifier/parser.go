package specifier

// Listener receives the flat event stream produced by walking a parsed
// specifier. Both Solver (normalization) and
// term.Driver (stack-op interpretation) implement it: the former over
// raw input text, the latter over the resulting normalized text.
type Listener interface {
	SyntaxErr()
	RootID(id string)
	SlashID(id string)
	ColonID(id string)
	DblColonID(id string)
	OpenArgs()
	ArgsDelim()
	CloseArgs()
	OpenCallSuff()
	CallSuffDelim()
	CallSuffReturn()
	CloseCallSuff()
}

// parser drives a Listener over one specifier's token stream. Grammar:
//
//	specifier  := root ('/' IDENT)* ( ':' IDENT typeargs? )? ('::' IDENT)* callsuff?
//	typeargs   := '[' specifier (',' specifier)* ']'
//	callsuff   := '(' (specifier (',' specifier)*)? ')' '->' specifier
//
// A leading segment may be `%here`, `$Self`, `$<Ident>`, or a plain
// identifier (parcel self-name, dep-name, or the literal `self`); these are
// all lexed as IDENT and dispatched to Listener.RootID verbatim, leaving
// the `%`/`$` dispatch to the Listener (Solver or term.Driver).
type parser struct {
	lex *Lexer
	cur Token
	lis Listener
	ok  bool
}

// Parse walks input's token stream, calling lis for every grammar
// production encountered. It returns false (having already notified
// lis.SyntaxErr()) on any syntax violation.
func Parse(input string, lis Listener) bool {
	p := &parser{lex: NewLexer(input), lis: lis, ok: true}
	p.advance()
	p.parseSpecifier()
	if p.ok && p.cur.Type != EOF {
		p.fail()
	}
	return p.ok
}

func (p *parser) advance() {
	p.cur = p.lex.NextToken()
}

func (p *parser) fail() {
	if p.ok {
		p.ok = false
		p.lis.SyntaxErr()
	}
}

func (p *parser) expect(tt TokenType) (Token, bool) {
	if !p.ok || p.cur.Type != tt {
		p.fail()
		return Token{}, false
	}
	tok := p.cur
	p.advance()
	return tok, true
}

// parseSpecifier parses one full specifier (root, path segments, optional
// type entry + args, optional member access, optional call suffix).
func (p *parser) parseSpecifier() {
	root, ok := p.expect(IDENT)
	if !ok {
		return
	}
	p.lis.RootID(root.Literal)

	// A `$Self` / `$<Ident>` root already denotes a type, so `::` may
	// follow it directly with no `:` transition in between.
	isType := len(root.Literal) > 0 && root.Literal[0] == '$'

	for p.ok && p.cur.Type == SLASH {
		p.advance()
		id, ok := p.expect(IDENT)
		if !ok {
			return
		}
		p.lis.SlashID(id.Literal)
	}

	if p.ok && p.cur.Type == COLON {
		p.advance()
		id, ok := p.expect(IDENT)
		if !ok {
			return
		}
		p.lis.ColonID(id.Literal)
		isType = true

		if p.ok && p.cur.Type == LBRACKET {
			p.parseArgs()
		}
	}

	if p.ok && p.cur.Type == DCOLON {
		if !isType {
			p.fail()
			return
		}
		for p.ok && p.cur.Type == DCOLON {
			p.advance()
			id, ok := p.expect(IDENT)
			if !ok {
				return
			}
			p.lis.DblColonID(id.Literal)
		}
	}

	if p.ok && p.cur.Type == LPAREN {
		p.parseCallSuff()
	}
}

func (p *parser) parseArgs() {
	p.advance() // consume '['
	p.lis.OpenArgs()

	if p.ok && p.cur.Type != RBRACKET {
		p.parseSpecifier()
		for p.ok && p.cur.Type == COMMA {
			p.advance()
			p.lis.ArgsDelim()
			p.parseSpecifier()
		}
	}

	if !p.ok {
		return
	}
	if _, ok := p.expect(RBRACKET); !ok {
		return
	}
	p.lis.CloseArgs()
}

func (p *parser) parseCallSuff() {
	p.advance() // consume '('
	p.lis.OpenCallSuff()

	if p.ok && p.cur.Type != RPAREN {
		p.parseSpecifier()
		for p.ok && p.cur.Type == COMMA {
			p.advance()
			p.lis.CallSuffDelim()
			p.parseSpecifier()
		}
	}

	if !p.ok {
		return
	}
	if _, ok := p.expect(RPAREN); !ok {
		return
	}
	if _, ok := p.expect(ARROW); !ok {
		return
	}
	p.lis.CallSuffReturn()
	p.parseSpecifier()
	if !p.ok {
		return
	}
	p.lis.CloseCallSuff()
}

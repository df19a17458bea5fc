package core

// TokenKind classifies the lexical elements of an IEEE 488.2 program
// message.
type TokenKind uint8

const (
	TokenWhitespace TokenKind = iota
	TokenMnemonic
	TokenNumber
	TokenColon
	TokenComma
	TokenSemicolon
	TokenQuestionMark
	TokenTerminator
)

// Token is one lexical element. Data borrows from the input buffer and
// is only set for mnemonic and number tokens.
type Token struct {
	Kind TokenKind
	Data []byte
}

// ScanState reports the outcome of a NextToken call.
type ScanState uint8

const (
	// ScanOk: a complete token was produced.
	ScanOk ScanState = iota
	// ScanIncomplete: the token might continue past the end of the
	// buffer; the unconsumed remainder is returned so the caller can
	// prepend it to the next read.
	ScanIncomplete
	// ScanInvalid: the next byte cannot start any token.
	ScanInvalid
	// ScanDone: the input is exhausted.
	ScanDone
)

// Tokenizer splits a byte buffer into SCPI tokens. It never buffers
// across calls: a run that could continue past the slice end yields
// ScanIncomplete with the remainder, which makes byte-at-a-time
// streaming work.
type Tokenizer struct {
	input []byte
}

func NewTokenizer(input []byte) *Tokenizer {
	return &Tokenizer{input: input}
}

// Rest is the unconsumed input.
func (t *Tokenizer) Rest() []byte {
	return t.input
}

// isProgramWhitespace reports whitespace per IEEE 488.2, 7.4.1.2.
func isProgramWhitespace(c byte) bool {
	return c <= 9 || (c >= 11 && c <= 32)
}

// takeUntil consumes bytes until stop returns true. If the run reaches
// the end of the buffer the token may continue in the next read, so nil
// is returned instead.
func (t *Tokenizer) takeUntil(stop func(byte) bool) []byte {
	for i, c := range t.input {
		if stop(c) {
			res := t.input[:i]
			t.input = t.input[i:]
			return res
		}
	}
	return nil
}

func (t *Tokenizer) single(kind TokenKind) (Token, ScanState) {
	t.input = t.input[1:]
	return Token{Kind: kind}, ScanOk
}

// NextToken scans one token. On ScanIncomplete the unconsumed input is
// available via Rest.
func (t *Tokenizer) NextToken() (Token, ScanState) {
	if len(t.input) == 0 {
		return Token{}, ScanDone
	}
	switch c := t.input[0]; {
	case c == '\n':
		return t.single(TokenTerminator)
	case isProgramWhitespace(c):
		if res := t.takeUntil(func(c byte) bool { return !isProgramWhitespace(c) }); res != nil {
			return Token{Kind: TokenWhitespace, Data: res}, ScanOk
		}
	case c == ':':
		return t.single(TokenColon)
	case c == '?':
		return t.single(TokenQuestionMark)
	case c == ';':
		return t.single(TokenSemicolon)
	case c == ',':
		return t.single(TokenComma)
	case c == '*' || isAlpha(c):
		if res := t.takeUntil(func(c byte) bool { return !isMnemonicByte(c) }); res != nil {
			return Token{Kind: TokenMnemonic, Data: res}, ScanOk
		}
	case c >= '0' && c <= '9':
		if res := t.takeUntil(func(c byte) bool { return !isDigit(c) && c != '.' }); res != nil {
			return Token{Kind: TokenNumber, Data: res}, ScanOk
		}
	default:
		return Token{}, ScanInvalid
	}
	return Token{}, ScanIncomplete
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isMnemonicByte covers continuation bytes of a mnemonic token. The
// asterisk is included so common command headers such as *IDN scan as
// one token.
func isMnemonicByte(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '_' || c == '*'
}

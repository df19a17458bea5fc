package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizerStatement(t *testing.T) {
	tok := NewTokenizer([]byte("SYST:ERR? ;\n"))

	token, state := tok.NextToken()
	require.Equal(t, ScanOk, state)
	assert.Equal(t, TokenMnemonic, token.Kind)
	assert.Equal(t, "SYST", string(token.Data))

	token, state = tok.NextToken()
	require.Equal(t, ScanOk, state)
	assert.Equal(t, TokenColon, token.Kind)

	token, state = tok.NextToken()
	require.Equal(t, ScanOk, state)
	assert.Equal(t, TokenMnemonic, token.Kind)
	assert.Equal(t, "ERR", string(token.Data))

	token, state = tok.NextToken()
	require.Equal(t, ScanOk, state)
	assert.Equal(t, TokenQuestionMark, token.Kind)

	token, state = tok.NextToken()
	require.Equal(t, ScanOk, state)
	assert.Equal(t, TokenWhitespace, token.Kind)

	token, state = tok.NextToken()
	require.Equal(t, ScanOk, state)
	assert.Equal(t, TokenSemicolon, token.Kind)

	token, state = tok.NextToken()
	require.Equal(t, ScanOk, state)
	assert.Equal(t, TokenTerminator, token.Kind)

	_, state = tok.NextToken()
	assert.Equal(t, ScanDone, state)
}

func TestTokenizerCommonHeader(t *testing.T) {
	tok := NewTokenizer([]byte("*IDN?\n"))

	token, state := tok.NextToken()
	require.Equal(t, ScanOk, state)
	assert.Equal(t, TokenMnemonic, token.Kind)
	assert.Equal(t, "*IDN", string(token.Data))
}

func TestTokenizerIncompleteRun(t *testing.T) {
	// A mnemonic at the buffer end could continue in the next read.
	tok := NewTokenizer([]byte("VOLT"))
	_, state := tok.NextToken()
	assert.Equal(t, ScanIncomplete, state)
	assert.Equal(t, "VOLT", string(tok.Rest()))

	tok = NewTokenizer([]byte("VOLT 1.5"))
	token, state := tok.NextToken()
	require.Equal(t, ScanOk, state)
	assert.Equal(t, "VOLT", string(token.Data))
	_, state = tok.NextToken()
	require.Equal(t, ScanOk, state)
	_, state = tok.NextToken()
	assert.Equal(t, ScanIncomplete, state)
	assert.Equal(t, "1.5", string(tok.Rest()))
}

func TestTokenizerInvalidByte(t *testing.T) {
	tok := NewTokenizer([]byte("&"))
	_, state := tok.NextToken()
	assert.Equal(t, ScanInvalid, state)
}

package core

// MaxArgs is the maximum number of arguments a command call can carry.
const MaxArgs = 10

// ParseError distinguishes three parser outcomes besides success:
//
//   - soft: the production did not match; an ordered-choice caller may
//     try its next alternative. Carries an optional Error payload
//     (defaulting to ErrSyntaxError when surfaced).
//   - fatal: the production matched but is semantically wrong (e.g. an
//     undefined header); no alternative may recover it.
//   - incomplete: the statement may continue past the buffer end;
//     parsing suspends until more bytes arrive.
type ParseError struct {
	fatal      bool
	incomplete bool
	err        Error
	hasErr     bool
}

var errIncomplete = &ParseError{incomplete: true}
var errSoft = &ParseError{}

func softError(err Error) *ParseError {
	return &ParseError{err: err, hasErr: true}
}

func fatalError(err Error) *ParseError {
	return &ParseError{fatal: true, err: err, hasErr: true}
}

// Soft reports whether an alternative production may still be tried.
func (p *ParseError) Soft() bool {
	return !p.fatal && !p.incomplete
}

// Incomplete reports that more input is required.
func (p *ParseError) Incomplete() bool {
	return p.incomplete
}

// Err is the SCPI error to report for this parse failure.
func (p *ParseError) Err() Error {
	if p.hasErr {
		return p.err
	}
	return ErrSyntaxError
}

func (p *ParseError) Error() string {
	switch {
	case p.incomplete:
		return "incomplete input"
	case p.fatal:
		return "fatal: " + p.Err().Message
	default:
		return "soft: " + p.Err().Message
	}
}

// CommandCall is one parsed program message unit, resolved against the
// command tree. Args borrow from the input buffer; the call must be
// consumed before the buffer is reused.
type CommandCall struct {
	// Node is the resolved tree node.
	Node *Node
	// Header is the parent node used as context for a following
	// `;`-separated statement. It is nil for common commands.
	Header *Node
	// Query is true when the header ends in a question mark.
	Query bool
	// Args are the unconverted arguments.
	Args []Value
	// Terminated is true when the statement ended in a newline, which
	// resets the tree position.
	Terminated bool
}

// takeWhile splits input at the first byte the predicate rejects.
func takeWhile(input []byte, pred func(byte) bool) (rest, taken []byte) {
	for i, c := range input {
		if !pred(c) {
			return input[i:], input[:i]
		}
	}
	return nil, input
}

// satisfy consumes a single byte matching the predicate.
func satisfy(input []byte, pred func(byte) bool) (rest []byte, b byte, perr *ParseError) {
	if len(input) == 0 {
		return input, 0, errIncomplete
	}
	if !pred(input[0]) {
		return input, 0, softError(ErrInvalidCharacter)
	}
	return input[1:], input[0], nil
}

func tag(input []byte, c byte) (rest []byte, perr *ParseError) {
	rest, _, perr = satisfy(input, func(b byte) bool { return b == c })
	return rest, perr
}

// whitespace consumes a run of IEEE 488.2 whitespace. Empty input is
// incomplete; input starting with anything else does not match.
func whitespace(input []byte) (rest []byte, perr *ParseError) {
	rest, taken := takeWhile(input, isProgramWhitespace)
	if len(taken) == 0 {
		if len(input) == 0 {
			return input, errIncomplete
		}
		return input, softError(ErrInvalidCharacter)
	}
	return rest, nil
}

// optionalWhitespace never fails; it consumes whitespace when present.
func optionalWhitespace(input []byte) []byte {
	if rest, perr := whitespace(input); perr == nil {
		return rest
	}
	return input
}

// digits consumes one or more ASCII digits.
func digits(input []byte) (rest, taken []byte, perr *ParseError) {
	i1, _, perr := satisfy(input, isDigit)
	if perr != nil {
		return input, nil, perr
	}
	rest, more := takeWhile(i1, isDigit)
	return rest, input[:len(more)+1], nil
}

// programMnemonic consumes a mnemonic: a letter followed by letters,
// digits or underscores.
func programMnemonic(input []byte) (rest, taken []byte, perr *ParseError) {
	i1, _, perr := satisfy(input, isAlpha)
	if perr != nil {
		return input, nil, perr
	}
	rest, more := takeWhile(i1, func(c byte) bool {
		return isAlpha(c) || isDigit(c) || c == '_'
	})
	return rest, input[:len(more)+1], nil
}

func sign(input []byte) (rest []byte, perr *ParseError) {
	rest, _, perr = satisfy(input, func(c byte) bool { return c == '+' || c == '-' })
	return rest, perr
}

// characters parses character program data (a bare mnemonic).
func characters(input []byte) (rest []byte, v Value, perr *ParseError) {
	rest, taken, perr := programMnemonic(input)
	if perr != nil {
		return input, Value{}, perr
	}
	return rest, NewValue(ValueCharacters, taken), nil
}

// mantissa parses the mantissa of decimal numeric program data:
// [sign](digits[.digits] | .digits)
func mantissa(input []byte) (rest, taken []byte, perr *ParseError) {
	i1 := input
	if r, perr := sign(i1); perr == nil {
		i1 = r
	}
	i2, d1, _ := digits(i1)
	if d1 == nil {
		i2 = i1
	}
	i3 := i2
	if r, perr := tag(i2, '.'); perr == nil {
		i3 = r
	}
	i4 := i3
	if d1 != nil {
		if r, _, perr := digits(i3); perr == nil {
			i4 = r
		}
	} else {
		r, _, perr := digits(i3)
		if perr != nil {
			return input, nil, perr
		}
		i4 = r
	}
	return i4, input[:len(input)-len(i4)], nil
}

// exponent parses (E|e)[sign]digits.
func exponent(input []byte) (rest, taken []byte, perr *ParseError) {
	i1, _, perr := satisfy(input, func(c byte) bool { return c == 'E' || c == 'e' })
	if perr != nil {
		return input, nil, perr
	}
	i2 := i1
	if r, perr := sign(i1); perr == nil {
		i2 = r
	}
	i3, _, perr := digits(i2)
	if perr != nil {
		return input, nil, perr
	}
	return i3, input[:len(input)-len(i3)], nil
}

// decimalData parses decimal numeric program data without interpreting
// it; the target handler decides the numeric type later.
func decimalData(input []byte) (rest []byte, v Value, perr *ParseError) {
	i1, _, perr := mantissa(input)
	if perr != nil {
		return input, Value{}, perr
	}
	i2 := i1
	if r, _, perr := exponent(i1); perr == nil {
		i2 = r
	}
	return i2, NewValue(ValueDecimal, input[:len(input)-len(i2)]), nil
}

// radixData parses #H/#Q/#B nondecimal numeric program data. The
// marker byte pair selects the digit set.
func radixData(input []byte, marker byte, kind ValueKind, digit func(byte) bool) (rest []byte, v Value, perr *ParseError) {
	i1, perr := tag(input, '#')
	if perr != nil {
		return input, Value{}, perr
	}
	i2, _, perr := satisfy(i1, func(c byte) bool { return c == marker || c == marker+('a'-'A') })
	if perr != nil {
		return input, Value{}, perr
	}
	i3, _, perr := satisfy(i2, digit)
	if perr != nil {
		return input, Value{}, perr
	}
	i4, _ := takeWhile(i3, digit)
	return i4, NewValue(kind, i2[:len(i2)-len(i4)]), nil
}

func hexadecimalData(input []byte) ([]byte, Value, *ParseError) {
	return radixData(input, 'H', ValueHexadecimal, func(c byte) bool {
		return isDigit(c) || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
	})
}

func binaryData(input []byte) ([]byte, Value, *ParseError) {
	return radixData(input, 'B', ValueBinary, func(c byte) bool { return c == '0' || c == '1' })
}

func octalData(input []byte) ([]byte, Value, *ParseError) {
	return radixData(input, 'Q', ValueOctal, func(c byte) bool { return c >= '0' && c <= '7' })
}

// quotedString parses string program data delimited by the given quote
// byte. An embedded quote character cannot be escaped; the string ends
// at the first closing quote.
func quotedString(input []byte, quote byte) (rest []byte, v Value, perr *ParseError) {
	i1, perr := tag(input, quote)
	if perr != nil {
		return input, Value{}, perr
	}
	i2, taken := takeWhile(i1, func(c byte) bool { return c != quote })
	i3, perr := tag(i2, quote)
	if perr != nil {
		return input, Value{}, perr
	}
	return i3, NewValue(ValueString, taken), nil
}

// arbitraryData parses arbitrary block program data:
// `#<n><n length digits><length raw bytes>`.
func arbitraryData(input []byte) (rest []byte, v Value, perr *ParseError) {
	i1, perr := tag(input, '#')
	if perr != nil {
		return input, Value{}, perr
	}
	i2, d, perr := satisfy(i1, func(c byte) bool { return c >= '1' && c <= '9' })
	if perr != nil {
		return input, Value{}, perr
	}
	lenDigits := int(d - '0')
	if len(i2) < lenDigits {
		return input, Value{}, errIncomplete
	}
	count := 0
	for _, c := range i2[:lenDigits] {
		if !isDigit(c) {
			return input, Value{}, softError(ErrInvalidCharacterInNumber)
		}
		count = count*10 + int(c-'0')
	}
	i3 := i2[lenDigits:]
	if len(i3) < count {
		return input, Value{}, errIncomplete
	}
	return i3[count:], NewValue(ValueArbitrary, i3[:count]), nil
}

// headerSeparator parses a colon with optional surrounding whitespace.
func headerSeparator(input []byte) (rest []byte, perr *ParseError) {
	i1 := optionalWhitespace(input)
	i2, perr := tag(i1, ':')
	if perr != nil {
		if perr.Soft() {
			return input, softError(ErrHeaderSeparatorError)
		}
		return input, perr
	}
	return optionalWhitespace(i2), nil
}

// commonHeader parses a common command header such as *IDN and resolves
// it directly under the tree root. The asterisk is part of the node
// name.
func commonHeader(root *Node, input []byte) (rest []byte, node *Node, perr *ParseError) {
	i1, perr := tag(input, '*')
	if perr != nil {
		if perr.Soft() {
			return input, nil, fatalError(ErrUndefinedHeader)
		}
		return input, nil, perr
	}
	i2, taken, perr := programMnemonic(i1)
	if perr != nil {
		return input, nil, perr
	}
	name := input[:len(taken)+1]
	child := root.Child(string(name))
	if child == nil {
		return input, nil, fatalError(ErrUndefinedHeader)
	}
	return i2, child, nil
}

// compoundHeader parses a colon separated header. Without a leading
// colon the first mnemonic resolves against the context node (the
// parent of the previous `;`-joined statement); with one it resolves
// against the root. An unresolvable segment is fatal.
func compoundHeader(root, context *Node, input []byte) (rest []byte, node, header *Node, perr *ParseError) {
	header = context
	start := context
	i1 := input
	if r, perr := headerSeparator(input); perr == nil {
		i1 = r
		start = root
	} else if !perr.Soft() {
		return input, nil, nil, perr
	}

	i2, taken, perr := programMnemonic(i1)
	if perr != nil {
		return input, nil, nil, perr
	}
	node = start.Child(string(taken))
	if node == nil {
		return input, nil, nil, fatalError(ErrUndefinedHeader)
	}
	input = i2

	for {
		i, perr := headerSeparator(input)
		if perr != nil {
			if perr.Soft() {
				break
			}
			return input, nil, nil, perr
		}
		i, taken, perr = programMnemonic(i)
		if perr != nil {
			return input, nil, nil, perr
		}
		header = node
		node = node.Child(string(taken))
		if node == nil {
			return input, nil, nil, fatalError(ErrUndefinedHeader)
		}
		input = i
	}
	return input, node, header, nil
}

// commandHeader parses either header form. The compound form is tried
// first; the common form only recovers soft failures.
func commandHeader(root, context *Node, input []byte) (rest []byte, node, header *Node, perr *ParseError) {
	rest, node, header, perr = compoundHeader(root, context, input)
	if perr == nil || !perr.Soft() {
		return rest, node, header, perr
	}
	rest, node, perr = commonHeader(root, input)
	return rest, node, nil, perr
}

// argumentSeparator parses a comma with optional surrounding
// whitespace.
func argumentSeparator(input []byte) (rest []byte, perr *ParseError) {
	i1 := optionalWhitespace(input)
	i2, perr := tag(i1, ',')
	if perr != nil {
		if perr.Soft() {
			return input, softError(ErrInvalidSeparator)
		}
		return input, perr
	}
	return optionalWhitespace(i2), nil
}

// argument parses one program data element, probing each lexical form
// in order. Only soft failures move on to the next form.
func argument(input []byte) (rest []byte, v Value, perr *ParseError) {
	parsers := []func([]byte) ([]byte, Value, *ParseError){
		characters,
		decimalData,
		hexadecimalData,
		binaryData,
		octalData,
		func(in []byte) ([]byte, Value, *ParseError) { return quotedString(in, '\'') },
		func(in []byte) ([]byte, Value, *ParseError) { return quotedString(in, '"') },
		arbitraryData,
	}
	for _, p := range parsers {
		rest, v, perr = p(input)
		if perr == nil || !perr.Soft() {
			return rest, v, perr
		}
	}
	return input, Value{}, perr
}

// arguments parses a comma separated argument list into args.
func arguments(input []byte, args []Value) (rest []byte, out []Value, perr *ParseError) {
	i, arg, perr := argument(input)
	if perr != nil {
		return input, args, perr
	}
	args = append(args, arg)
	input = i

	for {
		i, perr := argumentSeparator(input)
		if perr != nil {
			if perr.Soft() {
				break
			}
			return input, args, perr
		}
		i, arg, perr = argument(i)
		if perr != nil {
			return input, args, perr
		}
		if len(args) == MaxArgs {
			return input, args, softError(ErrUnexpectedNumberOfParameters)
		}
		args = append(args, arg)
		input = i
	}
	return input, args, nil
}

// Parse reads one program message unit from input. It returns the
// remaining input and the parsed call; a nil call with nil error means
// the statement was empty (a bare terminator). The args slice is
// reused between calls when non-nil.
func Parse(root, context *Node, input []byte, args []Value) (rest []byte, call *CommandCall, perr *ParseError) {
	input = optionalWhitespace(input)

	if rest, perr := tag(input, '\n'); perr == nil {
		return rest, nil, nil
	}

	input, node, header, perr := commandHeader(root, context, input)
	if perr != nil {
		return input, nil, perr
	}

	query := false
	if rest, perr := tag(input, '?'); perr == nil {
		query = true
		input = rest
	}

	hasArgs := false
	if rest, perr := whitespace(input); perr == nil {
		hasArgs = true
		input = rest
	} else if !perr.Soft() {
		return input, nil, perr
	}

	args = args[:0]
	if hasArgs {
		rest, parsed, perr := arguments(input, args)
		switch {
		case perr == nil:
			args = parsed
			input = rest
		case perr.Soft():
			// No argument list after all; the terminator check below
			// reports whatever is actually there.
		default:
			return input, nil, perr
		}
	}

	input = optionalWhitespace(input)

	terminated := false
	if rest, perr := tag(input, '\n'); perr == nil {
		terminated = true
		input = rest
	} else if rest, perr2 := tag(input, ';'); perr2 == nil {
		input = rest
	} else if !perr.Soft() {
		return input, nil, perr
	} else {
		return input, nil, perr2
	}

	return input, &CommandCall{
		Node:       node,
		Header:     header,
		Query:      query,
		Args:       args,
		Terminated: terminated,
	}, nil
}

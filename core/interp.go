package core

import (
	"bytes"
	"context"
	"io"

	"github.com/vuuvv/errors"
	"github.com/vuuvv/vscpi/log"
	"go.uber.org/zap"
)

// HandlerFunc executes one command or query. Args hold the unconverted
// argument values; the returned result is serialized by the response
// writer (nil for commands without a response). A returned Error is
// queued as is, any other error is reported as ErrDeviceSpecificError.
type HandlerFunc func(ctx context.Context, args []Value) (any, error)

// ErrorHandler receives errors that the interpreter cannot recover
// locally. When no handler is installed, errors go to the error queue.
type ErrorHandler func(err Error)

// Adapter is the byte-stream boundary between an interpreter and its
// transport. Read may block until data arrives; Write and Flush may
// block until the transport accepts the response. Timeouts are the
// adapter's responsibility.
type Adapter interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) error
	Flush() error
}

// Interpreter drives the parser over incoming bytes, executes resolved
// commands and owns the error queue and the resynchronization policy.
//
// One call into the interpreter owns it fully; no internal locking is
// performed. The command tree is read only and may be shared between
// interpreter instances.
type Interpreter struct {
	tree     *Tree
	handlers map[CommandId]HandlerFunc
	current  *Node
	queue    ErrorQueue
	onError  ErrorHandler
	args     []Value
	config   *Config
}

// NewInterpreter assembles an interpreter from a built tree, the
// handler dispatch table and a configuration. A nil config uses the
// defaults; a nil queue in the config allocates a fresh one.
func NewInterpreter(tree *Tree, handlers map[CommandId]HandlerFunc, config *Config) (*Interpreter, error) {
	if tree == nil {
		return nil, errors.New("command tree not set")
	}
	if config == nil {
		config = &Config{}
	}
	if err := config.Setup(); err != nil {
		return nil, errors.WithStack(err)
	}
	queue := config.Queue
	if queue == nil {
		queue = NewStaticErrorQueue(config.ErrorQueueSize)
	}
	return &Interpreter{
		tree:     tree,
		handlers: handlers,
		current:  tree.Root(),
		queue:    queue,
		args:     make([]Value, 0, MaxArgs),
		config:   config,
	}, nil
}

// OnError installs an error callback replacing the default queue
// routing.
func (i *Interpreter) OnError(handler ErrorHandler) {
	i.onError = handler
}

// Errors is the interpreter's error queue.
func (i *Interpreter) Errors() ErrorQueue {
	return i.queue
}

// Reset moves the header context back to the tree root.
func (i *Interpreter) Reset() {
	i.current = i.tree.Root()
}

func (i *Interpreter) handleError(err Error) {
	if i.onError != nil {
		i.onError(err)
		return
	}
	i.queue.Push(err)
}

// Execute runs the handler a parsed call resolved to. The argument
// count is checked against the registration before the handler body
// runs; queries append a terminator after their value.
func (i *Interpreter) Execute(ctx context.Context, call *CommandCall, resp *ResponseWriter) error {
	id := call.Node.Command()
	if call.Query {
		id = call.Node.Query()
	}
	if id == NoCommand {
		return ErrUndefinedHeader
	}
	handler, ok := i.handlers[id]
	if !ok {
		return ErrUndefinedHeader
	}
	if len(call.Args) != i.tree.Arity(id) {
		return ErrUnexpectedNumberOfParameters
	}

	result, err := handler(ctx, call.Args)
	if err != nil {
		if scpiErr, ok := err.(Error); ok {
			return scpiErr
		}
		log.Warn(errors.Wrap(err, "command handler failed"), zap.Int("command", id))
		return ErrDeviceSpecificError
	}

	if err := resp.WriteResponse(result); err != nil {
		if scpiErr, ok := err.(Error); ok {
			return scpiErr
		}
		return ErrQueryError
	}
	if call.Query {
		if err := resp.WriteTerminator(); err != nil {
			return ErrTooMuchData
		}
	}
	return nil
}

// Run parses and executes every fully terminated statement in input.
// The unconsumed tail is returned so the caller can prepend it to the
// next read. A statement failure is queued and processing resumes at
// the next `;` or newline; no failure aborts the batch.
func (i *Interpreter) Run(ctx context.Context, input []byte, resp *ResponseWriter) []byte {
	for len(input) > 0 {
		// Only parse when a terminator is in the buffer; a mnemonic or
		// number run at the buffer end could continue in the next read.
		if bytes.IndexByte(input, '\n') < 0 {
			return input
		}

		rest, call, perr := Parse(i.tree.Root(), i.current, input, i.args[:0])
		if perr != nil {
			if perr.Incomplete() {
				return input
			}
			i.handleError(perr.Err())
			input = i.resync(input)
			continue
		}
		input = rest

		if call == nil {
			// Blank statement; the terminator still resets the context.
			i.Reset()
			continue
		}

		if err := i.Execute(ctx, call, resp); err != nil {
			scpiErr, ok := err.(Error)
			if !ok {
				scpiErr = ErrExecutionError
			}
			i.handleError(scpiErr)
		}

		switch {
		case call.Terminated:
			i.Reset()
		case call.Header != nil:
			// `;` keeps the compound header context for the next
			// statement; common commands leave it untouched.
			i.current = call.Header
		}
	}
	return nil
}

// resync skips the remainder of a failed statement, consuming input up
// to and including the next statement separator.
func (i *Interpreter) resync(input []byte) []byte {
	i.Reset()
	for idx, c := range input {
		if c == ';' || c == '\n' {
			return input[idx+1:]
		}
	}
	return nil
}

// Process is the buffered top level loop: read bytes from the adapter,
// run all fully terminated statements, write and flush the responses,
// repeat. More bytes are read only after the current buffer is
// processed and flushed. The loop ends when the adapter reports EOF or
// the context is cancelled.
func (i *Interpreter) Process(ctx context.Context, adapter Adapter) error {
	buf := make([]byte, i.config.ReadBufferSize)
	pending := make([]byte, 0, i.config.ReadBufferSize)
	resp := NewResponseWriter(i.config.MaxResponseSize)

	for {
		if err := ctx.Err(); err != nil {
			return errors.WithStack(err)
		}

		n, err := adapter.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)

			resp.Reset()
			remaining := i.Run(ctx, pending, resp)
			if resp.Len() > 0 {
				if werr := adapter.Write(resp.Bytes()); werr != nil {
					return errors.WithStack(werr)
				}
				if werr := adapter.Flush(); werr != nil {
					return errors.WithStack(werr)
				}
			}
			pending = append(pending[:0], remaining...)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.WithStack(err)
		}
	}
}

// Registry accumulates command registrations and their handler
// functions, assigning command ids in registration order.
type Registry struct {
	regs     []Registration
	handlers map[CommandId]HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[CommandId]HandlerFunc)}
}

// Add registers a handler under a source notation path such as
// "[SYSTem]:ERRor:NEXT?". A trailing question mark registers a query.
func (r *Registry) Add(path string, arity int, fn HandlerFunc) CommandId {
	id := len(r.regs)
	r.regs = append(r.regs, Registration{Path: path, Handler: id, Arity: arity})
	r.handlers[id] = fn
	return id
}

// Build compiles the registration table into an interpreter.
func (r *Registry) Build(config *Config) (*Interpreter, error) {
	tree, err := BuildTree(r.regs)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return NewInterpreter(tree, r.handlers, config)
}

package core

import (
	"strings"

	"github.com/vuuvv/errors"
)

// CommandId is the opaque reference to a registered handler. Handler
// functions are addressed by integer so the tree stays a plain static
// structure.
type CommandId = int

// NoCommand marks a node without a command or query handler.
const NoCommand CommandId = -1

// Node is one element of the SCPI command tree. Each node can hold a
// command id, a query id or both. The tree contains all valid spellings
// of every registered path: long form, short form and, for optional
// segments, the path with the segment omitted.
//
// Nodes are built once and read only afterwards; a tree is safe to
// share between interpreter instances.
type Node struct {
	children []treeChild
	command  CommandId
	query    CommandId
}

type treeChild struct {
	name string
	node *Node
}

func newNode() *Node {
	return &Node{command: NoCommand, query: NoCommand}
}

// Child searches this node for a path segment. The search is ASCII
// case-insensitive; trees are small, so a linear scan beats hashing.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if strings.EqualFold(c.name, name) {
			return c.node
		}
	}
	return nil
}

// Command is the command handler id, or NoCommand.
func (n *Node) Command() CommandId { return n.command }

// Query is the query handler id, or NoCommand.
func (n *Node) Query() CommandId { return n.query }

func (n *Node) child(name string) *Node {
	if c := n.Child(name); c != nil {
		return c
	}
	c := newNode()
	n.children = append(n.children, treeChild{name: name, node: c})
	return c
}

// Registration describes one command for the tree builder: a path in
// source notation (e.g. "[SYSTem]:ERRor:NEXT?"), the handler id and the
// number of arguments the handler expects. A trailing question mark
// registers the handler as a query.
type Registration struct {
	Path    string
	Handler CommandId
	Arity   int
}

type pathPart struct {
	optional bool
	short    string
	long     string
}

// parsePath splits a source path into its parts. The short spelling of
// a segment is everything that is not lowercase, the long spelling the
// whole segment uppercased; [brackets] mark a segment as optional.
func parsePath(path string) (parts []pathPart, query bool) {
	if rest, ok := strings.CutSuffix(path, "?"); ok {
		path = rest
		query = true
	}
	for _, part := range strings.Split(path, ":") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		optional := false
		if strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]") {
			part = part[1 : len(part)-1]
			optional = true
		}
		var short strings.Builder
		for _, c := range part {
			if !('a' <= c && c <= 'z') {
				short.WriteRune(c)
			}
		}
		parts = append(parts, pathPart{
			optional: optional,
			short:    short.String(),
			long:     strings.ToUpper(part),
		})
	}
	return parts, query
}

// expandPaths produces every valid spelling of a command path. Each
// part contributes its long form, its short form when distinct, and,
// when optional, the omission.
func expandPaths(parts []pathPart) [][]string {
	paths := [][]string{{}}
	for _, part := range parts {
		var next [][]string
		for _, p := range paths {
			long := append(append([]string{}, p...), part.long)
			next = append(next, long)
			if part.short != part.long {
				short := append(append([]string{}, p...), part.short)
				next = append(next, short)
			}
			if part.optional {
				next = append(next, p)
			}
		}
		paths = next
	}
	return paths
}

// Tree is the root of a built command tree plus the arity table used by
// the interpreter for the pre-dispatch argument count check.
type Tree struct {
	root  *Node
	arity map[CommandId]int
}

// Root is the root node of the tree.
func (t *Tree) Root() *Node { return t.root }

// Arity is the declared argument count of a handler.
func (t *Tree) Arity(id CommandId) int { return t.arity[id] }

// BuildTree compiles a registration table into a command tree. Two
// commands (or two queries) resolving to one path is a build error.
func BuildTree(regs []Registration) (*Tree, error) {
	tree := &Tree{root: newNode(), arity: make(map[CommandId]int)}
	for _, reg := range regs {
		parts, query := parsePath(reg.Path)
		if len(parts) == 0 {
			return nil, errors.Errorf("empty command path in registration %d", reg.Handler)
		}
		for _, path := range expandPaths(parts) {
			if len(path) == 0 {
				continue
			}
			node := tree.root
			for _, name := range path {
				node = node.child(name)
			}
			if query {
				if node.query != NoCommand {
					return nil, errors.Errorf("query already registered at %s", strings.Join(path, ":"))
				}
				node.query = reg.Handler
			} else {
				if node.command != NoCommand {
					return nil, errors.Errorf("command already registered at %s", strings.Join(path, ":"))
				}
				node.command = reg.Handler
			}
		}
		tree.arity[reg.Handler] = reg.Arity
	}
	return tree, nil
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTreeSpellings(t *testing.T) {
	tree, err := BuildTree([]Registration{
		{Path: "[SYSTem]:ERRor[:NEXT]?", Handler: 0, Arity: 0},
		{Path: "MEASure:VOLTage", Handler: 1, Arity: 1},
	})
	require.NoError(t, err)

	root := tree.Root()

	// Long and short spellings, case-insensitive.
	for _, path := range [][]string{
		{"SYSTEM", "ERROR", "NEXT"},
		{"SYST", "ERR", "NEXT"},
		{"syst", "error"},
		{"ERR"},
		{"ERROR", "NEXT"},
	} {
		node := root
		for _, name := range path {
			node = node.Child(name)
			require.NotNil(t, node, "path %v", path)
		}
		assert.Equal(t, 0, node.Query(), "path %v", path)
		assert.Equal(t, NoCommand, node.Command(), "path %v", path)
	}

	node := root.Child("meas").Child("volt")
	require.NotNil(t, node)
	assert.Equal(t, 1, node.Command())
	assert.Equal(t, NoCommand, node.Query())
	assert.Equal(t, 1, tree.Arity(1))

	assert.Nil(t, root.Child("BAD"))
}

func TestBuildTreeCommonCommand(t *testing.T) {
	tree, err := BuildTree([]Registration{{Path: "*IDN?", Handler: 7}})
	require.NoError(t, err)

	node := tree.Root().Child("*IDN")
	require.NotNil(t, node)
	assert.Equal(t, 7, node.Query())
}

func TestBuildTreeDuplicate(t *testing.T) {
	_, err := BuildTree([]Registration{
		{Path: "SYSTem:VERSion?", Handler: 0},
		{Path: "SYSTem:VERSion?", Handler: 1},
	})
	assert.Error(t, err)

	// A command and a query may share a node.
	_, err = BuildTree([]Registration{
		{Path: "OUTPut:STATe", Handler: 0, Arity: 1},
		{Path: "OUTPut:STATe?", Handler: 1},
	})
	assert.NoError(t, err)
}

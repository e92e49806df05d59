package dsl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-bttree/bttree/internal/bttree/porttype"
)

func TestParseSimpleSequence(t *testing.T) {
	t.Parallel()

	src := `tree main = Sequence {
		Foo(x <- "1")
		Bar(y -> out_var)
	}`
	src_, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, src_.Roots, 1)

	root := src_.Roots[0]
	require.Equal(t, "main", root.Name)
	require.Equal(t, "Sequence", root.Root.TypeName)
	require.Len(t, root.Root.Children, 2)

	foo := root.Root.Children[0]
	require.Equal(t, "Foo", foo.TypeName)
	require.Len(t, foo.PortMaps, 1)
	require.Equal(t, "x", foo.PortMaps[0].NodePort)
	require.True(t, foo.PortMaps[0].Source.Literal)
	require.Equal(t, "1", foo.PortMaps[0].Source.Text)

	bar := root.Root.Children[1]
	require.Equal(t, "Bar", bar.TypeName)
	require.False(t, bar.PortMaps[0].Source.Literal)
	require.Equal(t, "out_var", bar.PortMaps[0].Source.VarName)
	require.Equal(t, porttype.Output, bar.PortMaps[0].Source.Direction)
}

func TestParseMultipleRoots(t *testing.T) {
	t.Parallel()

	src := `
tree helper(in x, out y) = Sequence {
	Identity(x <- x, y -> y)
}

tree main = helper(x <- "5", y -> result)
`
	s, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, s.Roots, 2)

	helper, ok := s.Lookup("helper")
	require.True(t, ok)
	require.Len(t, helper.Ports, 2)
	require.Equal(t, porttype.Input, helper.Ports[0].Direction)
	require.Equal(t, "x", helper.Ports[0].Name)
	require.Equal(t, porttype.Output, helper.Ports[1].Direction)
	require.Equal(t, "y", helper.Ports[1].Name)

	main, ok := s.Lookup("main")
	require.True(t, ok)
	require.Equal(t, "helper", main.Root.TypeName)
	require.Len(t, main.Root.PortMaps, 2)
}

func TestParseVarDeclDesugarsToSetBool(t *testing.T) {
	t.Parallel()

	src := `tree main = Sequence {
		var flag = true
		var other
		Leaf()
	}`
	s, err := Parse(src)
	require.NoError(t, err)
	root := s.Roots[0].Root
	require.Len(t, root.VarDecls, 2)
	require.Equal(t, "flag", root.VarDecls[0].Name)
	require.True(t, root.VarDecls[0].HasInit)
	require.Equal(t, "other", root.VarDecls[1].Name)
	require.False(t, root.VarDecls[1].HasInit)

	// only the initialized var desugars into a synthetic SetBool child,
	// ahead of the explicit Leaf() call.
	require.Len(t, root.Children, 2)
	require.Equal(t, "SetBool", root.Children[0].TypeName)
	require.Equal(t, "value", root.Children[0].PortMaps[0].NodePort)
	require.True(t, root.Children[0].PortMaps[0].Source.Literal)
	require.Equal(t, "true", root.Children[0].PortMaps[0].Source.Text)
	require.Equal(t, "output", root.Children[0].PortMaps[1].NodePort)
	require.Equal(t, "flag", root.Children[0].PortMaps[1].Source.VarName)
	require.Equal(t, porttype.Output, root.Children[0].PortMaps[1].Source.Direction)
	require.Equal(t, "Leaf", root.Children[1].TypeName)
}

func TestParseIfDesugarsToSyntheticIfNode(t *testing.T) {
	t.Parallel()

	src := `tree main = if (Check(v <- x)) {
		OnTrue()
	} else {
		OnFalse()
	}`
	s, err := Parse(src)
	require.NoError(t, err)
	root := s.Roots[0].Root
	require.Equal(t, "if", root.TypeName)
	require.Len(t, root.Children, 3)
	require.Equal(t, "Check", root.Children[0].TypeName)
	require.Equal(t, "Sequence", root.Children[1].TypeName)
	require.Equal(t, "OnTrue", root.Children[1].Children[0].TypeName)
	require.Equal(t, "Sequence", root.Children[2].TypeName)
	require.Equal(t, "OnFalse", root.Children[2].Children[0].TypeName)
}

func TestParseIfWithoutElse(t *testing.T) {
	t.Parallel()

	src := `tree main = if (Check()) { OnTrue() }`
	s, err := Parse(src)
	require.NoError(t, err)
	root := s.Roots[0].Root
	require.Equal(t, "if", root.TypeName)
	require.Len(t, root.Children, 2)
}

func TestParseIfRequiresThenBlock(t *testing.T) {
	t.Parallel()

	_, err := Parse(`tree main = if (Check())`)
	require.Error(t, err)
}

func TestParsePortMapDuplicateKeysPreserved(t *testing.T) {
	t.Parallel()

	// the parser records port maps as written; first-wins de-duplication
	// is a loader responsibility (§4.4 step 3), not a parser one.
	s, err := Parse(`tree main = Foo(x <- "1", x <- "2")`)
	require.NoError(t, err)
	require.Len(t, s.Roots[0].Root.PortMaps, 2)
}

func TestParseMissingTreeKeyword(t *testing.T) {
	t.Parallel()

	_, err := Parse(`nottree main = Foo()`)
	require.Error(t, err)
}

func TestParseMissingEquals(t *testing.T) {
	t.Parallel()

	_, err := Parse(`tree main Foo()`)
	require.Error(t, err)
}

func TestParseEmptySourceIsError(t *testing.T) {
	t.Parallel()

	_, err := Parse(``)
	require.Error(t, err)

	_, err = Parse(`   `)
	require.Error(t, err)
}

func TestParseTrailingWhitespaceTolerated(t *testing.T) {
	t.Parallel()

	_, err := Parse("tree main = Foo()\n\n\t\n")
	require.NoError(t, err)
}

func TestParseTrailingGarbageIsError(t *testing.T) {
	t.Parallel()

	_, err := Parse("tree main = Foo()\nbogus")
	require.Error(t, err)
}

func TestParseEmptyBlockYieldsNoChildren(t *testing.T) {
	t.Parallel()

	s, err := Parse(`tree main = Sequence {}`)
	require.NoError(t, err)
	require.Empty(t, s.Roots[0].Root.Children)
}

func TestParseNestedBlocksAndStringLiteralWithSpecialChars(t *testing.T) {
	t.Parallel()

	s, err := Parse(`tree main = Sequence {
		Fallback {
			Leaf(msg <- "hello, world! <-> not an arrow")
		}
	}`)
	require.NoError(t, err)
	leaf := s.Roots[0].Root.Children[0].Children[0]
	require.Equal(t, "hello, world! <-> not an arrow", leaf.PortMaps[0].Source.Text)
}

func TestParseElseKeywordWordBoundary(t *testing.T) {
	t.Parallel()

	// "elsewhere" must not be mistaken for the "else" keyword.
	s, err := Parse(`tree main = Sequence {
		if (Check()) { A() }
		elsewhere()
	}`)
	require.NoError(t, err)
	require.Len(t, s.Roots[0].Root.Children, 2)
	require.Equal(t, "elsewhere", s.Roots[0].Root.Children[1].TypeName)
}

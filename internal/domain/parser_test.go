package domain

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestParseLines_TaskAddedWithOutput(t *testing.T) {
	tree := ParseLines([]string{"Task Added: build", "hello", "Finished: build"})

	require.Equal(t, 1, tree.Len())
	n := tree.Nodes[0]
	assert.Equal(t, "build", n.Task)
	assert.Equal(t, []Flag{FlagAdded}, n.Flags)
	assert.Equal(t, "hello\n", n.Output)
	assert.Nil(t, n.Parent)
	assert.Empty(t, n.Children)
}

func TestParseLines_ExecutingOverwritesOpenOutput(t *testing.T) {
	tree := ParseLines([]string{
		"✨ Starting task: compile",
		"Executing: gcc foo.c",
		"Finished: compile",
	})

	require.Equal(t, 2, tree.Len())
	assert.Equal(t, "compile", tree.Nodes[0].Task)
	assert.Equal(t, "Executing: gcc foo.c", tree.Nodes[0].Output)
	assert.Equal(t, []Flag{FlagStarting}, tree.Nodes[0].Flags)
	assert.Equal(t, []int{1}, tree.Nodes[0].Children)

	assert.Equal(t, "gcc foo.c", tree.Nodes[1].Task)
	assert.Equal(t, intPtr(0), tree.Nodes[1].Parent)
	assert.Equal(t, []Flag{FlagExecuting}, tree.Nodes[1].Flags)
	assert.Equal(t, "", tree.Nodes[1].Output)
}

func TestParseLines_ExecutingDiscardsAccumulatedOutput(t *testing.T) {
	tree := ParseLines([]string{
		"✨ Starting task: compile",
		"line one",
		"line two",
		"[12:00] Executing: make all",
	})

	require.Equal(t, 2, tree.Len())
	assert.Equal(t, "[12:00] Executing: make all", tree.Nodes[0].Output)
	assert.Equal(t, "make all", tree.Nodes[1].Task)
}

func TestParseLines_ExecutingWithoutOpenTask(t *testing.T) {
	tree := ParseLines([]string{"Executing: ls", "out"})

	require.Equal(t, 1, tree.Len())
	assert.Nil(t, tree.Nodes[0].Parent)
	assert.Equal(t, "out\n", tree.Nodes[0].Output)
}

func TestParseLines_FinishedWithoutOpenTaskIsNoop(t *testing.T) {
	tree := ParseLines([]string{"Finished: nothing", "stray", "Finished: again"})
	assert.Equal(t, 0, tree.Len())

	tree = ParseLines([]string{"Task Added: a", "Finished: a", "Finished: a", "Task Added: b"})
	require.Equal(t, 2, tree.Len())
	assert.Nil(t, tree.Nodes[1].Parent)
	assert.Equal(t, []int{0, 1}, tree.Roots())
}

func TestParseLines_Nesting(t *testing.T) {
	tree := ParseLines([]string{
		"Task Added: root",
		"✨ Starting task: child",
		"Executing: grandchild",
		"g out",
		"Finished: grandchild",
		"c out",
		"Finished: child",
		"Task Added: sibling",
		"Finished: sibling",
		"r out",
		"Finished: root",
		"dropped",
	})

	require.Equal(t, 4, tree.Len())
	assert.Equal(t, []int{1, 3}, tree.Nodes[0].Children)
	assert.Equal(t, []int{2}, tree.Nodes[1].Children)
	assert.Equal(t, intPtr(0), tree.Nodes[3].Parent)
	assert.Equal(t, "r out\n", tree.Nodes[0].Output)
	// The overwritten line carries no trailing newline.
	assert.Equal(t, "Executing: grandchildc out\n", tree.Nodes[1].Output)
	assert.Equal(t, "g out\n", tree.Nodes[2].Output)
	assert.Equal(t, 2, tree.Depth(2))
	require.NoError(t, tree.Validate())
}

func TestParseLines_Precedence(t *testing.T) {
	tests := []struct {
		name string
		line string
		flag Flag
		task string
	}{
		{"added beats starting", "Task Added: x ✨ Starting task: y", FlagAdded, "x ✨ Starting task: y"},
		{"added beats finished", "Finished: Task Added:z", FlagAdded, "z"},
		{"starting beats executing", "✨ Starting task: Executing: a", FlagStarting, "Executing: a"},
		{"prefix anywhere in line", "2024-01-01 ✨ Starting task: deploy", FlagStarting, "deploy"},
		{"empty task text", "Task Added:", FlagAdded, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := ParseLines([]string{tt.line})
			require.Equal(t, 1, tree.Len())
			assert.Equal(t, []Flag{tt.flag}, tree.Nodes[0].Flags)
			assert.Equal(t, tt.task, tree.Nodes[0].Task)
		})
	}
}

func TestParseLines_FinishedBeatsExecuting(t *testing.T) {
	tree := ParseLines([]string{"Task Added: a", "Executing: Finished: a", "after"})

	require.Equal(t, 1, tree.Len())
	assert.Equal(t, "", tree.Nodes[0].Output)
}

func TestParseLines_UnmatchedLinesAppendNewline(t *testing.T) {
	tree := ParseLines([]string{"Task Added: a", "", "x"})

	require.Equal(t, 1, tree.Len())
	assert.Equal(t, "\nx\n", tree.Nodes[0].Output)
}

func TestParser_CurrentTracksCursor(t *testing.T) {
	p := NewParser()
	assert.Nil(t, p.Current())

	p.Feed("Task Added: a")
	assert.Equal(t, intPtr(0), p.Current())

	p.Feed("Executing: b")
	assert.Equal(t, intPtr(1), p.Current())

	p.Feed("Finished: b")
	assert.Equal(t, intPtr(0), p.Current())

	p.Feed("Finished: a")
	assert.Nil(t, p.Current())
}

func TestParse_Reader(t *testing.T) {
	input := "Task Added: build\r\nhello\r\nFinished: build\nTask Added: last\nno newline"

	tree, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Equal(t, 2, tree.Len())
	assert.Equal(t, "build", tree.Nodes[0].Task)
	assert.Equal(t, "hello\n", tree.Nodes[0].Output)
	assert.Equal(t, "no newline\n", tree.Nodes[1].Output)
	assert.Equal(t, 5, tree.Lines)
}

func TestParse_LoneCarriageReturnOnLastLineKept(t *testing.T) {
	tree, err := Parse(strings.NewReader("Task Added: a\r\nlast\r"))

	require.NoError(t, err)
	require.Equal(t, 1, tree.Len())
	assert.Equal(t, "a", tree.Nodes[0].Task)
	assert.Equal(t, "last\r\n", tree.Nodes[0].Output)
}

func TestParse_Empty(t *testing.T) {
	tree, err := Parse(strings.NewReader(""))

	require.NoError(t, err)
	assert.Equal(t, 0, tree.Len())
}

type failingReader struct {
	data string
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestParse_ReadErrorReturnsNoTree(t *testing.T) {
	readErr := errors.New("disk fault")
	r := &failingReader{data: "Task Added: a\nhello\n", err: readErr}

	tree, err := Parse(r)

	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
	assert.Nil(t, tree)
}

func TestParse_UnexpectedEOFIsError(t *testing.T) {
	tree, err := Parse(&failingReader{data: "x", err: io.ErrUnexpectedEOF})

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Nil(t, tree)
}

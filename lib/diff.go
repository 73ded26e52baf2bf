package svnlook

import (
	"fmt"
	"strconv"
)

// DiffBuilder composes the flag set for one `svnlook diff` invocation.
// Options map one-to-one onto the tool's flags; Spawn launches the
// finished command.
type DiffBuilder struct {
	repos    *Repos
	revision int
	args     []string
}

// NoDiffDeleted suppresses diff output for deleted files.
func (b *DiffBuilder) NoDiffDeleted() *DiffBuilder {
	b.args = append(b.args, "--no-diff-deleted")
	return b
}

// NoDiffAdded suppresses diff output for added files.
func (b *DiffBuilder) NoDiffAdded() *DiffBuilder {
	b.args = append(b.args, "--no-diff-added")
	return b
}

// DiffCopyFrom diffs copied files against their copy source.
func (b *DiffBuilder) DiffCopyFrom() *DiffBuilder {
	b.args = append(b.args, "--diff-copy-from")
	return b
}

// IgnoreProperties excludes property changes from the diff.
func (b *DiffBuilder) IgnoreProperties() *DiffBuilder {
	b.args = append(b.args, "--ignore-properties")
	return b
}

// PropertiesOnly shows only property changes.
func (b *DiffBuilder) PropertiesOnly() *DiffBuilder {
	b.args = append(b.args, "--properties-only")
	return b
}

// IgnoreWhitespaceChange ignores changes in the amount of whitespace.
func (b *DiffBuilder) IgnoreWhitespaceChange() *DiffBuilder {
	b.args = append(b.args, "-x", "-b")
	return b
}

// IgnoreAllWhitespace ignores all whitespace.
func (b *DiffBuilder) IgnoreAllWhitespace() *DiffBuilder {
	b.args = append(b.args, "-x", "-w")
	return b
}

// IgnoreEOLStyle ignores changes in line-ending style.
func (b *DiffBuilder) IgnoreEOLStyle() *DiffBuilder {
	b.args = append(b.args, "-x", "--ignore-eol-style")
	return b
}

// ShowCFunctionNames annotates hunks with the enclosing C function.
func (b *DiffBuilder) ShowCFunctionNames() *DiffBuilder {
	b.args = append(b.args, "-x", "-p")
	return b
}

// ContextLines sets the number of context lines around each hunk.
func (b *DiffBuilder) ContextLines(lines int) *DiffBuilder {
	b.args = append(b.args, "-x", fmt.Sprintf("-U%d", lines))
	return b
}

// Args returns the argument list the builder would spawn with.
func (b *DiffBuilder) Args() []string {
	args := append([]string{"diff"}, b.args...)
	args = append(args, "-r", strconv.Itoa(b.revision), "--", b.repos.Path)
	return args
}

// Spawn launches the composed diff command. The output is a raw byte
// stream the caller must Close.
func (b *DiffBuilder) Spawn() (*Command, error) {
	return Spawn(b.repos.executable(), b.Args(), b.repos.Stderr)
}

// Package rcaddon accumulates the shell snippets contributed by install steps
// into the generated RC addon file.
//
// The addon is write-only: it is regenerated from scratch on every run and
// only ever sourced by the shell, never parsed back.
package rcaddon

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/lithammer/dedent"
)

// Builder is an append-only sequence of text blocks
type Builder struct {
	blocks []string
}

// New creates an empty builder
func New() *Builder {
	return &Builder{}
}

// Write appends a block with its common indentation removed. The leading
// newline of a raw string literal is dropped and the block always ends with
// exactly one newline. Blank text is ignored.
func (b *Builder) Write(text string) {
	text = strings.TrimPrefix(dedent.Dedent(text), "\n")
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return
	}
	b.blocks = append(b.blocks, text+"\n")
}

// Writef formats and appends a block
func (b *Builder) Writef(format string, args ...interface{}) {
	b.Write(fmt.Sprintf(format, args...))
}

// WriteRaw appends text untouched apart from a guaranteed trailing newline.
// Used for user-maintained snippets that must be copied verbatim.
func (b *Builder) WriteRaw(text string) {
	if text == "" {
		return
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	b.blocks = append(b.blocks, text)
}

// SkipLine appends an empty line to separate sections
func (b *Builder) SkipLine() {
	b.blocks = append(b.blocks, "\n")
}

// Len returns the number of blocks written so far
func (b *Builder) Len() int {
	return len(b.blocks)
}

// String returns the addon content verbatim
func (b *Builder) String() string {
	return strings.Join(b.blocks, "")
}

// WriteFile overwrites path with the addon content
func (b *Builder) WriteFile(fs filesystem.FS, path string) error {
	if err := fs.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write rc addon %s", path)
	}
	return nil
}

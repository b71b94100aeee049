package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestRenderer() (*Renderer, *bytes.Buffer) {
	r := NewRenderer(true)
	var buf bytes.Buffer
	r.SetWriter(&buf)
	return r, &buf
}

func TestPrint_AddsTrailingNewline(t *testing.T) {
	r, buf := newTestRenderer()
	r.Print("hello")
	assert.Equal(t, "hello\n", buf.String())

	buf.Reset()
	r.Print("hello\n")
	assert.Equal(t, "hello\n", buf.String())
}

func TestDiff(t *testing.T) {
	r, buf := newTestRenderer()
	r.Diff("a\nb\nc", "a\nx\nc")
	assert.Equal(t, "  a\n- b\n+ x\n  c\n", buf.String())
}

func TestDiff_LengthMismatch(t *testing.T) {
	r, buf := newTestRenderer()
	r.Diff("a", "a\nb")
	assert.Contains(t, buf.String(), "+ b\n")
}

package main

import (
	"testing"

	"sexprgen/pkg/emit"
)

func TestRenderTextWithTrailingSpace(t *testing.T) {
	records := []emit.Record{
		{Kind: emit.KindText, Text: "int", Modifiers: emit.ModSpaceAfter},
		{Kind: emit.KindText, Text: "x"},
	}
	if got := render(records); got != "int x" {
		t.Fatalf("got %q, want %q", got, "int x")
	}
}

func TestRenderParensAndListSeparator(t *testing.T) {
	records := []emit.Record{
		{Kind: emit.KindText, Text: "call"},
		{Kind: emit.KindLangToken, Modifiers: emit.ModOpenParen},
		{Kind: emit.KindText, Text: "a"},
		{Kind: emit.KindLangToken, Modifiers: emit.ModListSeparator},
		{Kind: emit.KindText, Text: "b"},
		{Kind: emit.KindLangToken, Modifiers: emit.ModCloseParen},
	}
	if got := render(records); got != "call(a, b)" {
		t.Fatalf("got %q, want %q", got, "call(a, b)")
	}
}

func TestRenderBlockAndStatementTerminator(t *testing.T) {
	records := []emit.Record{
		{Kind: emit.KindLangToken, Modifiers: emit.ModOpenBlock},
		{Kind: emit.KindText, Text: "doThing()"},
		{Kind: emit.KindLangToken, Modifiers: emit.ModEndStatement},
		{Kind: emit.KindLangToken, Modifiers: emit.ModCloseBlock},
	}
	want := " {\ndoThing();\n}\n"
	if got := render(records); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderSpliceRecursesIntoReferencedOutput(t *testing.T) {
	inner := &emit.Output{Source: []emit.Record{{Kind: emit.KindText, Text: "injected"}}}
	records := []emit.Record{
		{Kind: emit.KindText, Text: "before"},
		{Kind: emit.KindSplice, SpliceRef: inner},
		{Kind: emit.KindText, Text: "after"},
	}
	if got := render(records); got != "beforeinjectedafter" {
		t.Fatalf("got %q, want %q", got, "beforeinjectedafter")
	}
}

func TestRenderSpliceWithNilRefIsSkipped(t *testing.T) {
	records := []emit.Record{
		{Kind: emit.KindText, Text: "a"},
		{Kind: emit.KindSplice, SpliceRef: nil},
		{Kind: emit.KindText, Text: "b"},
	}
	if got := render(records); got != "ab" {
		t.Fatalf("got %q, want %q", got, "ab")
	}
}

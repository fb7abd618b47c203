package emit

import (
	"testing"

	"sexprgen/pkg/token"
)

func TestAppendTextAndLangToken(t *testing.T) {
	var buf []Record
	tok := token.Token{Kind: token.KindSymbol, Contents: "x"}
	AppendText(&buf, "int", ModSpaceAfter, tok)
	AppendLangToken(&buf, ModOpenParen, tok)

	if len(buf) != 2 {
		t.Fatalf("got %d records, want 2", len(buf))
	}
	if buf[0].Kind != KindText || buf[0].Text != "int" || buf[0].Modifiers != ModSpaceAfter {
		t.Errorf("unexpected text record: %+v", buf[0])
	}
	if buf[1].Kind != KindLangToken || buf[1].Modifiers != ModOpenParen {
		t.Errorf("unexpected lang-token record: %+v", buf[1])
	}
}

func TestAppendSpliceWritesBothBuffers(t *testing.T) {
	var out Output
	sub := &Output{}
	tok := token.Token{Kind: token.KindOpenParen}
	AppendSplice(&out, sub, tok)

	if len(out.Source) != 1 || len(out.Header) != 1 {
		t.Fatalf("splice should append to both buffers, got source=%d header=%d", len(out.Source), len(out.Header))
	}
	if out.Source[0].Kind != KindSplice || out.Source[0].SpliceRef != sub {
		t.Errorf("source splice record malformed: %+v", out.Source[0])
	}
	if out.Header[0].Kind != KindSplice || out.Header[0].SpliceRef != sub {
		t.Errorf("header splice record malformed: %+v", out.Header[0])
	}
}

func TestAddModifier(t *testing.T) {
	rec := Record{Modifiers: ModSpaceAfter}
	AddModifier(&rec, ModSpaceBefore)
	if rec.Modifiers&ModSpaceAfter == 0 || rec.Modifiers&ModSpaceBefore == 0 {
		t.Fatalf("expected both modifiers set, got %b", rec.Modifiers)
	}
}

func TestPushBackAllPreservesOrder(t *testing.T) {
	var buf []Record
	src := []Record{{Kind: KindText, Text: "a"}, {Kind: KindText, Text: "b"}}
	AppendText(&buf, "prefix", ModNone, token.Token{})
	PushBackAll(&buf, src)
	if len(buf) != 3 || buf[1].Text != "a" || buf[2].Text != "b" {
		t.Fatalf("unexpected buffer after PushBackAll: %+v", buf)
	}
}

func TestModifierBitsAreDistinct(t *testing.T) {
	flags := []Modifier{
		ModOpenBlock, ModCloseBlock, ModListSeparator, ModEndStatement,
		ModOpenParen, ModCloseParen, ModOpenList, ModCloseList,
		ModSpaceBefore, ModSpaceAfter, ModConvertTypeName, ModConvertVariableName,
	}
	seen := Modifier(0)
	for _, f := range flags {
		if seen&f != 0 {
			t.Fatalf("modifier %b overlaps with previously seen bits %b", f, seen)
		}
		seen |= f
	}
}

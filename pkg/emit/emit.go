// Package emit holds the append-only GeneratorOutput buffers and the
// emission records the rest of the core appends to them. No component in
// this module ever re-reads a buffer for content; a downstream writer
// (outside this module's scope, per spec) consumes them.
package emit

import "sexprgen/pkg/token"

// Modifier is a bitmask of writer hints attached to a Record. Several may
// apply to the same record (e.g. SpaceAfter on a ConvertTypeName record).
type Modifier uint32

const (
	ModNone Modifier = 0
	ModOpenBlock Modifier = 1 << iota
	ModCloseBlock
	ModListSeparator
	ModEndStatement
	ModOpenParen
	ModCloseParen
	ModOpenList
	ModCloseList
	ModSpaceBefore
	ModSpaceAfter
	ModConvertTypeName
	ModConvertVariableName
	// modSplice is internal: set only via AppendSplice, never by callers,
	// mirroring the original's "no other modifiers are valid" comment.
	modSplice
)

// Kind distinguishes the three EmissionRecord variants. Exhaustive
// switches in the writer (and in this module's own tests) should match on
// this rather than on zero-value field inspection.
type Kind int8

const (
	KindText Kind = iota
	KindLangToken
	KindSplice
)

// Record is the tagged-variant EmissionRecord from the data model: exactly
// one of Text (KindText), Modifiers alone (KindLangToken), or SpliceRef
// (KindSplice) carries meaning, selected by Kind. Every record blames a
// Token for diagnostics.
type Record struct {
	Kind      Kind
	Text      string
	Modifiers Modifier
	Blame     token.Token
	SpliceRef *Output
}

// Output holds the two ordered emission sequences for one definition or
// sub-expression. Append-only during generation; a downstream writer
// consumes both and the splice graph they form.
type Output struct {
	Source []Record
	Header []Record
}

// AppendText appends a literal text record to buf, blamed on tok.
func AppendText(buf *[]Record, text string, modifiers Modifier, tok token.Token) *Record {
	*buf = append(*buf, Record{Kind: KindText, Text: text, Modifiers: modifiers, Blame: tok})
	return &(*buf)[len(*buf)-1]
}

// AppendLangToken appends a pure lang-token record (no text) to buf,
// blamed on tok.
func AppendLangToken(buf *[]Record, modifiers Modifier, tok token.Token) *Record {
	*buf = append(*buf, Record{Kind: KindLangToken, Modifiers: modifiers, Blame: tok})
	return &(*buf)[len(*buf)-1]
}

// AppendSplice appends a splice record referencing spliceOutput to both the
// source and header buffers of out, preserving cross-buffer ordering: a
// downstream writer that walks both sequences will find the splice marker
// at the same logical position in each, even if spliceOutput only
// contributes to one of them.
//
// The referenced Output is weakly held: it must outlive the writer pass.
func AppendSplice(out *Output, spliceOutput *Output, tok token.Token) {
	rec := Record{Kind: KindSplice, Modifiers: modSplice, Blame: tok, SpliceRef: spliceOutput}
	out.Source = append(out.Source, rec)
	out.Header = append(out.Header, rec)
}

// AddModifier ORs an additional modifier flag onto rec (used, e.g., to add
// a trailing space after a type once its full lowering is known).
func AddModifier(rec *Record, flag Modifier) {
	rec.Modifiers |= flag
}

// PushBackAll appends every record in src to buf, preserving order.
func PushBackAll(buf *[]Record, src []Record) {
	*buf = append(*buf, src...)
}

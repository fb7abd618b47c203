package main

import "sexprgen/pkg/emit"

// render turns an ordered emission sequence into target-language text. The
// real downstream writer is an external collaborator per the core's scope;
// this is just enough of one to let the CLI host produce a file a reader
// can look at.
func render(records []emit.Record) string {
	var out []byte
	for _, rec := range records {
		if rec.Modifiers&emit.ModSpaceBefore != 0 {
			out = append(out, ' ')
		}
		switch rec.Kind {
		case emit.KindText:
			out = append(out, rec.Text...)
		case emit.KindSplice:
			if rec.SpliceRef != nil {
				out = append(out, render(rec.SpliceRef.Source)...)
			}
		}
		if rec.Modifiers&emit.ModOpenBlock != 0 {
			out = append(out, " {\n"...)
		}
		if rec.Modifiers&emit.ModCloseBlock != 0 {
			out = append(out, "}\n"...)
		}
		if rec.Modifiers&emit.ModOpenParen != 0 {
			out = append(out, '(')
		}
		if rec.Modifiers&emit.ModCloseParen != 0 {
			out = append(out, ')')
		}
		if rec.Modifiers&emit.ModOpenList != 0 {
			out = append(out, '[')
		}
		if rec.Modifiers&emit.ModCloseList != 0 {
			out = append(out, ']')
		}
		if rec.Modifiers&emit.ModListSeparator != 0 {
			out = append(out, ", "...)
		}
		if rec.Modifiers&emit.ModEndStatement != 0 {
			out = append(out, ";\n"...)
		}
		if rec.Modifiers&emit.ModSpaceAfter != 0 {
			out = append(out, ' ')
		}
	}
	return string(out)
}

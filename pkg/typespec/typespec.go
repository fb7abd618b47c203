// Package typespec lowers the nested type-specifier mini-language
// (e.g. "(* (const char))", "(<> vector T)", "([] 10 float)",
// "(in std vector)") into two ordered emission sequences: what precedes the
// identifier (typeOutput) and what follows it (afterNameOutput, array
// subscripts). This is the recursive heart of the codegen core.
package typespec

import (
	"sexprgen/pkg/diag"
	"sexprgen/pkg/emit"
	"sexprgen/pkg/navigator"
	"sexprgen/pkg/token"
)

// Lower converts the type expression starting at startTokenIndex into
// typeOutput/afterNameOutput. typeOutput and afterNameOutput must be
// distinct slices; passing the same backing slice for both is an internal
// usage error; Lower reports it and fails.
func Lower(tokens []token.Token, startTokenIndex int, allowArray bool,
	typeOutput, afterNameOutput *[]emit.Record, rep *diag.Reporter) bool {
	if typeOutput == afterNameOutput {
		rep.Log("Error: Lower() requires a separate output buffer for after-name types")
		return false
	}
	return lowerRecursive(tokens, startTokenIndex, allowArray, typeOutput, afterNameOutput, rep)
}

func lowerRecursive(tokens []token.Token, start int, allowArray bool,
	typeOutput, afterNameOutput *[]emit.Record, rep *diag.Reporter) bool {
	if start < 0 || start >= len(tokens) {
		rep.Log("Error: Lower() received an out-of-range token index")
		return false
	}

	leaf := tokens[start]
	if leaf.Kind == token.KindSymbol {
		if token.IsSpecialSymbol(leaf, rep.Logf) {
			errf(rep, leaf, "types must not be : keywords or & sentinels; a generator may be "+
				"misinterpreting the special symbol, or you have made a mistake")
			return false
		}
		emit.AppendText(typeOutput, leaf.Contents, emit.ModConvertTypeName, leaf)
		return true
	}

	// Compound form: (head arg...)
	invocation := tokens[start+1]
	if invocation.Kind != token.KindSymbol {
		errf(rep, invocation, "C/C++ type parser expected a symbol, got %s", invocation.Kind)
		return false
	}
	end, ok := navigator.MatchCloseParen(tokens, start)
	if !ok {
		errf(rep, tokens[start], "unbalanced type specifier")
		return false
	}

	switch invocation.Contents {
	case "const":
		if !expectNumArguments(tokens, start, end, 2, rep) {
			return false
		}
		emit.AppendText(typeOutput, "const", emit.ModSpaceAfter, invocation)
		typeIndex, ok := expectArgument(tokens, start, 1, end, "const requires a type", rep)
		if !ok {
			return false
		}
		return lowerRecursive(tokens, typeIndex, allowArray, typeOutput, afterNameOutput, rep)

	case "*", "&":
		if !expectNumArguments(tokens, start, end, 2, rep) {
			return false
		}
		typeIndex, ok := expectArgument(tokens, start, 1, end, "expected type", rep)
		if !ok {
			return false
		}
		if !lowerRecursive(tokens, typeIndex, allowArray, typeOutput, afterNameOutput, rep) {
			return false
		}
		emit.AppendText(typeOutput, invocation.Contents, emit.ModNone, invocation)
		return true

	case "&&", "rval-ref-to":
		if !expectNumArguments(tokens, start, end, 2, rep) {
			return false
		}
		typeIndex, ok := expectArgument(tokens, start, 1, end, "expected type", rep)
		if !ok {
			return false
		}
		if !lowerRecursive(tokens, typeIndex, allowArray, typeOutput, afterNameOutput, rep) {
			return false
		}
		emit.AppendText(typeOutput, "&&", emit.ModNone, invocation)
		return true

	case "<>":
		nameIndex, ok := expectArgument(tokens, start, 1, end, "expected template name", rep)
		if !ok {
			return false
		}
		if !lowerRecursive(tokens, nameIndex, allowArray, typeOutput, afterNameOutput, rep) {
			return false
		}
		emit.AppendText(typeOutput, "<", emit.ModNone, invocation)
		for param := navigator.NextArgument(tokens, nameIndex, end); param < end; param = navigator.NextArgument(tokens, param, end) {
			// Template parameters never allow arrays: arrays cannot be
			// declared there, and allowing them would misdirect the
			// emission into the wrong buffer.
			if !lowerRecursive(tokens, param, false, typeOutput, afterNameOutput, rep) {
				return false
			}
			if !navigator.IsLastArgument(tokens, param, end) {
				emit.AppendLangToken(typeOutput, emit.ModListSeparator, tokens[param])
			}
		}
		emit.AppendText(typeOutput, ">", emit.ModNone, invocation)
		return true

	case "[]":
		if !allowArray {
			errf(rep, tokens[start], "cannot declare array in this context; use a pointer instead")
			return false
		}
		firstArg, ok := expectArgument(tokens, start, 1, end, "expected type or array size", rep)
		if !ok {
			return false
		}
		sizeIsFirstArg := tokens[firstArg].Kind == token.KindSymbol && len(tokens[firstArg].Contents) > 0 && isDigit(tokens[firstArg].Contents[0])
		wantArgs := 2
		if sizeIsFirstArg {
			wantArgs = 3
		}
		if !expectNumArguments(tokens, start, end, wantArgs, rep) {
			return false
		}
		typeIndex := firstArg
		if sizeIsFirstArg {
			typeIndex, ok = expectArgument(tokens, start, 2, end, "expected array element type", rep)
			if !ok {
				return false
			}
			emit.AppendText(afterNameOutput, "[", emit.ModNone, invocation)
			emit.AppendText(afterNameOutput, tokens[firstArg].Contents, emit.ModNone, tokens[firstArg])
			emit.AppendText(afterNameOutput, "]", emit.ModNone, invocation)
		} else {
			emit.AppendText(afterNameOutput, "[]", emit.ModNone, invocation)
		}
		// The element type is lowered after the brackets are appended so a
		// nested array dimension is appended after this one, preserving
		// outer-to-inner bracket order.
		return lowerRecursive(tokens, typeIndex, true, typeOutput, afterNameOutput, rep)

	case "in":
		firstScope, ok := expectArgument(tokens, start, 1, end, "expected scope", rep)
		if !ok {
			return false
		}
		for scopeTok := firstScope; scopeTok < end; scopeTok = navigator.NextArgument(tokens, scopeTok, end) {
			if !lowerRecursive(tokens, scopeTok, false, typeOutput, afterNameOutput, rep) {
				return false
			}
			if !navigator.IsLastArgument(tokens, scopeTok, end) {
				emit.AppendText(typeOutput, "::", emit.ModNone, tokens[scopeTok])
			}
		}
		return true

	default:
		errf(rep, invocation, "unknown C/C++ type specifier %q", invocation.Contents)
		return false
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func expectArgument(tokens []token.Token, start, n, end int, message string, rep *diag.Reporter) (int, bool) {
	idx := navigator.ArgumentIndex(tokens, start, n, end)
	if idx == -1 {
		errf(rep, tokens[end], "missing arguments: %s", message)
		return -1, false
	}
	return idx, true
}

func expectNumArguments(tokens []token.Token, start, end, expected int, rep *diag.Reporter) bool {
	got := navigator.NumArguments(tokens, start, end)
	if got != expected {
		errf(rep, tokens[start], "expected %d arguments, got %d (counts include invocation name)", expected, got)
		return false
	}
	return true
}

func errf(rep *diag.Reporter, t token.Token, format string, args ...any) {
	rep.ErrorAtTokenf(t.Line, t.Column, t.Contents, format, args...)
}

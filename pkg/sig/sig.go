// Package sig parses defun-style argument lists — a parenthesized list of
// alternating name Symbols and type-specifier tokens, optionally ending with
// "&return <type>" — and emits the corresponding parameter list and return
// type prefix.
package sig

import (
	"sexprgen/pkg/diag"
	"sexprgen/pkg/emit"
	"sexprgen/pkg/navigator"
	"sexprgen/pkg/token"
	"sexprgen/pkg/typespec"
)

// ArgumentTokens records, per parameter, the index of its name Symbol and
// the index where its type specifier begins (a Symbol or an OpenParen
// starting a nested type expression).
type ArgumentTokens struct {
	NameIndex     int
	StartTypeIndex int
}

type parseState int8

const (
	stateName parseState = iota
	stateType
	stateReturnType
)

// ParseSignature runs the state machine over the argument list opened at
// argsIndex (argsIndex must point at the OpenParen of that list). It
// returns the parsed arguments and the index where an explicit return type
// begins, or -1 if the return type is implicit.
func ParseSignature(tokens []token.Token, argsIndex int, rep *diag.Reporter) ([]ArgumentTokens, int, bool) {
	endArgs, ok := navigator.MatchCloseParen(tokens, argsIndex)
	if !ok {
		errf(rep, tokens[argsIndex], "unbalanced argument list")
		return nil, -1, false
	}

	var arguments []ArgumentTokens
	returnTypeStart := -1
	state := stateName
	var pending ArgumentTokens

	for i := argsIndex + 1; i < endArgs; i++ {
		current := tokens[i]

		switch state {
		case stateReturnType:
			returnTypeStart = i
			return arguments, returnTypeStart, true

		case stateName:
			if current.Kind == token.KindSymbol && current.Contents == "&return" {
				if i+1 >= endArgs {
					errf(rep, current, "&return expected a type")
					return nil, -1, false
				}
				state = stateReturnType
				continue
			}
			if current.Kind != token.KindSymbol {
				errf(rep, current, "defun expected a parameter name, got %s", current.Kind)
				return nil, -1, false
			}
			pending = ArgumentTokens{NameIndex: i}
			state = stateType
			if i+1 >= endArgs {
				errf(rep, current, "expected argument type to follow")
				return nil, -1, false
			}

		case stateType:
			if current.Kind == token.KindSymbol && token.IsSpecialSymbol(current, rep.Logf) {
				errf(rep, current, "defun expected argument type, got symbol or marker %q", current.Contents)
				return nil, -1, false
			}
			if current.Kind != token.KindOpenParen && current.Kind != token.KindSymbol {
				errf(rep, current, "defun expected argument type, got %s", current.Kind)
				return nil, -1, false
			}
			pending.StartTypeIndex = i
			arguments = append(arguments, pending)
			pending = ArgumentTokens{}
			state = stateName
			if current.Kind == token.KindOpenParen {
				if closeIdx, ok := navigator.MatchCloseParen(tokens, i); ok {
					i = closeIdx
				}
			}
		}
	}

	return arguments, returnTypeStart, true
}

// OutputReturnType emits the return type prefix (e.g. "int ") into source
// and/or header. If returnTypeStart is -1 the type is implicit and "void "
// is emitted, blamed on the invocation's opening paren. Tokens beyond the
// explicit return type are flagged as extraneous and fail generation.
func OutputReturnType(tokens []token.Token, out *emit.Output, returnTypeStart, invocationStart, endArgsIndex int,
	outputSource, outputHeader bool, rep *diag.Reporter) bool {
	if returnTypeStart == -1 {
		if outputSource {
			emit.AppendText(&out.Source, "void", emit.ModSpaceAfter, tokens[invocationStart])
		}
		if outputHeader {
			emit.AppendText(&out.Header, "void", emit.ModSpaceAfter, tokens[invocationStart])
		}
		return true
	}

	returnTypeEnd := returnTypeStart
	if tokens[returnTypeStart].Kind == token.KindOpenParen {
		if closeIdx, ok := navigator.MatchCloseParen(tokens, returnTypeStart); ok {
			returnTypeEnd = closeIdx
		}
	}
	if returnTypeEnd+1 < endArgsIndex {
		errf(rep, tokens[returnTypeEnd+1], "extraneous arguments after &return type")
		return false
	}

	var typeOutput, afterNameOutput []emit.Record
	if !typespec.Lower(tokens, returnTypeStart, false, &typeOutput, &afterNameOutput, rep) {
		return false
	}
	if len(afterNameOutput) != 0 {
		rep.Log("internal error: return types cannot produce after-name output; the signature " +
			"parser should never have allowed an array return type")
		return false
	}
	emit.AddModifier(&typeOutput[len(typeOutput)-1], emit.ModSpaceAfter)

	if outputSource {
		emit.PushBackAll(&out.Source, typeOutput)
	}
	if outputHeader {
		emit.PushBackAll(&out.Header, typeOutput)
	}
	return true
}

// OutputParameters emits the parameter list ("int a, int b") into source
// and/or header.
func OutputParameters(tokens []token.Token, out *emit.Output, arguments []ArgumentTokens,
	outputSource, outputHeader bool, rep *diag.Reporter) bool {
	for i, arg := range arguments {
		var typeOutput, afterNameOutput []emit.Record
		if !typespec.Lower(tokens, arg.StartTypeIndex, true, &typeOutput, &afterNameOutput, rep) {
			return false
		}
		emit.AddModifier(&typeOutput[len(typeOutput)-1], emit.ModSpaceAfter)

		nameToken := tokens[arg.NameIndex]
		if outputSource {
			emit.PushBackAll(&out.Source, typeOutput)
			emit.AppendText(&out.Source, nameToken.Contents, emit.ModConvertVariableName, nameToken)
			emit.PushBackAll(&out.Source, afterNameOutput)
		}
		if outputHeader {
			emit.PushBackAll(&out.Header, typeOutput)
			emit.AppendText(&out.Header, nameToken.Contents, emit.ModConvertVariableName, nameToken)
			emit.PushBackAll(&out.Header, afterNameOutput)
		}

		if i+1 < len(arguments) {
			if outputSource {
				emit.AppendLangToken(&out.Source, emit.ModListSeparator, nameToken)
			}
			if outputHeader {
				emit.AppendLangToken(&out.Header, emit.ModListSeparator, nameToken)
			}
		}
	}
	return true
}

// CompileTimeFunctionSignatureMatches compares a macro-expansion-time
// argument list against an expected signature: any expected token that is
// a 'name placeholder Symbol is a wildcard that matches anything.
//
// This supplements spec.md, which only mentions the 'name convention in
// passing; it is grounded on the original implementation's
// CompileTimeFunctionSignatureMatches.
func CompileTimeFunctionSignatureMatches(providedArgs []token.Token, expectedSignature []token.Token, rep *diag.Reporter) bool {
	if len(providedArgs) != len(expectedSignature) {
		rep.Logf("arguments do not match expected function signature: got %d tokens, need %d",
			len(providedArgs), len(expectedSignature))
		return false
	}
	for i, expected := range expectedSignature {
		if expected.Kind == token.KindSymbol && len(expected.Contents) > 0 && expected.Contents[0] == '\'' {
			continue
		}
		provided := providedArgs[i]
		if expected.Kind != provided.Kind || expected.Contents != provided.Contents {
			rep.Logf("arguments do not match expected function signature at position %d: got %q, want %q",
				i, provided.Contents, expected.Contents)
			return false
		}
	}
	return true
}

func errf(rep *diag.Reporter, t token.Token, format string, args ...any) {
	rep.ErrorAtTokenf(t.Line, t.Column, t.Contents, format, args...)
}

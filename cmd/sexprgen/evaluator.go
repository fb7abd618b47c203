package main

import (
	"sexprgen/pkg/diag"
	"sexprgen/pkg/emit"
	"sexprgen/pkg/genv"
	"sexprgen/pkg/navigator"
	"sexprgen/pkg/stmt"
	"sexprgen/pkg/token"
)

// demoDispatcher is a minimal stand-in for the Evaluator/Dispatcher the
// core specifies as an external collaborator (it owns generator lookup,
// macro expansion, and the top-level evaluation loop — none of which this
// module implements). It understands just enough forms — if, while,
// return, binary operators, and plain function calls — to drive every
// core package end to end from a single fixture.
//
// Convention used here for the StatementProgram arguments that recurse
// into "the rest of the invocation" (ExpressionList, Splice, Body): this
// dispatcher expects that argument to itself be a parenthesized group,
// and iterates that group's own children; a bare leaf there is evaluated
// as a one-item list and any later arguments are not visited. The core StatementProgram
// executor only ever hands this dispatcher a start index; what counts as
// "all of it" is entirely this collaborator's choice.
type demoDispatcher struct {
	rep *diag.Reporter
}

var binaryOperators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
}

func (d *demoDispatcher) EvaluateRecursive(env *genv.Environment, ctx genv.Context, tokens []token.Token, startIndex int, out *emit.Output) int {
	tok := tokens[startIndex]
	if tok.Kind != token.KindOpenParen {
		switch tok.Kind {
		case token.KindString:
			emit.AppendText(&out.Source, "\""+tok.Contents+"\"", emit.ModNone, tok)
		default:
			emit.AppendText(&out.Source, tok.Contents, emit.ModNone, tok)
		}
		return 0
	}

	nameToken := tokens[startIndex+1]
	var ops []stmt.Operation

	switch {
	case nameToken.Contents == "if":
		ops = []stmt.Operation{
			{Type: stmt.OpKeyword, KeywordOrSymbol: "if"},
			{Type: stmt.OpOpenParen},
			{Type: stmt.OpExpression, ArgumentIndex: 1},
			{Type: stmt.OpCloseParen},
			{Type: stmt.OpOpenBlock},
			{Type: stmt.OpBody, ArgumentIndex: 2},
			{Type: stmt.OpCloseBlock},
		}

	case nameToken.Contents == "while":
		ops = []stmt.Operation{
			{Type: stmt.OpKeyword, KeywordOrSymbol: "while"},
			{Type: stmt.OpOpenParen},
			{Type: stmt.OpExpression, ArgumentIndex: 1},
			{Type: stmt.OpCloseParen},
			{Type: stmt.OpOpenBlock},
			{Type: stmt.OpBody, ArgumentIndex: 2},
			{Type: stmt.OpCloseBlock},
		}

	case nameToken.Contents == "return":
		ops = []stmt.Operation{
			{Type: stmt.OpKeyword, KeywordOrSymbol: "return"},
			{Type: stmt.OpExpressionOptional, ArgumentIndex: 1},
			{Type: stmt.OpSmartEndStatement},
		}

	case binaryOperators[nameToken.Contents]:
		ops = []stmt.Operation{
			{Type: stmt.OpExpression, ArgumentIndex: 1},
			{Type: stmt.OpKeyword, KeywordOrSymbol: nameToken.Contents},
			{Type: stmt.OpExpression, ArgumentIndex: 2},
		}

	default:
		// Plain function call: (name (arg arg...)) -> name(arg, arg...);
		ops = []stmt.Operation{
			{Type: stmt.OpKeywordNoSpace, KeywordOrSymbol: nameToken.Contents},
			{Type: stmt.OpOpenParen},
			{Type: stmt.OpExpressionList, ArgumentIndex: 1},
			{Type: stmt.OpCloseParen},
			{Type: stmt.OpSmartEndStatement},
		}
	}

	if !stmt.Execute(env, ctx, tokens, startIndex, ops, out, d, d.rep) {
		return 1
	}
	return 0
}

func (d *demoDispatcher) EvaluateAllRecursive(env *genv.Environment, ctx genv.Context, tokens []token.Token, startIndex int, out *emit.Output) int {
	if tokens[startIndex].Kind != token.KindOpenParen {
		return d.EvaluateRecursive(env, ctx, tokens, startIndex, out)
	}
	end, ok := navigator.MatchCloseParen(tokens, startIndex)
	if !ok {
		d.rep.Log("error: unbalanced group passed to EvaluateAllRecursive")
		return 1
	}

	for i := startIndex + 1; i < end; i = navigator.NextArgument(tokens, i, end) {
		if errs := d.EvaluateRecursive(env, ctx, tokens, i, out); errs != 0 {
			return errs
		}
		if !navigator.IsLastArgument(tokens, i, end) && ctx.DelimiterTemplate.Kind == emit.KindText && ctx.DelimiterTemplate.Text != "" {
			emit.AppendText(&out.Source, ctx.DelimiterTemplate.Text, ctx.DelimiterTemplate.Modifiers, tokens[i])
		} else if !navigator.IsLastArgument(tokens, i, end) && ctx.DelimiterTemplate.Modifiers&emit.ModListSeparator != 0 {
			emit.AppendLangToken(&out.Source, emit.ModListSeparator, tokens[i])
		}
	}
	return 0
}

// Package stmt implements the table-driven statement emitter: a generator
// declares a fixed-length array of Operations, and Execute walks it to emit
// one control-flow construct (if/while/for/return/casts/etc.) without
// needing a bespoke emitter per construct.
package stmt

import (
	"sexprgen/pkg/diag"
	"sexprgen/pkg/emit"
	"sexprgen/pkg/genv"
	"sexprgen/pkg/navigator"
	"sexprgen/pkg/token"
	"sexprgen/pkg/typespec"
)

// OpType enumerates the CStatementOperation kinds from spec §4.4.
type OpType int8

const (
	OpKeyword OpType = iota
	OpKeywordNoSpace
	OpOpenParen
	OpCloseParen
	OpOpenBlock
	OpCloseBlock
	OpOpenList
	OpCloseList
	OpSmartEndStatement
	OpTypeNoArray
	OpExpression
	OpExpressionOptional
	OpExpressionList
	OpSplice
	OpSpliceNoSpace
	OpBody
)

// Operation is one entry in a generator's fixed-length program array.
// ArgumentIndex is meaningful only for the argument-taking op types; a
// negative ArgumentIndex where one is required is a program-definition bug
// and fails hard rather than silently misbehaving.
type Operation struct {
	Type            OpType
	KeywordOrSymbol string
	ArgumentIndex   int
}

// Evaluator is the external Evaluator/Dispatcher collaborator (spec §6):
// the statement executor calls back into it to recursively emit
// sub-expressions and bodies. Both methods return the number of errors
// encountered (0 means success), matching the original's int-error-count
// convention.
type Evaluator interface {
	EvaluateRecursive(env *genv.Environment, ctx genv.Context, tokens []token.Token, startIndex int, out *emit.Output) int
	EvaluateAllRecursive(env *genv.Environment, ctx genv.Context, tokens []token.Token, startIndex int, out *emit.Output) int
}

// Execute interprets ops in order against the invocation opened at
// startTokenIndex, appending to out.Source (statement programs never write
// to the header buffer directly — any header-visible output comes from a
// nested Expression/Body evaluation the Evaluator performs itself).
func Execute(env *genv.Environment, ctx genv.Context, tokens []token.Token, startTokenIndex int,
	ops []Operation, out *emit.Output, evaluator Evaluator, rep *diag.Reporter) bool {
	endTokenIndex, ok := navigator.MatchCloseParen(tokens, startTokenIndex)
	if !ok {
		errf(rep, tokens[startTokenIndex], "unbalanced statement invocation")
		return false
	}
	nameTokenIndex := startTokenIndex + 1
	nameToken := tokens[nameTokenIndex]

	for _, op := range ops {
		switch op.Type {
		case OpKeyword:
			emit.AppendText(&out.Source, op.KeywordOrSymbol, emit.ModSpaceAfter, nameToken)

		case OpKeywordNoSpace:
			emit.AppendText(&out.Source, op.KeywordOrSymbol, emit.ModNone, nameToken)

		case OpSplice, OpSpliceNoSpace:
			if op.ArgumentIndex < 0 {
				rep.Log("Error: expected valid argument index for start of splice list")
				return false
			}
			startSpliceList, found := expectArgument(tokens, startTokenIndex, op.ArgumentIndex, endTokenIndex, "expected expressions", rep)
			if !found {
				return false
			}
			bodyContext := ctx.WithScope(genv.ScopeExpressionsOnly)
			delimiter := emit.Record{Text: op.KeywordOrSymbol}
			if op.Type == OpSplice {
				delimiter.Modifiers = emit.ModSpaceBefore | emit.ModSpaceAfter
			}
			bodyContext.DelimiterTemplate = delimiter
			if numErrors := evaluator.EvaluateAllRecursive(env, bodyContext, tokens, startSpliceList, out); numErrors != 0 {
				return false
			}

		case OpOpenParen:
			emit.AppendLangToken(&out.Source, emit.ModOpenParen, nameToken)
		case OpCloseParen:
			emit.AppendLangToken(&out.Source, emit.ModCloseParen, nameToken)
		case OpOpenBlock:
			emit.AppendLangToken(&out.Source, emit.ModOpenBlock, nameToken)
		case OpCloseBlock:
			emit.AppendLangToken(&out.Source, emit.ModCloseBlock, nameToken)
		case OpOpenList:
			emit.AppendLangToken(&out.Source, emit.ModOpenList, nameToken)
		case OpCloseList:
			emit.AppendLangToken(&out.Source, emit.ModCloseList, nameToken)

		case OpSmartEndStatement:
			if ctx.Scope != genv.ScopeExpressionsOnly {
				emit.AppendLangToken(&out.Source, emit.ModEndStatement, nameToken)
			}

		case OpTypeNoArray:
			if op.ArgumentIndex < 0 {
				rep.Log("Error: expected valid argument index for type")
				return false
			}
			startTypeIndex, found := expectArgument(tokens, startTokenIndex, op.ArgumentIndex, endTokenIndex, "expected type", rep)
			if !found {
				return false
			}
			var typeOutput, afterNameOutput []emit.Record
			if !typespec.Lower(tokens, startTypeIndex, false, &typeOutput, &afterNameOutput, rep) {
				return false
			}
			emit.PushBackAll(&out.Source, typeOutput)

		case OpExpressionOptional:
			if op.ArgumentIndex < 0 {
				rep.Log("Error: expected valid argument index for expression")
				return false
			}
			startExpr := navigator.ArgumentIndex(tokens, startTokenIndex, op.ArgumentIndex, endTokenIndex)
			if startExpr == -1 {
				break
			}
			exprContext := ctx.WithScope(genv.ScopeExpressionsOnly)
			if numErrors := evaluator.EvaluateRecursive(env, exprContext, tokens, startExpr, out); numErrors != 0 {
				return false
			}

		case OpExpression:
			if op.ArgumentIndex < 0 {
				rep.Log("Error: expected valid argument index for expression")
				return false
			}
			startExpr, found := expectArgument(tokens, startTokenIndex, op.ArgumentIndex, endTokenIndex, "expected expression", rep)
			if !found {
				return false
			}
			exprContext := ctx.WithScope(genv.ScopeExpressionsOnly)
			if numErrors := evaluator.EvaluateRecursive(env, exprContext, tokens, startExpr, out); numErrors != 0 {
				return false
			}

		case OpExpressionList:
			if op.ArgumentIndex < 0 {
				rep.Log("Error: expected valid argument index for expression list")
				return false
			}
			startExpr := navigator.ArgumentIndex(tokens, startTokenIndex, op.ArgumentIndex, endTokenIndex)
			if startExpr == -1 {
				break
			}
			exprContext := ctx.WithScope(genv.ScopeExpressionsOnly)
			exprContext.DelimiterTemplate = emit.Record{Modifiers: emit.ModListSeparator}
			if numErrors := evaluator.EvaluateAllRecursive(env, exprContext, tokens, startExpr, out); numErrors != 0 {
				return false
			}

		case OpBody:
			if op.ArgumentIndex < 0 {
				rep.Log("Error: expected valid argument index for body")
				return false
			}
			startBody, found := expectArgument(tokens, startTokenIndex, op.ArgumentIndex, endTokenIndex, "expected body", rep)
			if !found {
				return false
			}
			bodyContext := ctx.WithScope(genv.ScopeBody)
			bodyContext.DelimiterTemplate = emit.Record{}
			if numErrors := evaluator.EvaluateAllRecursive(env, bodyContext, tokens, startBody, out); numErrors != 0 {
				return false
			}

		default:
			rep.Log("Output type not handled")
			return false
		}
	}

	return true
}

func expectArgument(tokens []token.Token, start, n, end int, message string, rep *diag.Reporter) (int, bool) {
	idx := navigator.ArgumentIndex(tokens, start, n, end)
	if idx == -1 {
		errf(rep, tokens[end], "missing arguments: %s", message)
		return -1, false
	}
	return idx, true
}

func errf(rep *diag.Reporter, t token.Token, format string, args ...any) {
	rep.ErrorAtTokenf(t.Line, t.Column, t.Contents, format, args...)
}

// Package navigator provides the low-level, zero-emission traversal
// primitives every other component in this module is built on: the flat
// token list is the tree, so nothing here ever materializes an
// intermediate syntax tree. All functions are pure with respect to the
// token slice; callers own the cursor.
package navigator

import "sexprgen/pkg/token"

// MatchCloseParen forward-scans a depth tracker from start (which must hold
// an OpenParen) and returns the index of its matching CloseParen.
//
// The original Cakelisp FindCloseParenTokenIndex this is grounded on warns
// and keeps scanning when start isn't an OpenParen. Per the spec's own open question ("prefer failing hard in a
// new implementation") this instead reports failure immediately.
func MatchCloseParen(tokens []token.Token, start int) (int, bool) {
	if start < 0 || start >= len(tokens) || tokens[start].Kind != token.KindOpenParen {
		return 0, false
	}
	depth := 0
	for i := start; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case token.KindOpenParen:
			depth++
		case token.KindCloseParen:
			depth--
		}
		if depth == 0 {
			return i, true
		}
	}
	return len(tokens), false
}

// ArgumentIndex returns the token index of the n-th top-level argument of
// the invocation opened at start (n=0 is the invocation name itself), or -1
// if there is no such argument before end. Nested paren groups count and
// skip as a single argument.
func ArgumentIndex(tokens []token.Token, start, n, end int) int {
	current := 0
	for i := start + 1; i < end; i++ {
		if current == n {
			return i
		}
		if tokens[i].Kind == token.KindOpenParen {
			if closeIdx, ok := MatchCloseParen(tokens, i); ok {
				i = closeIdx
			}
		}
		current++
	}
	return -1
}

// NumArguments counts top-level children of the invocation opened at start,
// including the invocation name.
func NumArguments(tokens []token.Token, start, end int) int {
	count := 0
	for i := start + 1; i < end; i++ {
		if tokens[i].Kind == token.KindOpenParen {
			if closeIdx, ok := MatchCloseParen(tokens, i); ok {
				i = closeIdx
			}
		}
		count++
	}
	return count
}

// NextArgument returns the first token index of the argument following the
// one starting at current (which itself skips current's own paren group, if
// any, as a single unit).
func NextArgument(tokens []token.Token, current, end int) int {
	next := current
	if tokens[current].Kind == token.KindOpenParen {
		if closeIdx, ok := MatchCloseParen(tokens, current); ok {
			next = closeIdx
		}
	}
	return next + 1
}

// IsLastArgument reports whether the argument starting at current has no
// top-level successor before end.
func IsLastArgument(tokens []token.Token, current, end int) bool {
	return NextArgument(tokens, current, end) >= end
}

// FindExpressionEnd returns the index of startToken's matching CloseParen,
// or startToken itself if it isn't an OpenParen. Returns -1 if unbalanced
// (should not happen given the tokenizer's invariant).
func FindExpressionEnd(tokens []token.Token, startToken int) int {
	if startToken < 0 || startToken >= len(tokens) {
		return -1
	}
	if tokens[startToken].Kind != token.KindOpenParen {
		return startToken
	}
	depth := 0
	for i := startToken; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case token.KindOpenParen:
			depth++
		case token.KindCloseParen:
			depth--
			if depth <= 0 {
				return i
			}
		}
	}
	return -1
}

// AbsorbBlockOrScope returns start+2 if the invocation at start is
// `(scope ...)` or `(block ...)` — skipping the opening paren and the
// keyword — so a caller that already opened its own block doesn't emit a
// second, redundant nested block. Otherwise it returns start unchanged.
func AbsorbBlockOrScope(tokens []token.Token, start int) int {
	if start+1 >= len(tokens) || tokens[start].Kind != token.KindOpenParen {
		return start
	}
	keyword := tokens[start+1]
	if keyword.Kind == token.KindSymbol && (keyword.Contents == "scope" || keyword.Contents == "block") {
		return start + 2
	}
	return start
}

// CopyExpressionTokens returns a copy of the full token span of the
// argument starting at start: a single token if it's a leaf, or the whole
// balanced paren group if it's an OpenParen. Grounded on the original's
// PushBackTokenExpression. The definition cloner does not use it.
func CopyExpressionTokens(tokens []token.Token, start int) []token.Token {
	if start < 0 || start >= len(tokens) {
		return nil
	}
	if tokens[start].Kind != token.KindOpenParen {
		return []token.Token{tokens[start]}
	}
	end, ok := MatchCloseParen(tokens, start)
	if !ok {
		return nil
	}
	out := make([]token.Token, end-start+1)
	copy(out, tokens[start:end+1])
	return out
}

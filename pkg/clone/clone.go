// Package clone reconstructs a token sequence equivalent to a previously
// recorded definition, with all of its macros already expanded in place,
// for re-emission in a different context.
package clone

import (
	"sexprgen/pkg/diag"
	"sexprgen/pkg/genv"
	"sexprgen/pkg/navigator"
	"sexprgen/pkg/token"
)

// CloneDefinition walks def's token range (found via FindExpressionEnd on
// its recorded invocation token) and returns a copy with every recorded
// MacroExpansion inlined in place of its original invocation span.
//
// Only Function and Variable definitions are supported; any other kind is
// rejected as a safety check rather than silently producing a partial
// clone. tokens is the full program token vector def.DefinitionInvocation
// indexes into.
func CloneDefinition(tokens []token.Token, def *genv.ObjectDefinition, rep *diag.Reporter) ([]token.Token, bool) {
	if def.Type != genv.ObjectFunction && def.Type != genv.ObjectVariable {
		rep.Logf("error: CloneDefinition() called on definition type %s which is not explicitly "+
			"supported. Add it as a supported type once its macro expansions are tracked", def.Type)
		return nil, false
	}

	end := navigator.FindExpressionEnd(tokens, def.DefinitionInvocation)
	if end == -1 {
		rep.Log("error: CloneDefinition() could not find the end of the definition's invocation")
		return nil, false
	}

	out := make([]token.Token, 0, end-def.DefinitionInvocation+1)
	copyWithMacrosExpanded(tokens, def.DefinitionInvocation, end, def.MacroExpansions, &out)
	return out, true
}

// copyWithMacrosExpanded mirrors the original's O(n*m) inner match: for
// each token in [start, end], check every recorded expansion for one whose
// AtToken equals the current index; if found, recursively copy that
// expansion's own token vector (with the same expansion table, in case it
// itself contains further recorded expansions) and skip past the original
// invocation span; otherwise copy the token verbatim.
func copyWithMacrosExpanded(tokens []token.Token, start, end int, expansions []genv.MacroExpansion, out *[]token.Token) {
	for i := start; i <= end; {
		var matched *genv.MacroExpansion
		for idx := range expansions {
			if expansions[idx].AtToken == i {
				matched = &expansions[idx]
				break
			}
		}
		if matched != nil {
			if len(matched.Tokens) > 0 {
				copyWithMacrosExpanded(matched.Tokens, 0, len(matched.Tokens)-1, expansions, out)
			}
			next := navigator.FindExpressionEnd(tokens, i)
			if next == -1 {
				return
			}
			i = next + 1
			continue
		}
		*out = append(*out, tokens[i])
		i++
	}
}

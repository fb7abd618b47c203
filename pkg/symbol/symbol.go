// Package symbol mints unique identifiers for generated temporaries,
// deterministically: repeated calls to MintGlobal yield strictly
// increasing suffixes, and generation order must be reproducible across
// runs so checked-in generated output stays stable.
package symbol

import (
	"fmt"

	"sexprgen/pkg/genv"
	"sexprgen/pkg/token"
)

// maxSymbolNameLen mirrors the original's fixed 64-byte formatting buffer;
// we truncate the prefix (not the numeric suffix, which must stay intact
// for uniqueness) rather than silently growing past it.
const maxSymbolNameLen = 64

// MintGlobal formats "<prefix>_<N>" where N is the environment-level
// counter, increments the counter, and returns a Symbol token.
func MintGlobal(env *genv.Environment, prefix string) token.Token {
	name := formatSymbolName(prefix, env.NextFreeUniqueSymbolNum)
	env.NextFreeUniqueSymbolNum++
	return token.Token{Kind: token.KindSymbol, Contents: name}
}

// MintForContext uses the enclosing definition's own per-instance counter
// when context names one that exists in env, keeping a definition's
// generated names stable against unrelated edits elsewhere in the program.
// It falls back to MintGlobal otherwise.
func MintForContext(env *genv.Environment, ctx genv.Context, prefix string) token.Token {
	if ctx.DefinitionName == nil {
		return MintGlobal(env, prefix)
	}
	def, ok := env.FindObjectDefinition(ctx.DefinitionName.Contents)
	if !ok {
		return MintGlobal(env, prefix)
	}
	name := formatSymbolName(prefix, def.NextFreeUniqueSymbol)
	def.NextFreeUniqueSymbol++
	return token.Token{Kind: token.KindSymbol, Contents: name}
}

func formatSymbolName(prefix string, n int) string {
	suffix := fmt.Sprintf("_%d", n)
	budget := maxSymbolNameLen - len(suffix)
	if budget < 1 {
		budget = 1
	}
	if len(prefix) > budget {
		prefix = prefix[:budget]
	}
	return prefix + suffix
}

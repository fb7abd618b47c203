// Command sexprgen is a demonstration host for the code-generation core:
// it tokenizes an S-expression-flavored fixture, parses a single function
// definition's signature and body, and writes the resulting C source and
// header text to disk.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sexprgen/pkg/clone"
	"sexprgen/pkg/diag"
	"sexprgen/pkg/emit"
	"sexprgen/pkg/genv"
	"sexprgen/pkg/navigator"
	"sexprgen/pkg/sig"
	"sexprgen/pkg/symbol"
	"sexprgen/pkg/token"
)

const defaultFixture = `(defun add (a int b int &return int)
  (if (> a b)
      ((return (+ a b)))
      ((return (- b a)))))
`

func main() {
	var inPath, outSourcePath, outHeaderPath string

	root := &cobra.Command{
		Use:   "sexprgen",
		Short: "Drive the code-generation core over one fixture function definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(inPath, outSourcePath, outHeaderPath)
		},
	}
	root.Flags().StringVar(&inPath, "in", "", "fixture source file (defaults to a built-in sample)")
	root.Flags().StringVar(&outSourcePath, "out-source", "out.c", "path to write generated source text")
	root.Flags().StringVar(&outHeaderPath, "out-header", "out.h", "path to write generated header text")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(inPath, outSourcePath, outHeaderPath string) error {
	text := defaultFixture
	if inPath != "" {
		contents, err := os.ReadFile(inPath)
		if err != nil {
			return err
		}
		text = string(contents)
	}

	tokens := tokenize(inPath, text)
	if len(tokens) == 0 {
		return fmt.Errorf("no tokens produced from input")
	}

	rep := diag.NewReporter(text)
	env := genv.NewEnvironment()

	defunStart := 0
	if !(tokens[defunStart].Kind == token.KindOpenParen && tokens[defunStart+1].Contents == "defun") {
		return fmt.Errorf("fixture must begin with (defun ...)")
	}
	nameIndex := defunStart + 2
	funcName := tokens[nameIndex]
	argsIndex := nameIndex + 1

	arguments, returnTypeStart, ok := sig.ParseSignature(tokens, argsIndex, rep)
	if !ok {
		return fmt.Errorf("signature parsing failed")
	}
	endArgs, _ := navigator.MatchCloseParen(tokens, argsIndex)

	var out emit.Output
	if !sig.OutputReturnType(tokens, &out, returnTypeStart, defunStart, endArgs, true, true, rep) {
		return fmt.Errorf("return type emission failed")
	}
	emit.AppendText(&out.Source, funcName.Contents, emit.ModConvertVariableName, funcName)
	emit.AppendText(&out.Header, funcName.Contents, emit.ModConvertVariableName, funcName)
	emit.AppendLangToken(&out.Source, emit.ModOpenParen, funcName)
	emit.AppendLangToken(&out.Header, emit.ModOpenParen, funcName)
	if !sig.OutputParameters(tokens, &out, arguments, true, true, rep) {
		return fmt.Errorf("parameter emission failed")
	}
	emit.AppendLangToken(&out.Source, emit.ModCloseParen, funcName)
	emit.AppendLangToken(&out.Header, emit.ModCloseParen, funcName)
	emit.AppendLangToken(&out.Header, emit.ModEndStatement, funcName)

	def := &genv.ObjectDefinition{Type: genv.ObjectFunction, DefinitionInvocation: defunStart}
	env.ObjectDefinitions[funcName.Contents] = def

	tempName := symbol.MintForContext(env, genv.Context{DefinitionName: &funcName}, "add_tmp")
	rep.Logf("minted temporary %q for definition %q", tempName.Contents, funcName.Contents)

	bodyStart := argsIndex
	if closeArgs, ok := navigator.MatchCloseParen(tokens, argsIndex); ok {
		bodyStart = closeArgs + 1
	}

	dispatcher := &demoDispatcher{rep: rep}
	bodyCtx := genv.Context{Scope: genv.ScopeBody, DefinitionName: &funcName}
	emit.AppendLangToken(&out.Source, emit.ModOpenBlock, funcName)
	closeDefun, ok := navigator.MatchCloseParen(tokens, defunStart)
	if !ok {
		return fmt.Errorf("unbalanced definition")
	}
	for i := bodyStart; i < closeDefun; i = navigator.NextArgument(tokens, i, closeDefun) {
		if errs := dispatcher.EvaluateRecursive(env, bodyCtx, tokens, i, &out); errs != 0 {
			return fmt.Errorf("body generation failed")
		}
	}
	emit.AppendLangToken(&out.Source, emit.ModCloseBlock, funcName)

	cloned, ok := clone.CloneDefinition(tokens, def, rep)
	if !ok {
		return fmt.Errorf("definition clone failed")
	}
	rep.Logf("cloned definition %q: %d tokens", funcName.Contents, len(cloned))

	if rep.Failed() {
		return fmt.Errorf("generation reported errors")
	}

	if err := os.WriteFile(outSourcePath, []byte(render(out.Source)), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(outHeaderPath, []byte(render(out.Header)), 0o644); err != nil {
		return err
	}

	fmt.Printf("wrote %s and %s (%d warnings)\n", outSourcePath, outHeaderPath, rep.Warnings())
	return nil
}

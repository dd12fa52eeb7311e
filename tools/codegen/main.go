// Command codegen prints the struct declarations of the FuncOwnerN family
// (hook fields and compute signature, for N = 2..4). It is not invoked by
// the build; owner_funcs_generated.go, including its constructors and Owner
// methods, is hand-expanded and checked in directly (see that file's own
// header). Grounded on the teacher's
// pumped-go/codegen/main.go (Derive1..DeriveN generator), re-targeted from
// dependency-injection factory arities to function-observable input
// arities.
package main

import (
	"fmt"
	"os"
	"strings"
)

func letters(n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = string(rune('A' + i))
	}
	return out
}

func generateFuncOwner(n int) string {
	var sb strings.Builder

	ls := letters(n)
	typeParams := append(append([]string{}, ls...), "R any")
	for i := range typeParams[:len(typeParams)-1] {
		typeParams[i] += " any"
	}

	fields := make([]string, n+1)
	for i := 0; i < n; i++ {
		fields[i] = fmt.Sprintf("in%d", i)
	}
	fields[n] = "out"

	structName := fmt.Sprintf("FuncOwner%d", n)

	sb.WriteString(fmt.Sprintf("type %s[%s] struct {\n", structName, strings.Join(typeParams, ", ")))
	sb.WriteString(fmt.Sprintf("\t%s *Hook\n", strings.Join(fields, ", ")))
	sb.WriteString(fmt.Sprintf("\tcompute func(%s) R\n", strings.Join(ls, ", ")))
	sb.WriteString("}\n\n")

	return sb.String()
}

func main() {
	var out strings.Builder
	for n := 2; n <= 4; n++ {
		out.WriteString(generateFuncOwner(n))
	}
	fmt.Print(out.String())

	if len(os.Args) > 1 && os.Args[1] == "-check" {
		fmt.Fprintln(os.Stderr, "codegen: -check is a placeholder; owner_funcs_generated.go is hand-expanded and checked in, not regenerated by this command")
	}
}

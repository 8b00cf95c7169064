package templates

import (
	"fmt"
	"strings"
)

// ArityGen renders typed/arity.go: the arity-specialized Computed and
// Effect constructors over explicitly named dependency cells.
func ArityGen(count int) string {
	sb := &strings.Builder{}
	sb.WriteString("// Code generated by cmd/codegen. DO NOT EDIT.\n\n")
	sb.WriteString("package typed\n\n")
	sb.WriteString("import (\n\t\"github.com/cellweave/cellweave/cells\"\n)\n\n")

	for n := 1; n <= count; n++ {
		writeComputed(sb, n)
		writeEffect(sb, n)
	}
	return sb.String()
}

func writeComputed(sb *strings.Builder, n int) {
	fmt.Fprintf(sb, "// Computed%d derives a value from %d explicitly named dependency cell%s.\n", n, n, plural(n))
	fmt.Fprintf(sb, "func Computed%d[%s, O any](\n", n, prefixedStrings("T", n))
	sb.WriteString("\trt *cells.Runtime,\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(sb, "\tdep%d cells.Observable,\n", i)
	}
	fmt.Fprintf(sb, "\tfn func(%s) O,\n", prefixedStrings("T", n))
	sb.WriteString(") *ReadonlySignal[O] {\n")
	sb.WriteString("\treturn Computed(rt, func() (O, error) {\n")
	sb.WriteString("\t\tvar zero O\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(sb, "\t\tv%d, err := read[T%d](dep%d)\n", i, i, i)
		sb.WriteString("\t\tif err != nil {\n\t\t\treturn zero, err\n\t\t}\n")
	}
	sb.WriteString("\t\treturn fn(\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(sb, "\t\t\tv%d,\n", i)
	}
	sb.WriteString("\t\t), nil\n\t})\n}\n\n")
}

func writeEffect(sb *strings.Builder, n int) {
	verb := "change"
	if n == 1 {
		verb = "changes"
	}
	fmt.Fprintf(sb, "// Effect%d runs fn for its side effects whenever one of its %d dependency cell%s %s.\n",
		n, n, plural(n), verb)
	fmt.Fprintf(sb, "func Effect%d[%s any](\n", n, prefixedStrings("T", n))
	sb.WriteString("\trt *cells.Runtime,\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(sb, "\tdep%d cells.Observable,\n", i)
	}
	fmt.Fprintf(sb, "\tfn func(%s) error,\n", prefixedStrings("T", n))
	sb.WriteString(") *cells.Effect {\n")
	sb.WriteString("\treturn RunEffect(rt, func() error {\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(sb, "\t\tv%d, err := read[T%d](dep%d)\n", i, i, i)
		sb.WriteString("\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n")
	}
	sb.WriteString("\t\treturn fn(\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(sb, "\t\t\tv%d,\n", i)
	}
	sb.WriteString("\t\t)\n\t})\n}\n\n")
}

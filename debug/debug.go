package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Lex   bool
	Parse bool
	Eval  bool
	LSP   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Lex = boolEnv("HNMD_DEBUG_LEX")
	d.Parse = boolEnv("HNMD_DEBUG_PARSE")
	d.Eval = boolEnv("HNMD_DEBUG_EVAL")
	d.LSP = boolEnv("HNMD_DEBUG_LSP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Lex() bool {
	return d.Lex
}
func Parse() bool {
	return d.Parse
}
func Eval() bool {
	return d.Eval
}
func LSP() bool {
	return d.LSP
}

// Command pickledump writes a protocol-2 pickle of a small demo value
// built from its flags to stdout, for manually cross-checking this
// package's output against CPython's pickletools:
//
//	go run ./cmd/pickledump -int 127 -string hello | python3 -m pickletools
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/tinberg/gopickle"
)

func main() {
	var (
		str    = flag.String("string", "", "dump a string value")
		intVal = flag.Int64("int", 0, "dump an integer value")
		useInt = flag.Bool("use-int", false, "dump -int even if it is zero")
		flt    = flag.Float64("float", 0, "dump a float value")
		useFlt = flag.Bool("use-float", false, "dump -float even if it is zero")
		list   = flag.String("list", "", "dump a comma-separated list of integers, e.g. 1,2,3")
		noMemo = flag.Bool("no-memo", false, "disable memoization")
	)
	flag.Parse()

	v, err := demoValue(*str, *intVal, *useInt, *flt, *useFlt, *list)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pickledump:", err)
		os.Exit(1)
	}

	opts := []pickle.Option{pickle.WithMemo(!*noMemo)}
	if err := pickle.Dump(v, os.Stdout, opts...); err != nil {
		fmt.Fprintln(os.Stderr, "pickledump:", err)
		os.Exit(1)
	}
}

// demoValue picks the one flag-selected value to dump, falling back to
// a small nested map exercising list/dict/string/int together when no
// flag was given.
func demoValue(str string, intVal int64, useInt bool, flt float64, useFlt bool, list string) (any, error) {
	switch {
	case str != "":
		return str, nil
	case useInt || intVal != 0:
		return intVal, nil
	case useFlt || flt != 0:
		return flt, nil
	case list != "":
		parts := strings.Split(list, ",")
		out := make([]int64, len(parts))
		for i, p := range parts {
			n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing -list item %q: %w", p, err)
			}
			out[i] = n
		}
		return out, nil
	default:
		return map[string]any{
			"name":  "pickledump",
			"count": int64(3),
			"items": []int64{1, 2, 3},
		}, nil
	}
}

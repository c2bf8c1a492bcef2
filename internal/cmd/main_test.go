package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
)

const helperEnv = "GO_WANT_HELPER_COMPILER"

// TestMain lets the test binary act as the compiler. The fixture named by
// the last argument may contain "#stderr TEXT" lines, echoed to stderr, and
// one "#exit N" line; --return-zero-on-error forces exit status 0.
func TestMain(m *testing.M) {
	if os.Getenv(helperEnv) == "1" {
		os.Exit(stubCompiler(os.Args[1:]))
	}
	os.Exit(m.Run())
}

func stubCompiler(args []string) int {
	file, err := os.Open(args[len(args)-1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "stub:", err)
		return 66
	}
	defer file.Close()

	code := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		directive, arg, _ := strings.Cut(scanner.Text(), " ")
		switch directive {
		case "#stderr":
			fmt.Fprintln(os.Stderr, arg)
		case "#exit":
			code, _ = strconv.Atoi(arg)
		}
	}

	for _, a := range args {
		if a == "--return-zero-on-error" {
			return 0
		}
	}
	return code
}

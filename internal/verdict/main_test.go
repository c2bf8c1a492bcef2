package verdict

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

const (
	helperEnv = "GO_WANT_HELPER_COMPILER"
	forceFlag = "--return-zero-on-error"
)

// TestMain lets the test binary double as a stub compiler. When the helper
// variable is set the process reads the fixture named by its last argument
// and follows the '#' directives in it:
//
//	#stdout TEXT   write TEXT and a newline to stdout
//	#stderr TEXT   write TEXT and a newline to stderr
//	#exit N        exit with status N (0 when the force flag is given)
//	#sleep MS      sleep before writing anything
//	#ignore-force  keep the exit status even under the force flag
func TestMain(m *testing.M) {
	if os.Getenv(helperEnv) == "1" {
		os.Exit(stubCompiler(os.Args[1:]))
	}
	os.Exit(m.Run())
}

func stubCompiler(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "stub: no input file")
		return 64
	}

	forced := false
	for _, a := range args {
		if a == forceFlag {
			forced = true
		}
	}

	file, err := os.Open(args[len(args)-1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "stub:", err)
		return 66
	}
	defer file.Close()

	code, ignoreForce := 0, false
	var sleep time.Duration
	var actions []func()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		directive, arg, _ := strings.Cut(scanner.Text(), " ")
		switch directive {
		case "#stdout":
			actions = append(actions, func() { fmt.Fprintln(os.Stdout, arg) })
		case "#stderr":
			actions = append(actions, func() { fmt.Fprintln(os.Stderr, arg) })
		case "#exit":
			code, _ = strconv.Atoi(arg)
		case "#sleep":
			ms, _ := strconv.Atoi(arg)
			sleep = time.Duration(ms) * time.Millisecond
		case "#ignore-force":
			ignoreForce = true
		}
	}

	time.Sleep(sleep)
	for _, act := range actions {
		act()
	}
	if forced && !ignoreForce {
		return 0
	}
	return code
}

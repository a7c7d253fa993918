package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/go-mjs/pkg/mjs"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var esVersion int

var rootCmd = &cobra.Command{
	Use:   "mjs [file.js]",
	Short: "An embeddable ECMAScript (ES1/ES3/ES5) interpreter",
	Long: `mjs runs JavaScript source conforming to ES1, ES3, or ES5, chosen with
-es1/-es3/-es5 (default ES5).

With a file argument the script is loaded, parsed, and executed; the
process exits with the ToInt32-truncated value of the program's
completion. Without a file argument mjs runs a REPL, reading and
evaluating one line of input at a time.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runMain,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().IntVar(&esVersion, "es", 5, "language conformance level: 1, 3, or 5")
	rootCmd.Flags().Lookup("es").NoOptDefVal = "5"
}

// Execute runs the root command. Args are preprocessed so the compact
// `-esN` spellings (-es1, -es3, -es5) work alongside the long `--es N`
// form, matching the CLI surface `mjs [-esN] [file.js]`.
func Execute() error {
	rootCmd.SetArgs(normalizeEsFlag(os.Args[1:]))
	return rootCmd.Execute()
}

func normalizeEsFlag(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		switch a {
		case "-es1", "-es3", "-es5":
			out = append(out, "--es", a[3:])
		default:
			out = append(out, a)
		}
	}
	return out
}

func runMain(_ *cobra.Command, args []string) error {
	version := mjs.Version(esVersion)
	switch version {
	case mjs.ES1, mjs.ES3, mjs.ES5:
	default:
		return fmt.Errorf("invalid -es level %d: must be 1, 3, or 5", esVersion)
	}

	if len(args) == 0 {
		return runREPL(version)
	}
	return runFile(args[0], version)
}

func runFile(path string, version mjs.Version) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	it := mjs.New(mjs.Options{Version: version, Output: os.Stdout, SourceFile: path})
	result, err := it.Eval(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	code, err := result.Int32()
	if err != nil {
		os.Exit(0)
	}
	os.Exit(int(code))
	return nil
}

func runREPL(version mjs.Version) error {
	it := mjs.New(mjs.Options{Version: version, Output: os.Stdout, SourceFile: "<repl>"})
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprint(os.Stdout, "> ")
	for scanner.Scan() {
		line := scanner.Text()
		result, err := it.Eval(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		} else if s, serr := result.String(); serr == nil {
			fmt.Fprintln(os.Stdout, s)
		}
		fmt.Fprint(os.Stdout, "> ")
	}
	fmt.Fprintln(os.Stdout)
	return scanner.Err()
}

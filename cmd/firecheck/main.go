// Command firecheck validates Firebase project configuration files.
//
// Usage:
//
//	firecheck validate [--config path] [--format auto|json|yaml] [--output text|json] [--no-warnings] [files...]
//	firecheck schema [--section name]
//	firecheck serve [--config path] [--addr :8080]
//	firecheck version
//
// validate exits 0 when every document is valid, 1 when any has
// violations and 2 on usage, I/O or decode errors.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Exit codes of the validate command.
const (
	exitValid   = 0
	exitInvalid = 1
	exitError   = 2
)

// exitCodeError carries a process exit code out of a command. A nil Err
// means the command already reported the problem.
type exitCodeError struct {
	Code int
	Err  error
}

func (e *exitCodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *exitCodeError) Unwrap() error { return e.Err }

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return execute(root)
}

// execute runs the command tree and maps its error to an exit code.
func execute(root *cobra.Command) int {
	err := root.Execute()
	if err == nil {
		return exitValid
	}

	var exit *exitCodeError
	if errors.As(err, &exit) {
		if exit.Err != nil {
			fmt.Fprintf(root.ErrOrStderr(), "firecheck: %v\n", exit.Err)
		}
		return exit.Code
	}
	fmt.Fprintf(root.ErrOrStderr(), "firecheck: %v\n", err)
	return exitError
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "firecheck",
		Short: "Validate Firebase project configuration files",
		Long: `firecheck validates firebase.json documents against the Firebase project
configuration schema and optional custom CEL checks. It runs once from the
command line or as an HTTP validation service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Help()
			return &exitCodeError{Code: exitError}
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newValidateCmd(),
		newSchemaCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "firecheck %s\n", version)
		},
	}
}

package main

import (
	goflag "flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"tapec/pkg/compile"
	"tapec/pkg/tape"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tapec",
		Short: "tapec compiles a small imperative language to tape-machine code",
	}
	// Surface glog's flags (-v, -logtostderr, ...) on every subcommand.
	rootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)

	// compile command
	var output string

	compileCmd := &cobra.Command{
		Use:   "compile [source file]",
		Short: "Compile a source program and write the tape-machine code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := compileFile(args[0])
			if err != nil {
				return err
			}
			glog.V(1).Infof("compiled %s: %d bytes", args[0], len(code))

			if output == "" {
				fmt.Println(string(code))
				return nil
			}
			if err := os.WriteFile(output, code, 0o644); err != nil {
				return err
			}
			fmt.Printf("Written %d bytes to %s\n", len(code), output)
			return nil
		},
	}
	compileCmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	// run command
	var dump int
	var stepLimit int

	runCmd := &cobra.Command{
		Use:   "run [source file]",
		Short: "Compile a source program and execute it on the reference machine",
		Long: "Compile a source program and execute it on the reference machine.\n" +
			"Files ending in .bf are treated as already-compiled tape code.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var code []byte
			var err error
			if filepath.Ext(args[0]) == ".bf" {
				code, err = os.ReadFile(args[0])
			} else {
				code, err = compileFile(args[0])
			}
			if err != nil {
				return err
			}

			m := tape.New(code,
				tape.WithInput(os.Stdin),
				tape.WithOutput(os.Stdout),
				tape.WithStepLimit(stepLimit),
			)
			if err := m.Run(); err != nil {
				return errors.Wrap(err, "execution failed")
			}
			glog.V(1).Infof("executed %d steps", m.Steps())

			for i := 0; i < dump; i++ {
				fmt.Printf("cell %d: %d\n", i, m.Cell(i))
			}
			return nil
		},
	}
	runCmd.Flags().IntVar(&dump, "dump", 0, "Print the first N cells after execution")
	runCmd.Flags().IntVar(&stepLimit, "steps", tape.DefaultStepLimit, "Abort after this many machine steps")

	rootCmd.AddCommand(compileCmd, runCmd)

	err := rootCmd.Execute()
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func compileFile(path string) ([]byte, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	code, err := compile.Compile(string(source))
	if err != nil {
		return nil, errors.Wrapf(err, "compile %s", path)
	}
	return code, nil
}

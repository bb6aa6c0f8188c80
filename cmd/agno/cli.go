package agno

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Run parses flags and executes the selected command.
func Run(args []string) {
	setConfigPath(extractConfigPath(args))

	opts := &Options{}
	var first string
	if len(args) > 0 {
		first = args[0]
	}
	opts.Init(first)

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.SubcommandsOptional = true
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Println(flagsErr.Message)
			return
		}
		log.Fatalf("%v", err)
	}
	if opts.Version {
		fmt.Println(Version())
		os.Exit(0)
	}
	if parser.Active == nil {
		parser.WriteHelp(os.Stdout)
	}
}

// extractConfigPath scans raw args for -f/--config before full parsing so
// sub-command Execute methods see the path.
func extractConfigPath(args []string) string {
	for i, a := range args {
		switch a {
		case "-f", "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		default:
			if strings.HasPrefix(a, "--config=") {
				return strings.TrimPrefix(a, "--config=")
			}
		}
	}
	return ""
}

// RunWithCommands is kept for symmetry with scy CLI.
func RunWithCommands(args []string) {
	Run(args)
}

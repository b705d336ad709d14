package runner

import (
	"io"

	"github.com/jessevdk/go-flags"
)

// Run parses args and executes the selected command, writing results to out.
func Run(args []string, out io.Writer) error {
	options := &Options{out: out}
	options.Put = &PutCommand{options: options}
	options.URI = &URICommand{options: options}
	options.Serve = &ServeCommand{options: options}
	parser := flags.NewParser(options, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if command == nil {
			return nil
		}
		if err := options.init(); err != nil {
			return err
		}
		return command.Execute(args)
	}
	_, err := parser.ParseArgs(args)
	return err
}

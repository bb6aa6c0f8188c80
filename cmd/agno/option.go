package agno

// Options is the root command that groups sub-commands. The struct tags are
// interpreted by github.com/jessevdk/go-flags.
type Options struct {
	Config  string      `short:"f" long:"config" description:"config YAML path or URL"`
	Version bool        `short:"v" long:"version" description:"print version and exit"`
	Serve   *ServeCmd   `command:"serve" description:"Start HTTP server"`
	Exec    *ExecCmd    `command:"exec" description:"Run a single command and print the result"`
	Tools   *ToolsCmd   `command:"tools" description:"List tools exposed by the MCP server"`
	Secret  *SecretCmd  `command:"secret" description:"Store API credentials in an encrypted secrets file"`
	Ver     *VersionCmd `command:"version" description:"Print version"`
}

// Init instantiates the sub-command referenced by the first argument so that
// flags.Parse can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "serve":
		o.Serve = &ServeCmd{}
	case "exec":
		o.Exec = &ExecCmd{}
	case "tools":
		o.Tools = &ToolsCmd{}
	case "secret":
		o.Secret = &SecretCmd{}
	case "version":
		o.Ver = &VersionCmd{}
	}
}

// Package command implements the slash command registry and dispatcher: a
// completed "/..." line is resolved by name, tokenized against the command's
// declared arity and handed to exactly one handler.
package command

import "strings"

// HandlerFunc executes a dispatched command. Handlers report their own
// failures and never panic across the boundary.
type HandlerFunc func(args []string)

// Command describes one registered slash command.
type Command struct {
	Name string
	Desc string
	// NArg is the declared argument count. The final declared argument is
	// always taken as the unsplit remainder of the line.
	NArg int
	// Variadic makes NArg a maximum instead of an exact requirement; any
	// count from MinArg up to NArg is accepted.
	Variadic bool
	// MinArg is the fewest arguments a variadic command accepts.
	MinArg  int
	Handler HandlerFunc
}

// Registry resolves command lines to handlers. Lookup is a linear scan by
// exact name.
type Registry struct {
	cmds  []Command
	warnf func(format string, args ...any)
	after func()
}

// NewRegistry constructs a registry reporting user-visible warnings through
// warnf.
func NewRegistry(warnf func(format string, args ...any)) *Registry {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}
	return &Registry{warnf: warnf}
}

// Register appends commands to the table.
func (r *Registry) Register(cmds ...Command) {
	r.cmds = append(r.cmds, cmds...)
}

// SetAfterDispatch installs the hook that runs after every successful
// dispatch. Persistence is injected here rather than hard-coded.
func (r *Registry) SetAfterDispatch(fn func()) {
	r.after = fn
}

// Commands returns the registered table in registration order.
func (r *Registry) Commands() []Command {
	return r.cmds
}

// Dispatch resolves and invokes the command in a line starting with "/".
// Validation failures and unknown names produce warnings; the handler is not
// invoked for them.
func (r *Registry) Dispatch(line string) {
	rest := strings.TrimLeft(strings.TrimPrefix(line, "/"), " \t")
	name, rest := popToken(rest)

	var cmd *Command
	for i := range r.cmds {
		if r.cmds[i].Name == name {
			cmd = &r.cmds[i]
			break
		}
	}
	if cmd == nil {
		r.warnf("! Invalid command, use `/help` to get list of available commands.")
		return
	}

	args := make([]string, 0, cmd.NArg)
	for rest != "" && len(args) != cmd.NArg {
		if len(args) == cmd.NArg-1 {
			// Last expected slot: take the remainder verbatim so free
			// text keeps its spaces.
			args = append(args, rest)
			rest = ""
			continue
		}
		var tok string
		tok, rest = popToken(rest)
		args = append(args, tok)
	}

	minArgs := cmd.NArg
	if cmd.Variadic {
		minArgs = cmd.MinArg
	}
	if len(args) < minArgs {
		r.warnf("Wrong number of cmd args")
		return
	}

	cmd.Handler(args)
	if r.after != nil {
		r.after()
	}
}

// popToken splits off the next blank-delimited token and strips the blanks
// that follow it.
func popToken(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i+1:], " \t")
}

// Command lognorm is an interactive REPL: load one or more rule files
// into a named context, then feed it log lines and see the normalized
// JSON (or the WRONGPARSER diagnostic fields) come back.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	lognorm "github.com/ritamzico/lognorm"
)

const helpText = `lognorm interactive REPL

Commands:
  new <name>            Create a new empty context
  load <name> <file>    Load a rule file into a context
  optimize <name>       Run literal-path compaction on a context
  unload <name>         Remove a loaded context
  list                  List all loaded contexts
  use <name>            Set the active context for normalizing input
  stats                 Show PDAG stats for the active context
  dot                   Show a DOT graph of the active context's PDAG
  help                  Show this help message
  exit / quit           Exit the REPL

Any other input is normalized against the active context.
`

func main() {
	debug := pflag.Bool("debug", false, "enable debug tracing on newly created contexts")
	pflag.Parse()

	contexts := make(map[string]*lognorm.Context)
	var active string

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("lognorm — log-line normalizer")
	fmt.Println(`Type "help" for available commands.`)
	fmt.Println()

	for {
		if active != "" {
			fmt.Printf("[%s]> ", active)
		} else {
			fmt.Print("> ")
		}

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "exit", "quit":
			return

		case "help":
			fmt.Print(helpText)

		case "list":
			if len(contexts) == 0 {
				fmt.Println("(no contexts loaded)")
				continue
			}
			for name := range contexts {
				marker := " "
				if name == active {
					marker = "*"
				}
				fmt.Printf("  %s %s\n", marker, name)
			}

		case "new":
			if len(parts) < 2 {
				fmt.Fprintln(os.Stderr, "usage: new <name>")
				continue
			}
			name := parts[1]
			contexts[name] = lognorm.New(lognorm.WithDebug(*debug))
			if active == "" {
				active = name
			}
			fmt.Printf("created empty context %q\n", name)

		case "use":
			if len(parts) < 2 {
				fmt.Fprintln(os.Stderr, "usage: use <name>")
				continue
			}
			name := parts[1]
			if _, ok := contexts[name]; !ok {
				fmt.Fprintf(os.Stderr, "no context named %q\n", name)
				continue
			}
			active = name
			fmt.Printf("active context set to %q\n", name)

		case "load":
			if len(parts) < 3 {
				fmt.Fprintln(os.Stderr, "usage: load <name> <file>")
				continue
			}
			name, path := parts[1], parts[2]
			ctx, ok := contexts[name]
			if !ok {
				ctx = lognorm.New(lognorm.WithDebug(*debug))
				contexts[name] = ctx
			}
			if err := ctx.LoadFile(path); err != nil {
				fmt.Fprintf(os.Stderr, "error loading %q: %v\n", path, err)
				continue
			}
			if active == "" {
				active = name
			}
			fmt.Printf("loaded rules from %q into %q\n", path, name)

		case "optimize":
			if len(parts) < 2 {
				fmt.Fprintln(os.Stderr, "usage: optimize <name>")
				continue
			}
			name := parts[1]
			ctx, ok := contexts[name]
			if !ok {
				fmt.Fprintf(os.Stderr, "no context named %q\n", name)
				continue
			}
			if err := ctx.Optimize(); err != nil {
				fmt.Fprintf(os.Stderr, "optimize error: %v\n", err)
				continue
			}
			fmt.Printf("optimized %q\n", name)

		case "unload":
			if len(parts) < 2 {
				fmt.Fprintln(os.Stderr, "usage: unload <name>")
				continue
			}
			name := parts[1]
			if _, ok := contexts[name]; !ok {
				fmt.Fprintf(os.Stderr, "no context named %q\n", name)
				continue
			}
			delete(contexts, name)
			if active == name {
				active = ""
			}
			fmt.Printf("unloaded %q\n", name)

		case "stats":
			if active == "" {
				fmt.Fprintln(os.Stderr, "no active context — use 'load' or 'use' first")
				continue
			}
			contexts[active].FullPdagStats(os.Stdout)

		case "dot":
			if active == "" {
				fmt.Fprintln(os.Stderr, "no active context — use 'load' or 'use' first")
				continue
			}
			contexts[active].GenDotPDAGGraph(os.Stdout)

		default:
			if active == "" {
				fmt.Fprintln(os.Stderr, "no active context — use 'load' or 'use' first")
				continue
			}
			obj, ok := contexts[active].Normalize(line)
			b, err := json.Marshal(obj.ToMap())
			if err != nil {
				fmt.Fprintf(os.Stderr, "encode error: %v\n", err)
				continue
			}
			if !ok {
				fmt.Fprintln(os.Stderr, "WRONGPARSER (no rule matched):")
			}
			fmt.Println(string(b))
		}
	}
}

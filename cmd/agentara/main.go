// Package main provides the Agentara CLI.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/agentarahq/agentara"
	"github.com/agentarahq/agentara/catalog"
	"github.com/agentarahq/agentara/dsl"
)

var (
	version = "dev"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "validate":
		validateCmd(args)
	case "fmt":
		fmtCmd(args)
	case "export":
		exportCmd(args)
	case "catalog":
		catalogCmd(args)
	case "version":
		fmt.Printf("agentara %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Agentara - AI Agent Definition Language

Usage:
  agentara <command> [options]

Commands:
  validate  Parse and validate a definition file
  fmt       Reprint a definition file in canonical form
  export    Export a definition file as YAML
  catalog   Manage the definition catalog (add, list, rm)
  version   Print version information
  help      Show this help message

Examples:
  agentara validate team.agentara
  agentara fmt team.agentara
  agentara export team.agentara
  agentara catalog add --name team team.agentara
  agentara catalog list

Run 'agentara <command> --help' for more information on a command.`)
}

// setupLogging routes slog output to stderr, with debug detail when verbose.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// grammarFlag maps the --grammar option onto a dsl.Grammar.
func grammarFlag(name string) dsl.Grammar {
	switch name {
	case "simple":
		return dsl.GrammarSimple
	case "", "full":
		return dsl.GrammarFull
	}
	fmt.Fprintf(os.Stderr, "Error: unknown grammar %q (want full or simple)\n", name)
	os.Exit(1)
	return dsl.GrammarFull
}

// loadArg parses the single file argument of a subcommand.
func loadArg(fs *flag.FlagSet, grammar string, skipValidation bool) *agentara.Model {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: no definition file specified")
		fs.Usage()
		os.Exit(1)
	}
	file := fs.Arg(0)

	loader := &dsl.Loader{
		Parser:         &dsl.Parser{Grammar: grammarFlag(grammar)},
		SkipValidation: skipValidation,
	}
	model, err := loader.LoadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return model
}

// validateCmd parses and validates a definition file.
func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	grammar := fs.String("grammar", "full", "Grammar variant: full or simple")
	verbose := fs.Bool("verbose", false, "Enable verbose output")

	fs.Usage = func() {
		fmt.Println(`Usage: agentara validate <file> [options]

Parse and validate a definition file.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	setupLogging(*verbose)

	model := loadArg(fs, *grammar, false)
	fmt.Printf("OK: %d agents, %d workflows\n", len(model.Agents), len(model.Workflows))
}

// fmtCmd reprints a definition file in canonical form.
func fmtCmd(args []string) {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	grammar := fs.String("grammar", "full", "Grammar variant: full or simple")

	fs.Usage = func() {
		fmt.Println(`Usage: agentara fmt <file> [options]

Parse a definition file and print it back in canonical formatting.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	setupLogging(false)

	model := loadArg(fs, *grammar, true)
	fmt.Print(dsl.Format(model))
}

// exportCmd prints a definition file as YAML.
func exportCmd(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	grammar := fs.String("grammar", "full", "Grammar variant: full or simple")

	fs.Usage = func() {
		fmt.Println(`Usage: agentara export <file> [options]

Parse and validate a definition file, then print the model as YAML.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	setupLogging(false)

	model := loadArg(fs, *grammar, false)
	out, err := model.YAML()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}

// catalogCmd manages the definition catalog.
func catalogCmd(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: catalog requires a subcommand: add, list, rm")
		os.Exit(1)
	}

	sub := args[0]
	args = args[1:]

	switch sub {
	case "add":
		catalogAddCmd(args)
	case "list":
		catalogListCmd(args)
	case "rm":
		catalogRmCmd(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown catalog subcommand: %s\n", sub)
		os.Exit(1)
	}
}

func openStore(path string) *catalog.SQLiteStore {
	store, err := catalog.NewSQLiteStore(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening catalog: %v\n", err)
		os.Exit(1)
	}
	if err := store.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing catalog: %v\n", err)
		os.Exit(1)
	}
	return store
}

func catalogAddCmd(args []string) {
	fs := flag.NewFlagSet("catalog add", flag.ExitOnError)
	db := fs.String("db", "agentara.db", "Catalog database path")
	name := fs.String("name", "", "Name to store the definition under (default: file path)")
	verbose := fs.Bool("verbose", false, "Enable verbose output")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	setupLogging(*verbose)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: no definition file specified")
		os.Exit(1)
	}
	file := fs.Arg(0)

	source, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	model, err := dsl.LoadString(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	defName := *name
	if defName == "" {
		defName = file
	}

	store := openStore(*db)
	defer store.Close()

	def := catalog.NewDefinition(defName, string(source), model)
	if err := store.Put(def); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Stored %q: %d agents\n", defName, def.AgentCount)
}

func catalogListCmd(args []string) {
	fs := flag.NewFlagSet("catalog list", flag.ExitOnError)
	db := fs.String("db", "agentara.db", "Catalog database path")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	setupLogging(false)

	store := openStore(*db)
	defer store.Close()

	defs, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(defs) == 0 {
		fmt.Println("Catalog is empty.")
		return
	}
	for _, def := range defs {
		fmt.Printf("%s\t%d agents\t%s\n", def.Name, def.AgentCount,
			def.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func catalogRmCmd(args []string) {
	fs := flag.NewFlagSet("catalog rm", flag.ExitOnError)
	db := fs.String("db", "agentara.db", "Catalog database path")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	setupLogging(false)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: no definition name specified")
		os.Exit(1)
	}

	store := openStore(*db)
	defer store.Close()

	if err := store.Delete(fs.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Removed %q\n", fs.Arg(0))
}

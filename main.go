package main

import (
	"fmt"
	"os"

	"github.com/roveo/topo-context/tools"
	"github.com/spf13/cobra"
	_ "github.com/tliron/commonlog/simple"
)

var skipPatterns []string
var lineLimit int
var cfg config

var rootCmd = &cobra.Command{
	Use:   "topo",
	Short: "Incremental document model and structural retrieval for LLMs",
	Long: `topo keeps source documents open in memory, re-analyzes them after every edit
and answers structural questions about them: functions, classes and types with
their documentation, enclosing functions, expanded selections and outlines.
It also retrieves the 50-line windows most similar to a query.
Supports Go, Python, TypeScript/JavaScript, and Rust.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = loadConfig(); err != nil {
			return err
		}
		cfg.configureLogging()
		return nil
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as MCP server (communicates via stdio)",
	Long: `Run as an MCP server that communicates via stdio.
Exposes tools: open_document, open_directory, list_documents, read_document,
apply_edit, save_document, close_document, index, read_definition,
write_definition, find_identifier, find_enclosing_function, expand_selection,
outline, similar_snippets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer(cfg, skipPatterns, lineLimit)
	},
}

var outlineCmd = &cobra.Command{
	Use:   "outline <file>",
	Short: "Print the class outline of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOutline(cfg, args[0])
	},
}

var symbolsCmd = &cobra.Command{
	Use:   "symbols [path...]",
	Short: "List functions, classes and types of files or directories",
	Long: `Open the given files and directories and print a compact listing of their
functions, classes and types with line ranges and the first documentation line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}
		filter, _ := cmd.Flags().GetString("filter")
		return runSymbols(cfg, args, skipPatterns, filter, lineLimit)
	},
}

var similarCmd = &cobra.Command{
	Use:   "similar <path> <query>",
	Short: "Print the windows most similar to a query",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimilar(cfg, args[0], args[1])
	},
}

func init() {
	// Add --skip flag to root (inherited by all subcommands)
	rootCmd.PersistentFlags().StringArrayVar(&skipPatterns, "skip", nil,
		"Path prefixes to skip by default (can be specified multiple times)")

	// Add --limit flag to root (inherited by all subcommands)
	rootCmd.PersistentFlags().IntVar(&lineLimit, "limit", tools.DefaultLineLimit,
		"Maximum lines in output (0 = no limit)")

	symbolsCmd.Flags().StringP("filter", "f", "",
		"Only show symbols for files matching this path prefix (file or directory)")

	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(similarCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

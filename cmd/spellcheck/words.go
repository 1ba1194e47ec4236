package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/praetorian-inc/spellcheck/pkg/wordlist"
	"github.com/spf13/cobra"
)

var (
	wordsPath   string
	wordsFormat string
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Inspect word lists",
	Long:  "Commands for inspecting the built-in misspelling list and custom word lists",
}

var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the words of a word list",
	Long:  "Display the words of the built-in misspelling list, or of the list given with --list",
	RunE:  runWordsList,
}

func init() {
	wordsCmd.AddCommand(wordsListCmd)
	wordsListCmd.Flags().StringVar(&wordsPath, "list", "", "Path to a word list file (text or YAML)")
	wordsListCmd.Flags().StringVar(&wordsFormat, "format", "table", "Output format: table, json")
}

func runWordsList(cmd *cobra.Command, args []string) error {
	loader := wordlist.NewLoader()

	var list *wordlist.List
	var err error
	if wordsPath != "" {
		list, err = loader.LoadFile(wordsPath)
		if err != nil {
			return fmt.Errorf("loading word list from %s: %w", wordsPath, err)
		}
	} else {
		list, err = loader.LoadBuiltin(wordlist.Misspellings)
		if err != nil {
			return fmt.Errorf("loading builtin list: %w", err)
		}
	}

	switch wordsFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(list)
	case "table":
		return outputWordsTable(cmd, list)
	default:
		return fmt.Errorf("unknown output format: %s", wordsFormat)
	}
}

func outputWordsTable(cmd *cobra.Command, list *wordlist.List) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Name:\t%s\n", list.Name)
	if list.Description != "" {
		fmt.Fprintf(w, "Description:\t%s\n", list.Description)
	}
	fmt.Fprintf(w, "Words:\t%d\n\n", len(list.Words))

	for _, word := range list.Words {
		fmt.Fprintln(w, word)
	}
	return nil
}

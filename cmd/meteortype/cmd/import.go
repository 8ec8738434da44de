package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomz197/meteortype/internal/vocab"
)

var importClear bool

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Store a custom word list",
	Long: `Validate a word list and store it as the default pool for future games.

The file holds an array of objects with "q" (shown on the meteor), "a" (the
answer to type) and an optional "emoji". JSON and YAML (.yaml, .yml) are
accepted. Nothing is stored unless every entry is valid.

Use --clear to go back to the built-in vocabulary.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if importClear {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importClear, "clear", false, "remove the custom list and use the built-in vocabulary")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if importClear {
		if err := st.ClearWords(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Custom list removed, using %d built-in words.", vocab.DefaultPool().Len())))
		return nil
	}

	entries, err := vocab.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("nothing imported: %w", err)
	}
	if err := st.SaveWords(ctx, entries); err != nil {
		return err
	}
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Imported %d words from %s.", len(entries), args[0])))
	return nil
}

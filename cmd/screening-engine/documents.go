// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/screening-engine/internal/documents"
	"github.com/pdiddy/screening-engine/pkg/types"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage the document corpus (ingest, list)",
	Long: `Documents manages the corpus the screening processes draw from. Ingest
reads per-document YAML metadata files into the SQLite store; list shows
the stored corpus for a user.`,
}

// --- ingest subcommand ---

var documentsIngestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Ingest per-document YAML metadata files into the store",
	Long: `Ingest reads every .yaml/.yml file in the given directory (default:
<data-dir>/corpus) as one document record and upserts it for the acting
user. The filename is used as the document ID when the file carries none.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocumentsIngest,
}

func runDocumentsIngest(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	dir := store.CorpusDir()
	if len(args) > 0 {
		dir = args[0]
	}
	userID, _ := cmd.Flags().GetString("user")

	summary, err := store.Ingest(context.Background(), dir, userID, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed ingest", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored corpus for a user",
	RunE:  runDocumentsList,
}

func runDocumentsList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	userID, _ := cmd.Flags().GetString("user")
	docs, err := store.ListDocuments(context.Background(), userID)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	if len(docs) == 0 {
		fmt.Println("No documents stored.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-50s  %-6s  %s\n", "ID", "Title", "Year", "Abstract")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, d := range docs {
		title := d.Metadata.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		hasAbstract := "yes"
		if strings.TrimSpace(d.Metadata.Abstract) == "" {
			hasAbstract = "no"
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-50s  %-6d  %s\n", d.ID, title, d.Metadata.Year, hasAbstract)
	}
	fmt.Fprintf(os.Stdout, "\n%d documents\n", len(docs))
	return nil
}

// openStore builds the document store from flags and config.
func openStore(cmd *cobra.Command) (*documents.Store, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("documents.data_dir")
	}
	if dataDir == "" {
		dataDir = "data"
	}
	return documents.NewStore(types.DocumentStoreConfig{DataDir: dataDir})
}

func init() {
	documentsCmd.PersistentFlags().String("data-dir", "", "base directory for engine data (default: data)")
	documentsCmd.PersistentFlags().String("user", "local", "acting user ID")

	documentsListCmd.Flags().Bool("json", false, "output documents as JSON")

	documentsCmd.AddCommand(documentsIngestCmd)
	documentsCmd.AddCommand(documentsListCmd)

	rootCmd.AddCommand(documentsCmd)
}

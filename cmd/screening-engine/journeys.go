// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/screening-engine/pkg/types"
)

var journeysCmd = &cobra.Command{
	Use:   "journeys",
	Short: "Manage the journey registry (add, list)",
	Long: `Journeys registers the bounded units of work that process runs belong
to. A run is rejected when its journey is not registered.`,
}

var journeysAddCmd = &cobra.Command{
	Use:   "add [journey-id]",
	Short: "Register a journey",
	Args:  cobra.ExactArgs(1),
	RunE:  runJourneysAdd,
}

func runJourneysAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	userID, _ := cmd.Flags().GetString("user")
	name, _ := cmd.Flags().GetString("name")

	j := types.Journey{ID: args[0], UserID: userID, Name: name}
	if err := store.AddJourney(context.Background(), j); err != nil {
		return err
	}
	fmt.Printf("registered journey %s\n", j.ID)
	return nil
}

var journeysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered journeys for a user",
	RunE:  runJourneysList,
}

func runJourneysList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	userID, _ := cmd.Flags().GetString("user")
	journeys, err := store.ListJourneys(context.Background(), userID)
	if err != nil {
		return err
	}

	if len(journeys) == 0 {
		fmt.Println("No journeys registered.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-24s  %s\n", "ID", "Name")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 50))
	for _, j := range journeys {
		fmt.Fprintf(os.Stdout, "%-24s  %s\n", j.ID, j.Name)
	}
	return nil
}

func init() {
	journeysCmd.PersistentFlags().String("data-dir", "", "base directory for engine data (default: data)")
	journeysCmd.PersistentFlags().String("user", "local", "acting user ID")

	journeysAddCmd.Flags().String("name", "", "human-readable journey name")

	journeysCmd.AddCommand(journeysAddCmd)
	journeysCmd.AddCommand(journeysListCmd)

	rootCmd.AddCommand(journeysCmd)
}

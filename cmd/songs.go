package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unera-social/unera-tui/internal/output"
)

var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "List the story music catalog",
	RunE:  runSongs,
}

func init() {
	songsCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(songsCmd)
}

func runSongs(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	songs, err := store.Songs()
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(songs)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.Heading("Song catalog"))
	table := output.NewTable(cmd.OutOrStdout(), []string{"Title", "Artist", "Album", "Duration", "Plays", "Reel uses"})
	for _, s := range songs {
		table.AddRow([]string{
			s.Title,
			s.Artist,
			s.Album,
			s.Duration,
			strconv.FormatInt(s.Stats.Plays, 10),
			strconv.FormatInt(s.Stats.ReelUses, 10),
		})
	}
	table.Render()
	return nil
}

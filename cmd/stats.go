package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/mergestat/timediff"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show board statistics",
	Long:  `Display statistics about accounts, messages and replies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close() //nolint: errcheck

		stats, err := db.GetStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get board stats: %w", err)
		}

		fmt.Println("Board Statistics:")
		fmt.Printf("Users: %s (%s active)\n", humanize.Comma(stats.Users), humanize.Comma(stats.ActiveUsers))
		fmt.Printf("Admins: %s (%s active)\n", humanize.Comma(stats.Admins), humanize.Comma(stats.ActiveAdmins))
		fmt.Printf("Messages: %s (%s public, %s private)\n",
			humanize.Comma(stats.Messages()),
			humanize.Comma(stats.PublicMessages),
			humanize.Comma(stats.PrivateMessages),
		)
		fmt.Printf("Replies: %s (%s deleted)\n", humanize.Comma(stats.Replies), humanize.Comma(stats.DeletedReplies))

		if stats.LastMessageAt != nil {
			fmt.Printf("Last Message: %s\n", timediff.TimeDiff(*stats.LastMessageAt))
		} else {
			fmt.Println("Last Message: never")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

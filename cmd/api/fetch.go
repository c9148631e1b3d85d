package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"technotes/internal/client"

	"github.com/spf13/cobra"
)

var apiURL string

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Fetch and print all notes from a running server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c := client.New(apiURL, client.NewState())
		if err := c.FetchNotes(cmd.Context()); err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSER\tTITLE\tCOMPLETED\tUPDATED")
		for _, n := range c.State().Notes.SelectAll() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", n.ID, n.User, n.Title, n.Completed, n.UpdatedAt.Format(time.DateTime))
		}
		return w.Flush()
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Fetch and print all users from a running server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c := client.New(apiURL, client.NewState())
		if err := c.FetchUsers(cmd.Context()); err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tROLES\tACTIVE")
		for _, u := range c.State().Users.SelectAll() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", u.ID, u.Username, strings.Join(u.Roles, ","), u.Active)
		}
		return w.Flush()
	},
}

func init() {
	for _, cmd := range []*cobra.Command{notesCmd, usersCmd} {
		cmd.Flags().StringVarP(&apiURL, "url", "u", "http://localhost:3500", "base URL of the API")
	}
}

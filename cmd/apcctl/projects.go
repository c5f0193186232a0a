package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"apc-control/session"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List saved projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := session.ListProjects()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintln(out, "no saved projects; set project: <name> in the config to create one")
			return nil
		}
		for _, n := range names {
			fmt.Fprintln(out, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JamesPrial/tasklist/internal/intent"
)

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show all tasks and progress",
		Args:    cobra.NoArgs,
		RunE:    c.runList,
	}
}

func (c *cli) runList(cmd *cobra.Command, args []string) error {
	return c.apply(intent.Intent{Action: intent.ActionList}, true)
}

func (c *cli) addCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Long:  "Add a task. All arguments are joined with spaces to form the title.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.apply(intent.Intent{
				Action: intent.ActionAdd,
				Text:   strings.Join(args, " "),
				Notes:  notes,
			}, false)
		},
	}
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Optional notes for the task")

	return cmd
}

func (c *cli) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Mark a task done, or reopen it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.apply(intent.Intent{Action: intent.ActionToggle, ID: args[0]}, false)
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.apply(intent.Intent{Action: intent.ActionDelete, ID: args[0]}, false)
		},
	}
}

func (c *cli) clearCmd() *cobra.Command {
	var completed, all, yes bool

	cmd := &cobra.Command{
		Use:   "clear (--completed | --all [--yes])",
		Short: "Remove completed tasks, or every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if completed == all {
				return userError(errors.New("specify exactly one of --completed or --all"))
			}
			if completed {
				return c.apply(intent.Intent{Action: intent.ActionClearCompleted}, false)
			}

			if !yes {
				if !c.confirm("Delete all tasks? [y/N]: ") {
					fmt.Fprintln(c.stdout, "Aborted.")
					return nil
				}
			}
			return c.apply(intent.Intent{Action: intent.ActionClearAll, Confirm: true}, false)
		},
	}
	cmd.Flags().BoolVar(&completed, "completed", false, "Remove completed tasks")
	cmd.Flags().BoolVar(&all, "all", false, "Remove every task")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt for --all")

	return cmd
}

func (c *cli) applyCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply one JSON intent read from stdin",
		Long: `Apply one JSON intent read from stdin, for scripts and other front ends.

Example:
  echo '{"action":"add","text":"Buy milk","notes":"2 litres"}' | tasklist apply

Actions: list, add, toggle, delete, clear_completed, clear_all (needs "confirm": true).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := intent.ReadIntent(c.stdin)
			if err != nil {
				return userError(err)
			}
			if !asJSON {
				return c.apply(*in, in.Action == intent.ActionList)
			}

			out, err := intent.Apply(c.app.Store, *in)
			if err != nil {
				out.Notice = intent.ErrorNotice(err)
			}
			enc := json.NewEncoder(c.stdout)
			enc.SetIndent("", "  ")
			if encErr := enc.Encode(out); encErr != nil {
				return setupError(encErr)
			}
			if err != nil {
				return userError(err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the outcome as JSON")

	return cmd
}

// apply runs in and prints the notice, or the full list when showList is set.
func (c *cli) apply(in intent.Intent, showList bool) error {
	out, err := intent.Apply(c.app.Store, in)
	if err != nil {
		return userError(errors.New(intent.ErrorNotice(err).Text))
	}

	if out.Notice.Text != "" {
		fmt.Fprintln(c.stdout, out.Notice.Text)
	}
	if out.Item != nil && in.Action == intent.ActionAdd {
		fmt.Fprintf(c.stdout, "id: %s\n", out.Item.ID)
	}
	if showList {
		fmt.Fprint(c.stdout, intent.FormatList(out.Items))
	} else if out.Action != intent.ActionList {
		fmt.Fprintln(c.stdout, intent.Summary(out.Progress))
	}

	if perr := c.app.Store.LastPersistError(); perr != nil {
		c.app.Logger.Printf("Warning: change kept in memory only: %v", perr)
	}
	return nil
}

// confirm prints prompt and reads one line from stdin. Only "y" and "yes"
// (any case) confirm; EOF counts as no.
func (c *cli) confirm(prompt string) bool {
	fmt.Fprint(c.stdout, prompt)

	reader := bufio.NewReader(c.stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(c.stdout)
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/circumplex/internal/cli"
	"github.com/at-ishikawa/circumplex/internal/config"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

func newCollectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"collection"},
		Short:   "Manage named groups of entries",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List collections",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withService(cmd.Context(), func(_ *config.Config, svc tracker.Service) error {
					collections, err := svc.Collections(cmd.Context())
					if err != nil {
						return fmt.Errorf("svc.Collections() > %w", err)
					}
					cli.NewPrinter(cmd.OutOrStdout()).PrintCollections(collections)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Create a collection",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withService(cmd.Context(), func(_ *config.Config, svc tracker.Service) error {
					c, err := svc.AddCollection(cmd.Context(), args[0])
					if err != nil {
						return fmt.Errorf("svc.AddCollection() > %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Created collection %s (%s)\n", c.Name, c.ID)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Delete a collection and unassign its entries",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withService(cmd.Context(), func(_ *config.Config, svc tracker.Service) error {
					if err := svc.RemoveCollection(cmd.Context(), args[0]); err != nil {
						return fmt.Errorf("svc.RemoveCollection() > %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Removed collection %s\n", args[0])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "assign <index> [id]",
			Short: "Put an entry into a collection, or take it out when id is omitted",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				index, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				id := ""
				if len(args) == 2 {
					id = args[1]
				}
				return withService(cmd.Context(), func(_ *config.Config, svc tracker.Service) error {
					if err := svc.AssignCollection(cmd.Context(), index, id); err != nil {
						return fmt.Errorf("svc.AssignCollection() > %w", err)
					}
					if id == "" {
						fmt.Fprintf(cmd.OutOrStdout(), "Entry %d removed from its collection\n", index)
						return nil
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Entry %d assigned to %s\n", index, id)
					return nil
				})
			},
		},
	)
	return cmd
}

func newTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Manage entry tags",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every tag used so far",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withService(cmd.Context(), func(_ *config.Config, svc tracker.Service) error {
					tags, err := svc.Tags(cmd.Context())
					if err != nil {
						return fmt.Errorf("svc.Tags() > %w", err)
					}
					cli.NewPrinter(cmd.OutOrStdout()).PrintTags(tags)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set <index> [tag...]",
			Short: "Replace the tags of an entry; no tags clears them",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				index, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				return withService(cmd.Context(), func(_ *config.Config, svc tracker.Service) error {
					if err := svc.TagEntry(cmd.Context(), index, args[1:]); err != nil {
						return fmt.Errorf("svc.TagEntry() > %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Tagged entry %d\n", index)
					return nil
				})
			},
		},
	)
	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/scriptdeck/internal/client"
)

// namedOps — операции ресурса с полями name/description/color.
type namedOps struct {
	noun   string
	plural string
	list   func(*client.Client, context.Context) (*client.Response, error)
	create func(*client.Client, context.Context, any) (*client.Response, error)
	update func(*client.Client, context.Context, int, any) (*client.Response, error)
	remove func(*client.Client, context.Context, int) (*client.Response, error)
}

// NewCategoryCmd создаёт группу команд для категорий скриптов.
func NewCategoryCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return newNamedCmd("category", "Manage script categories", namedOps{
		noun:   "Category",
		plural: "categories",
		list:   (*client.Client).GetCategories,
		create: (*client.Client).CreateCategory,
		update: (*client.Client).UpdateCategory,
		remove: (*client.Client).DeleteCategory,
	}, true, clientFn, outputFn)
}

// NewTagCmd создаёт группу команд для тегов скриптов.
func NewTagCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return newNamedCmd("tag", "Manage script tags", namedOps{
		noun:   "Tag",
		plural: "tags",
		list:   (*client.Client).GetTags,
		create: (*client.Client).CreateTag,
		update: (*client.Client).UpdateTag,
		remove: (*client.Client).DeleteTag,
	}, false, clientFn, outputFn)
}

func newNamedCmd(use, short string, ops namedOps, withDescription bool, clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	headers := []string{"ID", "NAME", "COLOR"}
	row := func(c client.Category) []string {
		return []string{itoa(c.ID), c.Name, c.Color}
	}
	if withDescription {
		headers = []string{"ID", "NAME", "DESCRIPTION", "COLOR"}
		row = func(c client.Category) []string {
			return []string{itoa(c.ID), c.Name, c.Description, c.Color}
		}
	}

	var name, description, color string
	register := func(c *cobra.Command) {
		c.Flags().StringVar(&name, "name", "", ops.noun+" name")
		c.Flags().StringVar(&color, "color", "", "Display color (e.g. #409EFF)")
		if withDescription {
			c.Flags().StringVar(&description, "description", "", "Description")
		}
	}
	request := func() client.NamedRequest {
		return client.NamedRequest{Name: name, Description: description, Color: color}
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + ops.plural,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := ops.list(clientFn(), cmd.Context())
			if err != nil {
				return err
			}
			return printList(outputFn(), resp, headers, row)
		},
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + use,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			resp, err := ops.create(clientFn(), cmd.Context(), request())
			if err != nil {
				return err
			}

			printMessage(out, resp, ops.noun+" created")
			return printOne(out, resp, headers, row)
		},
	}
	register(createCmd)
	createCmd.MarkFlagRequired("name")

	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a " + use,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out := outputFn()

			resp, err := ops.update(clientFn(), cmd.Context(), id, request())
			if err != nil {
				return err
			}

			printMessage(out, resp, ops.noun+" updated")
			return printOne(out, resp, headers, row)
		},
	}
	register(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + use,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := ops.remove(clientFn(), cmd.Context(), id)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("%s deleted: %d", ops.noun, id))
			return nil
		},
	}

	cmd.AddCommand(listCmd, createCmd, updateCmd, deleteCmd)
	return cmd
}

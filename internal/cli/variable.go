package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/shaiso/scriptdeck/internal/client"
)

// NewVariableCmd создаёт группу команд для глобальных переменных.
func NewVariableCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "variable",
		Aliases: []string{"var"},
		Short:   "Manage global variables",
	}

	cmd.AddCommand(
		newVariableListCmd(clientFn, outputFn),
		newVariableShowCmd(clientFn, outputFn),
		newVariableCreateCmd(clientFn, outputFn),
		newVariableUpdateCmd(clientFn, outputFn),
		newVariableDeleteCmd(clientFn, outputFn),
		newVariableDictCmd(clientFn, outputFn),
	)

	return cmd
}

var variableHeaders = []string{"ID", "KEY", "VALUE", "ENCRYPTED", "DESCRIPTION"}

func variableRow(v client.GlobalVariable) []string {
	return []string{itoa(v.ID), v.Key, truncate(v.Value, 60), formatBool(v.IsEncrypted), v.Description}
}

func newVariableListCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var showEncrypted bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List global variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := clientFn().GetGlobalVariables(cmd.Context(), showEncrypted)
			if err != nil {
				return err
			}
			return printList(outputFn(), resp, variableHeaders, variableRow)
		},
	}

	cmd.Flags().BoolVar(&showEncrypted, "show-encrypted", false, "Reveal encrypted values")

	return cmd
}

func newVariableShowCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var showEncrypted bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a global variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().GetGlobalVariable(cmd.Context(), id, showEncrypted)
			if err != nil {
				return err
			}
			return printOne(outputFn(), resp, variableHeaders, variableRow)
		},
	}

	cmd.Flags().BoolVar(&showEncrypted, "show-encrypted", false, "Reveal the encrypted value")

	return cmd
}

type variableFlags struct {
	key         string
	value       string
	description string
	encrypted   bool
}

func (f *variableFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.key, "key", "", "Variable key")
	cmd.Flags().StringVar(&f.value, "value", "", "Variable value")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().BoolVar(&f.encrypted, "encrypted", false, "Store the value encrypted")
}

func (f *variableFlags) request(cmd *cobra.Command) client.VariableRequest {
	req := client.VariableRequest{
		Key:         f.key,
		Value:       f.value,
		Description: f.description,
	}
	if cmd.Flags().Changed("encrypted") {
		req.IsEncrypted = boolPtr(f.encrypted)
	}
	return req
}

func newVariableCreateCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var f variableFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a global variable",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			resp, err := clientFn().CreateGlobalVariable(cmd.Context(), f.request(cmd))
			if err != nil {
				return err
			}

			printMessage(out, resp, "Variable created")
			return printOne(out, resp, variableHeaders, variableRow)
		},
	}

	f.register(cmd)
	cmd.MarkFlagRequired("key")
	cmd.MarkFlagRequired("value")

	return cmd
}

func newVariableUpdateCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var f variableFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a global variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out := outputFn()

			resp, err := clientFn().UpdateGlobalVariable(cmd.Context(), id, f.request(cmd))
			if err != nil {
				return err
			}

			printMessage(out, resp, "Variable updated")
			return printOne(out, resp, variableHeaders, variableRow)
		},
	}

	f.register(cmd)

	return cmd
}

func newVariableDeleteCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a global variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().DeleteGlobalVariable(cmd.Context(), id)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Variable deleted: %d", id))
			return nil
		},
	}
}

func newVariableDictCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "dict",
		Short: "Print variables as a KEY → VALUE dictionary",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			resp, err := clientFn().GetGlobalVariablesDict(cmd.Context())
			if err != nil {
				return err
			}
			if out.jsonMode {
				return printData(out, resp)
			}

			var dict map[string]any
			if err := resp.Decode(&dict); err != nil {
				return err
			}
			keys := slices.Sorted(maps.Keys(dict))
			rows := make([][]string, len(keys))
			for i, k := range keys {
				rows[i] = []string{k, fmt.Sprint(dict[k])}
			}
			out.Table([]string{"KEY", "VALUE"}, rows)
			return nil
		},
	}
}

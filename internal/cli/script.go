package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaiso/scriptdeck/internal/client"
)

// NewScriptCmd создаёт группу команд для управления скриптами.
func NewScriptCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Manage scripts",
	}

	cmd.AddCommand(
		newScriptListCmd(clientFn, outputFn),
		newScriptShowCmd(clientFn, outputFn),
		newScriptCreateCmd(clientFn, outputFn),
		newScriptUpdateCmd(clientFn, outputFn),
		newScriptDeleteCmd(clientFn, outputFn),
		newScriptVersionsCmd(clientFn, outputFn),
		newScriptVersionCmd(clientFn, outputFn),
		newScriptRollbackCmd(clientFn, outputFn),
		newScriptRunCmd(clientFn, outputFn),
		newScriptFavoriteCmd(clientFn, outputFn),
	)

	return cmd
}

var scriptHeaders = []string{"ID", "NAME", "TYPE", "CATEGORY", "TAGS", "VERSION", "FAVORITE", "UPDATED"}

func scriptRow(s client.Script) []string {
	category := ""
	if s.Category != nil {
		category = s.Category.Name
	}
	tags := make([]string, len(s.Tags))
	for i, t := range s.Tags {
		tags[i] = t.Name
	}
	return []string{
		itoa(s.ID), s.Name, s.Type, category, strings.Join(tags, ","),
		itoa(s.Version), formatBool(s.IsFavorite), s.UpdatedAt,
	}
}

func newScriptListCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var lf listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := lf.query()
			if err != nil {
				return err
			}

			resp, err := clientFn().GetScripts(cmd.Context(), query)
			if err != nil {
				return err
			}
			return printList(outputFn(), resp, scriptHeaders, scriptRow)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&lf.search, "search", "", "Search by name or description")
	cmd.Flags().StringVar(&lf.category, "category", "", "Filter by category ID")

	return cmd
}

func newScriptShowCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var showCode bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show script details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out := outputFn()

			resp, err := clientFn().GetScript(cmd.Context(), id)
			if err != nil {
				return err
			}

			if showCode && !out.jsonMode {
				var s client.Script
				if err := resp.Decode(&s); err != nil {
					return err
				}
				out.Raw(s.Code)
				return nil
			}
			return printOne(out, resp, scriptHeaders, scriptRow)
		},
	}

	cmd.Flags().BoolVar(&showCode, "code", false, "Print script source only")

	return cmd
}

// scriptFlags — общие флаги create/update.
type scriptFlags struct {
	name          string
	description   string
	scriptType    string
	code          string
	codeFile      string
	dependencies  string
	parameters    string
	environmentID int
	categoryID    int
	tagIDs        []int
}

func (f *scriptFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Script name")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.scriptType, "type", "python", "Script type (python, shell, ...)")
	cmd.Flags().StringVar(&f.code, "code", "", "Script source")
	cmd.Flags().StringVar(&f.codeFile, "code-file", "", "Read script source from file")
	cmd.Flags().StringVar(&f.dependencies, "dependencies", "", "Dependencies (requirements.txt format)")
	cmd.Flags().StringVar(&f.parameters, "parameters", "", "Parameter definitions as JSON or @file")
	cmd.Flags().IntVar(&f.environmentID, "environment-id", 0, "Execution environment ID")
	cmd.Flags().IntVar(&f.categoryID, "category-id", 0, "Category ID")
	cmd.Flags().IntSliceVar(&f.tagIDs, "tag-id", nil, "Tag ID (repeatable)")
}

// request собирает тело; для update учитываются только изменённые флаги.
func (f *scriptFlags) request(cmd *cobra.Command, partial bool) (client.ScriptRequest, error) {
	var req client.ScriptRequest
	set := func(name string) bool {
		return !partial || cmd.Flags().Changed(name)
	}

	if set("name") {
		req.Name = f.name
	}
	if set("description") {
		req.Description = f.description
	}
	if set("type") {
		req.Type = f.scriptType
	}
	if set("dependencies") {
		req.Dependencies = f.dependencies
	}

	switch {
	case f.codeFile != "":
		data, err := os.ReadFile(f.codeFile)
		if err != nil {
			return req, fmt.Errorf("read code file: %w", err)
		}
		req.Code = string(data)
	case set("code"):
		req.Code = f.code
	}

	if f.parameters != "" {
		params, err := readBody(f.parameters, os.ReadFile)
		if err != nil {
			return req, err
		}
		req.Parameters = params
	}
	if cmd.Flags().Changed("environment-id") {
		req.EnvironmentID = intPtr(f.environmentID)
	}
	if cmd.Flags().Changed("category-id") {
		req.CategoryID = intPtr(f.categoryID)
	}
	if cmd.Flags().Changed("tag-id") {
		req.TagIDs = f.tagIDs
	}
	return req, nil
}

func newScriptCreateCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var f scriptFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a script",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd, false)
			if err != nil {
				return err
			}
			out := outputFn()

			resp, err := clientFn().CreateScript(cmd.Context(), req)
			if err != nil {
				return err
			}

			printMessage(out, resp, "Script created")
			return printOne(out, resp, scriptHeaders, scriptRow)
		},
	}

	f.register(cmd)
	cmd.MarkFlagRequired("name")

	return cmd
}

func newScriptUpdateCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var f scriptFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a script (creates a new version when code changes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req, err := f.request(cmd, true)
			if err != nil {
				return err
			}
			out := outputFn()

			resp, err := clientFn().UpdateScript(cmd.Context(), id, req)
			if err != nil {
				return err
			}

			printMessage(out, resp, "Script updated")
			return printOne(out, resp, scriptHeaders, scriptRow)
		},
	}

	f.register(cmd)

	return cmd
}

func newScriptDeleteCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().DeleteScript(cmd.Context(), id)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Script deleted: %d", id))
			return nil
		},
	}
}

var versionHeaders = []string{"VERSION", "DESCRIPTION", "CREATED"}

func versionRow(v client.ScriptVersion) []string {
	return []string{itoa(v.Version), v.Description, v.CreatedAt}
}

func newScriptVersionsCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "versions ID",
		Short: "List script versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().GetScriptVersions(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printList(outputFn(), resp, versionHeaders, versionRow)
		},
	}
}

func newScriptVersionCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "version ID VERSION",
		Short: "Show script source at a version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			version, err := parseID(args[1])
			if err != nil {
				return err
			}
			out := outputFn()

			resp, err := clientFn().GetScriptVersion(cmd.Context(), id, version)
			if err != nil {
				return err
			}
			if out.jsonMode {
				return printData(out, resp)
			}

			var v client.ScriptVersion
			if err := resp.Decode(&v); err != nil {
				return err
			}
			out.Raw(v.Code)
			return nil
		},
	}
}

func newScriptRollbackCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "rollback ID VERSION",
		Short: "Roll a script back to a previous version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			version, err := parseID(args[1])
			if err != nil {
				return err
			}
			out := outputFn()

			resp, err := clientFn().RollbackScript(cmd.Context(), id, version)
			if err != nil {
				return err
			}

			printMessage(out, resp, fmt.Sprintf("Script %d rolled back to version %d", id, version))
			return nil
		},
	}
}

func newScriptRunCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var params []string
	var files []string

	cmd := &cobra.Command{
		Use:   "run ID",
		Short: "Execute a script",
		Long: `Execute a script with optional parameters.

Parameters are KEY=VALUE; JSON values (numbers, booleans, objects) are sent typed.
With --file the request is sent as multipart form: FIELD=PATH uploads PATH
under form field FIELD, a bare PATH uses the file name as field.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := parseParams(params)
			if err != nil {
				return err
			}
			api := clientFn()
			out := outputFn()

			var resp *client.Response
			if len(files) == 0 {
				resp, err = api.ExecuteScript(cmd.Context(), id, p)
			} else {
				form, closeAll, ferr := buildExecuteForm(p, files)
				if ferr != nil {
					return ferr
				}
				defer closeAll()
				resp, err = api.ExecuteScriptWithFiles(cmd.Context(), id, form)
			}
			if err != nil {
				return err
			}

			printMessage(out, resp, "Execution started")
			return printOne(out, resp, executionHeaders, executionRow)
		},
	}

	cmd.Flags().StringArrayVar(&params, "param", nil, "Parameter as KEY=VALUE (repeatable)")
	cmd.Flags().StringArrayVar(&files, "file", nil, "Input file as FIELD=PATH or PATH (repeatable)")

	return cmd
}

// buildExecuteForm собирает multipart-форму запуска: поле params (JSON) и файлы.
func buildExecuteForm(params map[string]any, files []string) (*client.Form, func(), error) {
	form := client.NewForm()
	var closers []func() error
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if len(params) > 0 {
		data, err := jsonString(params)
		if err != nil {
			return nil, nil, err
		}
		form.SetField("params", data)
	}

	for _, arg := range files {
		field, path := "", arg
		if i := strings.IndexByte(arg, '='); i > 0 {
			field, path = arg[:i], arg[i+1:]
		}
		if field == "" {
			field = fileBase(path)
		}
		c, err := form.AddFileFromPath(field, path)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, c.Close)
	}

	return form, closeAll, nil
}

func newScriptFavoriteCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite ID",
		Short: "Toggle script favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().ToggleScriptFavorite(cmd.Context(), id)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Favorite toggled: %d", id))
			return nil
		},
	}
}

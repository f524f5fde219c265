package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"

	"github.com/idilsaglam/todoclient/internal/flow"
	"github.com/idilsaglam/todoclient/internal/model"
	"github.com/idilsaglam/todoclient/internal/view"
)

// args wraps a cobra validator so arity mistakes exit with the usage code.
func args(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, a []string) error {
		if err := v(cmd, a); err != nil {
			return usageErr("%v", err)
		}
		return nil
	}
}

// withSession opens a session for one command run.
func withSession(app *App, cmd *cobra.Command, fn func(s *session) error) error {
	s, err := app.session(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s)
}

type errHolder interface{ Err() error }

// mutate runs a submitted job. Every failure was already notified by the
// controller, either on rejection or in Apply.
func (s *session) mutate(job flow.Job, ok bool, f errHolder) error {
	if !ok {
		if err := f.Err(); err != nil {
			return reported(err)
		}
		return errNotOpen
	}
	if err := s.run(job, true); err != nil {
		return reported(err)
	}
	return nil
}

func (s *session) printDetail(app *App) error {
	t, ok := s.detail()
	if !ok {
		return nil
	}
	return view.PrintDetail(app.Out, t)
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos",
		Args:    args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, app)
		},
	}
}

func runList(cmd *cobra.Command, app *App) error {
	return withSession(app, cmd, func(s *session) error {
		if err := s.ctl.Resync(s.ctx); err != nil {
			return reported(err)
		}
		return view.Print(app.Out, s.ctl.Cache().Items())
	})
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one todo, fetched fresh",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			return withSession(app, cmd, func(s *session) error {
				t, err := s.open(model.ID(a[0]))
				if err != nil {
					return err
				}
				return view.PrintDetail(app.Out, t)
			})
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	var description, due, status string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a todo (title can be multiple words)",
		Args:  args(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			st, err := model.ParseStatus(status)
			if err != nil {
				return usageErr("%v", err)
			}
			return withSession(app, cmd, func(s *session) error {
				f, ok := s.ctl.OpenCreate()
				if !ok {
					return errNotOpen
				}
				f.Title = strings.Join(a, " ")
				f.Description = description
				f.DueDate = due
				f.Status = st
				job, ok := s.ctl.SubmitCreate(f)
				return s.mutate(job, ok, s.ctl.Form(flow.Create))
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", string(model.StatusPending), "PENDING or DONE")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var title, description, due string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace the title, description or due date of a todo",
		Long: "Edit sends the whole record back with the given fields replaced. " +
			"Pass an empty value to clear description or due date. The status is kept.",
		Args: args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			fl := cmd.Flags()
			if !fl.Changed("title") && !fl.Changed("description") && !fl.Changed("due") {
				return usageErr("edit: nothing to change (use --title, --description or --due)")
			}
			return withSession(app, cmd, func(s *session) error {
				if _, err := s.open(model.ID(a[0])); err != nil {
					return err
				}
				f, ok := s.ctl.OpenUpdate()
				if !ok {
					return errNotOpen
				}
				if fl.Changed("title") {
					f.Title = title
				}
				if fl.Changed("description") {
					f.Description = description
				}
				if fl.Changed("due") {
					f.DueDate = due
				}
				job, ok := s.ctl.SubmitUpdate(f)
				if err := s.mutate(job, ok, s.ctl.Form(flow.Update)); err != nil {
					return err
				}
				return s.printDetail(app)
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&due, "due", "", "new due date (YYYY-MM-DD)")
	return cmd
}

func setStatus(app *App, cmd *cobra.Command, id model.ID, st model.Status) error {
	return withSession(app, cmd, func(s *session) error {
		if _, err := s.open(id); err != nil {
			return err
		}
		if _, ok := s.ctl.OpenStatus(); !ok {
			return errNotOpen
		}
		job, ok := s.ctl.SubmitStatus(st)
		if err := s.mutate(job, ok, s.ctl.Status()); err != nil {
			return err
		}
		return s.printDetail(app)
	})
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <PENDING|DONE>",
		Short: "Change the status of a todo",
		Args:  args(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, a []string) error {
			st, err := model.ParseStatus(a[1])
			if err != nil {
				return usageErr("%v", err)
			}
			return setStatus(app, cmd, model.ID(a[0]), st)
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a todo as DONE",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			return setStatus(app, cmd, model.ID(a[0]), model.StatusDone)
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, a []string) error {
			return withSession(app, cmd, func(s *session) error {
				if _, err := s.open(model.ID(a[0])); err != nil {
					return err
				}
				if !s.ctl.OpenDelete() {
					return errNotOpen
				}
				job, ok := s.ctl.ConfirmDelete()
				return s.mutate(job, ok, s.ctl.Confirm())
			})
		},
	}
}

func newVersionCmd(app *App) *cobra.Command {
	var (
		short  bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(app.Out, goversion.FuncWithOutput(short, Version, Commit, Date, output))
			return err
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "print just the version number")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format, json or yaml")
	return cmd
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/models"
)

const timeLayout = "2006-01-02 15:04:05"

// NewNotesCmd создаёт группу команд для работы с заметками.
//
// Все подкоманды требуют сохранённой сессии (inotebook login).
//
// Примеры:
//
//	inotebook notes list
//	inotebook notes add --title "Groceries" --description "milk, eggs" --tag Shopping
//	inotebook notes update <id> --tag Personal
//	inotebook notes delete <id>
func NewNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Работа с заметками",
	}

	cmd.AddCommand(newNotesListCmd(app))
	cmd.AddCommand(newNotesAddCmd(app))
	cmd.AddCommand(newNotesUpdateCmd(app))
	cmd.AddCommand(newNotesDeleteCmd(app))
	return cmd
}

func newNotesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Показать свои заметки",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Token()
			if err != nil {
				return err
			}

			notes, err := app.Client().ListNotes(cmd.Context(), token)
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no notes yet (run: inotebook notes add)")
				return nil
			}
			return printNotes(cmd.OutOrStdout(), notes)
		},
	}
}

func newNotesAddCmd(app *App) *cobra.Command {
	var req models.CreateNoteRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Создать заметку",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Token()
			if err != nil {
				return err
			}

			note, err := app.Client().CreateNote(cmd.Context(), token, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "note created: %s\n", note.ID)
			return printNotes(cmd.OutOrStdout(), []models.Note{note})
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "note title")
	cmd.Flags().StringVar(&req.Description, "description", "", "note text")
	cmd.Flags().StringVar(&req.Tag, "tag", "", `note tag (default "General")`)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newNotesUpdateCmd(app *App) *cobra.Command {
	var req models.UpdateNoteRequest

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Изменить заметку (пустые поля не меняются)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Title == "" && req.Description == "" && req.Tag == "" {
				return errors.New("nothing to update: set --title, --description or --tag")
			}

			token, err := app.Token()
			if err != nil {
				return err
			}

			note, err := app.Client().UpdateNote(cmd.Context(), token, args[0], req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "note updated")
			return printNotes(cmd.OutOrStdout(), []models.Note{note})
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "new title")
	cmd.Flags().StringVar(&req.Description, "description", "", "new text")
	cmd.Flags().StringVar(&req.Tag, "tag", "", "new tag")
	return cmd
}

func newNotesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Удалить заметку",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Token()
			if err != nil {
				return err
			}

			resp, err := app.Client().DeleteNote(cmd.Context(), token, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", resp.Success, resp.Note.ID, resp.Note.Title)
			return nil
		},
	}
}

func printNotes(out io.Writer, notes []models.Note) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTAG\tTITLE\tDESCRIPTION\tUPDATED")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			n.ID, n.Tag, n.Title, shorten(n.Description, 40), n.UpdatedAt.Local().Format(timeLayout))
	}
	return tw.Flush()
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}


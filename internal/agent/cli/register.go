package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegisterCmd создаёт CLI-команду регистрации нового пользователя.
//
// Сервер сразу выдаёт токен сессии, он сохраняется так же, как при login.
//
// Пример использования:
//
//	inotebook register --name Ana --email a@example.com
func NewRegisterCmd(app *App) *cobra.Command {
	var name, email string
	var pw passwordFlags

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пример:
  inotebook register --name Ana --email a@example.com
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := pw.get(cmd)
			if err != nil {
				return err
			}

			resp, err := app.Client().Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}

			if err := saveSession(app, resp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registration successful (user %s)\n", resp.User.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email for registration")
	pw.bind(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

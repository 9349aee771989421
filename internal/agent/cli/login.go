package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-inotebook/internal/agent/config"
	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/models"
)

// NewLoginCmd создаёт CLI-команду входа пользователя.
//
// Команда получает токен сессии и сохраняет его в локальный файл.
//
// Пример использования:
//
//	inotebook login --email a@example.com
func NewLoginCmd(app *App) *cobra.Command {
	var email string
	var pw passwordFlags

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Вход пользователя (сохраняет токен сессии)",
		Long: `Вход пользователя.

Пример:
  inotebook login --email a@example.com
  echo "Str0ng!pass" | inotebook login --email a@example.com --password-stdin
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := pw.get(cmd)
			if err != nil {
				return err
			}

			resp, err := app.Client().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			if err := saveSession(app, resp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "login ok, hello %s (token saved)\n", resp.User.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	pw.bind(cmd)
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// NewLogoutCmd удаляет сохранённую сессию.
// Сервер токены не хранит, поэтому выход только локальный.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Удалить сохранённый токен сессии",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Clear(app.CredsPath); err != nil {
				return err
			}
			app.Creds = &config.Credentials{}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func saveSession(app *App, resp models.AuthResponse) error {
	app.Creds = &config.Credentials{
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
		UserID:    resp.User.ID,
		Name:      resp.User.Name,
		Email:     resp.User.Email,
	}
	return config.Save(app.CredsPath, app.Creds)
}

// Package cli реализует командный интерфейс (CLI) клиента iNotebook.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку сохранённой сессии (токена) из локального файла;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-inotebook/internal/agent/api"
	"github.com/IvanChernomyrdin/go-inotebook/internal/agent/config"
)

// DefaultServerURL — адрес сервера по умолчанию.
const DefaultServerURL = "http://127.0.0.1:8080"

// ErrNotLoggedIn — нет сохранённой сессии или она истекла.
var ErrNotLoggedIn = errors.New("not logged in (run: inotebook login)")

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ServerURL — базовый URL сервера iNotebook.
	ServerURL string
	// Insecure отключает проверку TLS сертификата (только для dev).
	Insecure bool
	// Timeout — таймаут HTTP-запросов.
	Timeout time.Duration

	// CredsPath — путь к файлу с сохранённой сессией.
	CredsPath string
	// Creds — загруженная сессия. Может быть пустой, но не nil после PersistentPreRunE.
	Creds *config.Credentials
}

// Client создаёт API-клиент по настройкам App.
func (a *App) Client() *api.Client {
	var opts []api.Option
	if a.Timeout > 0 {
		opts = append(opts, api.WithTimeout(a.Timeout))
	}
	if a.Insecure {
		opts = append(opts, api.WithInsecureTLS())
	}
	return NewAPIClient(a.ServerURL, opts...)
}

// Token возвращает действующий токен или ErrNotLoggedIn.
func (a *App) Token() (string, error) {
	if !a.Creds.Valid(Now()) {
		return "", ErrNotLoggedIn
	}
	return a.Creds.Token, nil
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
// В PersistentPreRunE определяется путь к файлу сессии и загружается сохранённый токен.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "inotebook",
		Short: "iNotebook CLI — личные заметки в облаке",
		Long: `iNotebook CLI.

Команды:
  register  Регистрация нового пользователя
  login     Вход (сохраняет токен сессии локально)
  logout    Удалить сохранённую сессию
  notes     Работа с заметками (list/add/update/delete)
  health    Проверить доступность сервера
  version   Версия и дата сборки

Примеры:
  inotebook register --name Ana --email a@example.com
  inotebook login --email a@example.com
  inotebook notes add --title "Groceries" --description "milk, eggs"
  inotebook notes list
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.CredsPath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				app.CredsPath = p
			}

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return err
			}
			app.Creds = creds
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", envOr("INOTEBOOK_SERVER", DefaultServerURL), "server base URL")
	cmd.PersistentFlags().BoolVar(&app.Insecure, "insecure", false, "skip TLS certificate verification (dev only)")
	cmd.PersistentFlags().DurationVar(&app.Timeout, "timeout", 10*time.Second, "HTTP request timeout")
	cmd.PersistentFlags().StringVar(&app.CredsPath, "credentials", "", "path to credentials file (default ~/.inotebook/credentials.json)")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewNotesCmd(app))
	cmd.AddCommand(NewHealthCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// normalizePassword убирает только завершающий перевод строки.
// Пробелы остаются частью пароля на любом пути ввода.
func normalizePassword(pw string) string {
	pw = strings.TrimSuffix(pw, "\n")
	return strings.TrimSuffix(pw, "\r")
}

// readPassword читает пароль пользователя.
//
// Режимы:
//   - fromStdin: весь STDIN без завершающего перевода строки (для скриптов);
//   - иначе скрытый ввод с терминала.
func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		pw := normalizePassword(string(b))
		if pw == "" {
			return "", errors.New("empty password on stdin")
		}
		return pw, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use --password or --password-stdin")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	pwBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	pw := normalizePassword(string(pwBytes))
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}

// passwordFlags — общие флаги ввода пароля для register и login.
type passwordFlags struct {
	value     string
	fromStdin bool
}

func (p *passwordFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.value, "password", "", "password (prompted if empty)")
	cmd.Flags().BoolVar(&p.fromStdin, "password-stdin", false, "read password from STDIN (for scripts)")
}

func (p *passwordFlags) get(cmd *cobra.Command) (string, error) {
	if pw := normalizePassword(p.value); pw != "" {
		return pw, nil
	}
	return ReadPassword(cmd, p.fromStdin)
}

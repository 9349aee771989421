//go:build ignore

// Локальный запуск: сервер в фоне + сборка CLI-клиента.
//
//	go run launcher.go
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/avast/retry-go/v4"
)

const healthURL = "http://127.0.0.1:8080/health"

func main() {
	fmt.Println("Запуск iNotebook...")

	clientName := "inotebook"
	if runtime.GOOS == "windows" {
		clientName = "inotebook.exe"
	}
	// запускаем сервер на фоне
	server := exec.Command("go", "run", "./cmd/server")
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr

	if err := server.Start(); err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		return
	}

	// ждём, пока сервер ответит на /health
	err := retry.Do(
		func() error {
			res, err := http.Get(healthURL)
			if err != nil {
				return err
			}
			defer res.Body.Close()
			if res.StatusCode != http.StatusOK {
				return fmt.Errorf("health: %s", res.Status)
			}
			return nil
		},
		retry.Attempts(30),
		retry.Delay(time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		fmt.Printf("Сервер не поднялся: %v\n", err)
		_ = server.Process.Kill()
		return
	}

	// собираем клиента
	if _, err := os.Stat(clientName); os.IsNotExist(err) {
		fmt.Println("Сборка клиента...")
		build := exec.Command("go", "build", "-o", clientName, "./cmd/inotebook")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		if err := build.Run(); err != nil {
			fmt.Printf("Ошибка сборки клиента: %v\n", err)
		}
	}

	fmt.Println("Сервер запущен")
	if runtime.GOOS == "windows" {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: .\\inotebook.exe register --name Ana --email a@example.com")
	} else {
		fmt.Println("Данный терминал не закрывай. Открой новый и запускай: ./inotebook register --name Ana --email a@example.com")
	}

	_ = server.Wait()
}

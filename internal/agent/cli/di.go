package cli

import (
	"time"

	"github.com/IvanChernomyrdin/go-inotebook/internal/agent/api"
)

// для тестов
var (
	NewAPIClient = api.NewClient
	ReadPassword = readPassword
	Now          = time.Now
)

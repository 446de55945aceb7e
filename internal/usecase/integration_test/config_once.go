package integrationtest

import (
	"sync"

	"github.com/humanbelnik/filmorate/internal/config"
)

var (
	cfg     *config.Config
	cfgOnce sync.Once
)

// getConfig reads the environment directly. config.Load would parse flags
// that belong to the test binary.
func getConfig() *config.Config {
	cfgOnce.Do(func() {
		cfg = config.FromEnv()
	})
	return cfg
}

package pathing

import (
	"os"
	"path/filepath"
)

const configDirEnv = "POLLUCOM_READER_CONFIG_DIR"

// GetConfigDir can be redirected with POLLUCOM_READER_CONFIG_DIR.
func GetConfigDir() string {
	if dir := os.Getenv(configDirEnv); dir != "" {
		return dir
	}
	return "/etc/pollucom_reader"
}

func GetReaderConfigPath() string {
	return filepath.Join(GetConfigDir(), "reader.toml")
}

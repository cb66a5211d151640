package config

import (
	"encoding/json"
	"os"
)

type Config struct {
	Port        int    `json:"port"`
	DownloadDir string `json:"download_dir"`
	WebDir      string `json:"web_dir"`
}

var GlobalConfig = Config{
	Port:        5000,
	DownloadDir: "./downloads",
	WebDir:      "./web",
}

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Use defaults
		}
		return err
	}
	return json.Unmarshal(data, &GlobalConfig)
}

package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./hangthedj.db" {
			t.Errorf("expected database path ./hangthedj.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3001 {
			t.Errorf("expected server port 3001, got %d", config.Server.Port)
		}

		if config.Credentials.Spotify.ClientID != "your_spotify_client_id" {
			t.Errorf("expected spotify client_id your_spotify_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		content := `
[credentials.spotify]
client_id = "abc"
client_secret = "def"

[database]
path = "/tmp/party.db"

[server]
host = "127.0.0.1"
port = 9090
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Credentials.Spotify.ClientID != "abc" {
			t.Errorf("expected client_id abc, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Addr() != "127.0.0.1:9090" {
			t.Errorf("expected addr 127.0.0.1:9090, got %s", config.Addr())
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("PORT", "4242")
		t.Setenv("SPOTIFY_CLIENT_ID", "env_id")
		t.Setenv("SPOTIFY_CLIENT_SECRET", "env_secret")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.Server.Port != 4242 {
			t.Errorf("expected PORT override 4242, got %d", config.Server.Port)
		}
		if config.Credentials.Spotify.ClientID != "env_id" {
			t.Errorf("expected client_id env_id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Spotify.ClientSecret != "env_secret" {
			t.Errorf("expected client_secret env_secret, got %s", config.Credentials.Spotify.ClientSecret)
		}
	})

	t.Run("ApplyEnv Ignores Bad Port", func(t *testing.T) {
		t.Setenv("PORT", "not-a-port")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.Server.Port != 3001 {
			t.Errorf("expected default port 3001, got %d", config.Server.Port)
		}
	})
}

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type SpeechConfig struct {
	Enabled      bool   `toml:"enabled"`
	EspeakPath   string `toml:"espeak_path"`
	Rate         int    `toml:"rate"`
	RecorderCmd  string `toml:"recorder_cmd"`
	WhisperPath  string `toml:"whisper_path"`
	WhisperModel string `toml:"whisper_model"`
}

type OCRConfig struct {
	TesseractPath string `toml:"tesseract_path"`
}

type FallbackConfig struct {
	Enabled   bool   `toml:"enabled"`
	Provider  string `toml:"provider"` // "ollama", "openai", or "anthropic"
	Host      string `toml:"host"`
	Model     string `toml:"model"`
	APIKeyEnv string `toml:"api_key_env"`
}

type UserConfig struct {
	DefaultLanguage string         `toml:"default_language"`
	Speech          SpeechConfig   `toml:"speech"`
	OCR             OCRConfig      `toml:"ocr"`
	Fallback        FallbackConfig `toml:"fallback"`
}

type Config struct {
	DataDirectory   string
	DefaultLanguage string
	Speech          SpeechConfig
	OCR             OCRConfig
	Fallback        FallbackConfig
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// FallbackAPIKey reads the generative-tier API key from the configured
// environment variable. Empty when no key is set.
func (c *Config) FallbackAPIKey() string {
	if c.Fallback.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Fallback.APIKeyEnv)
}

func (c *Config) applyEnvOverrides() {
	if dataDir := os.Getenv("INFOSETU_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if lang := os.Getenv("INFOSETU_LANG"); lang != "" {
		c.DefaultLanguage = lang
	}
	if host := os.Getenv("INFOSETU_FALLBACK_HOST"); host != "" {
		c.Fallback.Host = host
	}
	if model := os.Getenv("INFOSETU_FALLBACK_MODEL"); model != "" {
		c.Fallback.Model = model
	}
}

func CheckDebug() bool {
	debug := os.Getenv("INFOSETU_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - debug output may contain conversation text
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (INFOSETU_DEBUG=%s) ===", os.Getenv("INFOSETU_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func Load() (*Config, error) {
	def := DefaultUserConfig()
	cfg := &Config{
		DataDirectory:   "~/.local/share/infosetu",
		DefaultLanguage: def.DefaultLanguage,
		Speech:          def.Speech,
		OCR:             def.OCR,
		Fallback:        def.Fallback,
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	cfg.DataDirectory = systemCfg.DataDirectory
	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.DefaultLanguage = userCfg.DefaultLanguage
	cfg.Speech = userCfg.Speech
	cfg.OCR = userCfg.OCR
	cfg.Fallback = userCfg.Fallback
	cfg.applyEnvOverrides()

	return cfg, nil
}

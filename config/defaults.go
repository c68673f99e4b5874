package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/infosetu",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		DefaultLanguage: "en",
		Speech: SpeechConfig{
			Enabled:      true,
			EspeakPath:   "espeak-ng",
			Rate:         150,
			RecorderCmd:  "arecord",
			WhisperPath:  "whisper-cli",
			WhisperModel: "",
		},
		OCR: OCRConfig{
			TesseractPath: "tesseract",
		},
		Fallback: FallbackConfig{
			Enabled:   false,
			Provider:  "ollama",
			Host:      "http://localhost:11434",
			Model:     "llama3.1:latest",
			APIKeyEnv: "",
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# InfoSetu System Configuration
# Location: ~/.config/infosetu/settings.toml
# This file uses TOML format: https://toml.io

# Directory where transcripts, the knowledge base, and user config are stored
data_directory = "~/.local/share/infosetu"
`
}

func GenerateUserConfigTemplate() string {
	return `# InfoSetu User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

# Startup language: "en" (English) or "hi" (Hindi)
default_language = "en"

[speech]
# Speak assistant answers aloud (requires espeak-ng on PATH)
enabled = true
espeak_path = "espeak-ng"
# Words per minute; espeak-ng default is 175
rate = 150
# Voice capture: recorder command and whisper.cpp CLI
recorder_cmd = "arecord"
whisper_path = "whisper-cli"
# Optional explicit model path for whisper-cli (-m flag)
whisper_model = ""

[ocr]
# Document text extraction (requires tesseract with eng + hin traineddata)
tesseract_path = "tesseract"

[fallback]
# Generative fallback tier for questions no keyword rule matches.
# Disabled by default: the deterministic tier alone is fully functional.
enabled = false
# "ollama", "openai", or "anthropic"
provider = "ollama"
host = "http://localhost:11434"
model = "llama3.1:latest"
# Name of the environment variable holding the API key (cloud providers)
api_key_env = ""
`
}

package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/trainai",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Anthropic: AnthropicConfig{
			DefaultModel: "claude-sonnet-4-6",
		},
		Units: "metric",
		Security: SecurityConfig{
			Method: string(SecurityPlainText),
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# trainai System Configuration
# Location: ~/.config/trainai/settings.toml
# This file uses TOML format: https://toml.io

# Directory where conversations, the exercise library and user config are stored
data_directory = "~/.local/share/trainai"
`
}

func GenerateUserConfigTemplate() string {
	return `# trainai User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[anthropic]
# Model used for new conversations
default_model = "claude-sonnet-4-6"

# Override the API endpoint (leave empty for https://api.anthropic.com)
base_url = ""

# Unit system for weights and heights: "metric" or "imperial"
units = "metric"

[security]
# How the API key is stored: "plaintext" or "ssh_key"
method = "plaintext"

# SSH private key used to encrypt the API key (ssh_key method only)
# ssh_key_path = "~/.ssh/id_ed25519"
`
}

package config

import (
	"strings"

	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Generate returns the default configuration with every value commented out,
// ready to be saved as a starting config file
func Generate() string {
	return commentOutConfigValues(DefaultsContent())
}

// Render encodes a resolved configuration as TOML
func Render(cfg *Config) ([]byte, error) {
	out, err := toml.Marshal(cfg.toMap())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return out, nil
}

func (c *Config) toMap() map[string]any {
	return map[string]any{
		"server": map[string]any{
			"host":        c.Server.Host,
			"render":      c.Server.Render,
			"timeout":     c.Server.Timeout.String(),
			"retries":     c.Server.Retries,
			"retry_delay": c.Server.RetryDelay.String(),
		},
		"auth": map[string]any{
			"username":  c.Auth.Username,
			"password":  c.Auth.Password,
			"login_key": c.Auth.LoginKey,
		},
		"export": map[string]any{
			"empty_value":  c.Export.EmptyValue,
			"only_visible": c.Export.OnlyVisible,
			"language":     c.Export.Language,
			"delimiter":    c.Export.Delimiter,
			"columns":      nonNil(c.Export.Columns),
			"output_dir":   c.Export.OutputDir,
		},
		"import": map[string]any{
			"delimiter":    c.Import.Delimiter,
			"key_column":   c.Import.KeyColumn,
			"allow_update": c.Import.AllowUpdate,
		},
		"download": map[string]any{
			"repo":   c.Download.Repo,
			"module": c.Download.Module,
			"target": c.Download.Target,
		},
		"blobs": map[string]any{
			"known_db":           c.Blobs.KnownDB,
			"skip_content_types": nonNil(c.Blobs.SkipContentTypes),
			"source_key":         c.Blobs.SourceKey,
			"destination_key":    c.Blobs.DestinationKey,
		},
		"port": map[string]any{
			"ignore_dirs": nonNil(c.Port.IgnoreDirs),
			"extensions":  nonNil(c.Port.Extensions),
			"no_backup":   c.Port.NoBackup,
		},
		"random": map[string]any{
			"length": c.Random.Length,
		},
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines as-is
		if trimmed == "" {
			result = append(result, line)
			continue
		}

		// Keep lines that are already comments
		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g., [server], [export]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}

package config

import (
	"bytes"
	"strings"

	"github.com/arthur-debert/semtparser/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# semtparser configuration
#
# Every value below is the built-in default, commented out. Uncomment and
# edit the ones you want to change.

`

// GenerateConfigContent renders the defaults as a TOML file with every value
// commented out.
func GenerateConfigContent() (string, error) {
	cfg, err := Default()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode default config")
	}

	return generatedHeader + commentOutConfigValues(buf.String()), nil
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

		// Keep section headers (e.g., [service], [source.s3]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}

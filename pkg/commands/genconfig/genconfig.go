package genconfig

import (
	"path/filepath"

	"github.com/arthur-debert/semtparser/pkg/config"
	"github.com/arthur-debert/semtparser/pkg/errors"
	"github.com/arthur-debert/semtparser/pkg/filesystem"
	"github.com/arthur-debert/semtparser/pkg/logging"
	"github.com/arthur-debert/semtparser/pkg/paths"
)

// GenConfigOptions holds options for the config init command
type GenConfigOptions struct {
	FS filesystem.FS

	// Path is the target file; the user config path when empty.
	Path string
	// Write writes the file instead of only returning the content.
	Write bool
	// Force overwrites an existing file.
	Force bool
}

// GenConfigResult holds the generated content and any written file.
type GenConfigResult struct {
	ConfigContent string   `json:"configContent"`
	FilesWritten  []string `json:"filesWritten"`
}

// GenConfig outputs or writes the commented default configuration
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")
	logger.Debug().Str("command", "GenConfig").Bool("write", opts.Write).Msg("Executing command")

	content, err := config.GenerateConfigContent()
	if err != nil {
		return nil, err
	}

	result := &GenConfigResult{
		ConfigContent: content,
		FilesWritten:  []string{},
	}
	if !opts.Write {
		return result, nil
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	target := opts.Path
	if target == "" {
		target = paths.UserConfigPath()
	}

	if fsys.Exists(target) && !opts.Force {
		return nil, errors.Newf(errors.ErrFileExists, "config file %s already exists (use --force to overwrite)", target).
			WithDetail("path", target)
	}

	dir := filepath.Dir(target)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir).
			WithDetail("path", dir)
	}
	if err := fsys.WriteFile(target, []byte(content), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", target).
			WithDetail("path", target)
	}

	logger.Info().Str("path", target).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}

package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// dataPatterns are the dictionary files that make a directory usable.
var dataPatterns = []string{"dict_*.bin", "*.txt"}

// PathResolver resolves data and config locations for the wordcheck binary
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
		configDir:      getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: exec=%s, configDir=%s", execPath, pr.configDir)
	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "wordcheck")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordcheck")
		}
		return filepath.Join(homeDir, ".config", "wordcheck")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordcheck")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordcheck")
	default:
		return filepath.Join(homeDir, ".wordcheck")
	}
}

// GetDataDir resolves the directory holding dictionary files.
// Candidates in order:
// 1. User-specified path (if absolute)
// 2. Relative to executable directory
// 3. Relative to current working directory
// 4. data/ next to the executable, its parent, or the config dir
//
// A path naming a regular file is returned as is.
func (pr *PathResolver) GetDataDir(userSpecifiedPath string) (string, error) {
	if stat, err := os.Stat(userSpecifiedPath); err == nil && !stat.IsDir() {
		return userSpecifiedPath, nil
	}

	candidates := pr.dataDirCandidates(userSpecifiedPath)
	for _, path := range candidates {
		if IsValidDataDir(path) {
			log.Debugf("Found valid data directory: %s", path)
			return path, nil
		}
		log.Debugf("Data directory candidate not valid: %s", path)
	}
	return "", &os.PathError{Op: "resolve", Path: userSpecifiedPath, Err: os.ErrNotExist}
}

func (pr *PathResolver) dataDirCandidates(userSpecifiedPath string) []string {
	var candidates []string
	if filepath.IsAbs(userSpecifiedPath) {
		candidates = append(candidates, userSpecifiedPath)
	} else {
		if cwd, err := os.Getwd(); err == nil {
			candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
		}
		candidates = append(candidates, filepath.Join(pr.executableDir, userSpecifiedPath))
	}
	return append(candidates,
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(filepath.Dir(pr.executableDir), "data"),
		filepath.Join(pr.configDir, "data"),
	)
}

// IsValidDataDir checks if a directory contains a chunk or text dictionary
func IsValidDataDir(path string) bool {
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return false
	}
	for _, pattern := range dataPatterns {
		matches, err := filepath.Glob(filepath.Join(path, pattern))
		if err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}

// GetRuntimeInfo returns debug information about the current runtime environment
func (pr *PathResolver) GetRuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()

	info := map[string]string{
		"executable_path": pr.executablePath,
		"executable_dir":  pr.executableDir,
		"current_dir":     cwd,
		"config_dir":      pr.configDir,
		"os":              runtime.GOOS,
		"arch":            runtime.GOARCH,
	}
	for _, envVar := range []string{"XDG_CONFIG_HOME", "APPDATA", "REDIS_ADDR", "HTTP_ADDR"} {
		if value := os.Getenv(envVar); value != "" {
			info["env_"+strings.ToLower(envVar)] = value
		}
	}
	return info
}

package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// SystemWordList is the word list shipped by most unix systems.
const SystemWordList = "/usr/share/dict/words"

// PathResolver provides robust path resolution for the wordfind binary
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

	log.Debugf("PathResolver initialized: exec=%s, execDir=%s, configDir=%s",
		pr.executablePath, pr.executableDir, pr.configDir)

	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "wordfind")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordfind")
		}
		return filepath.Join(homeDir, ".config", "wordfind")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordfind")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordfind")
	default:
		return filepath.Join(homeDir, ".wordfind")
	}
}

// ResolveDictPath finds the dictionary file. It tries, in order:
// 1. User-specified path (absolute, or relative to the working directory)
// 2. Relative to executable directory
// 3. The config directory
// 4. The system word list, only when no path was configured
// If nothing exists the user path is returned unchanged so the load error names it.
func (pr *PathResolver) ResolveDictPath(userSpecifiedPath string) string {
	for _, path := range pr.dictCandidates(userSpecifiedPath) {
		if isRegularFile(path) {
			log.Debugf("Found dictionary file: %s", path)
			return path
		}
		log.Debugf("Dictionary candidate not found: %s", path)
	}
	return userSpecifiedPath
}

func (pr *PathResolver) dictCandidates(userSpecifiedPath string) []string {
	if userSpecifiedPath == "" {
		return []string{SystemWordList}
	}
	candidates := []string{userSpecifiedPath}
	if !filepath.IsAbs(userSpecifiedPath) {
		candidates = append(candidates,
			filepath.Join(pr.executableDir, userSpecifiedPath),
			filepath.Join(pr.configDir, userSpecifiedPath),
		)
	}
	return candidates
}

func isRegularFile(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.Mode().IsRegular()
}

// GetConfigPath returns the full path for a config file
// It ensures the config directory exists and handles read-only filesystem issues
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	configPath := filepath.Join(pr.configDir, filename)
	if pr.ensureConfigDir(pr.configDir) {
		return configPath, nil
	}

	for _, dir := range pr.configFallbacks(runtime.GOOS) {
		if pr.ensureConfigDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

// configFallbacks lists the directories tried when the config dir is not writable
func (pr *PathResolver) configFallbacks(goos string) []string {
	var dirs []string
	if goos == "darwin" {
		dirs = append(dirs, filepath.Join(pr.homeDir, "Library", "Application Support", "wordfind"))
	}
	return append(dirs,
		filepath.Join(pr.homeDir, ".wordfind"),
		filepath.Join(os.TempDir(), "wordfind"),
		pr.executableDir,
	)
}

// ensureConfigDir creates the directory if it doesn't exist and tests writability
func (pr *PathResolver) ensureConfigDir(dir string) bool {
	return CheckDirStatus(dir).Writable
}

package aws

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	pkgtypes "github.com/vietdv277/cwput/pkg/types"
)

// DefaultProfile is the section read when no profile is selected
const DefaultProfile = "default"

const (
	sourceCredentials = "credentials"
	sourceConfig      = "config"
)

var (
	sectionRe       = regexp.MustCompile(`^\[([^\]]+)\]$`)
	configSectionRe = regexp.MustCompile(`^profile\s+(.+)$`)
)

// SharedFiles locates the AWS shared credentials and config files
type SharedFiles struct {
	CredentialsFile string
	ConfigFile      string
}

// DefaultSharedFiles returns ~/.aws/credentials and ~/.aws/config, honouring
// AWS_SHARED_CREDENTIALS_FILE and AWS_CONFIG_FILE
func DefaultSharedFiles() SharedFiles {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	files := SharedFiles{
		CredentialsFile: filepath.Join(home, ".aws", "credentials"),
		ConfigFile:      filepath.Join(home, ".aws", "config"),
	}
	if p := os.Getenv("AWS_SHARED_CREDENTIALS_FILE"); p != "" {
		files.CredentialsFile = p
	}
	if p := os.Getenv("AWS_CONFIG_FILE"); p != "" {
		files.ConfigFile = p
	}
	return files
}

// ListProfiles reads AWS profiles from the shared credentials and config files
func ListProfiles(files SharedFiles) ([]pkgtypes.AWSProfile, error) {
	profileMap := make(map[string]*pkgtypes.AWSProfile)

	credProfiles, err := parseINIFile(files.CredentialsFile, sourceCredentials, false)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	for i := range credProfiles {
		profileMap[credProfiles[i].Name] = &credProfiles[i]
	}

	// Config file may add region info or new profiles (SSO etc.)
	configProfiles, err := parseINIFile(files.ConfigFile, sourceConfig, true)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	for i := range configProfiles {
		p := &configProfiles[i]
		if existing, ok := profileMap[p.Name]; ok {
			if existing.Region == "" && p.Region != "" {
				existing.Region = p.Region
			}
			continue
		}
		profileMap[p.Name] = p
	}

	profiles := make([]pkgtypes.AWSProfile, 0, len(profileMap))
	for _, p := range profileMap {
		profiles = append(profiles, *p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		// Put "default" first, then sort alphabetically
		if profiles[i].Name == DefaultProfile {
			return true
		}
		if profiles[j].Name == DefaultProfile {
			return false
		}
		return profiles[i].Name < profiles[j].Name
	})

	return profiles, nil
}

// LoadCredentialsProfile returns the named section of a credentials file.
// A missing file or section yields nil without error.
func LoadCredentialsProfile(path, name string) (*pkgtypes.AWSProfile, error) {
	return loadProfile(path, name, sourceCredentials, false)
}

// LoadConfigProfile returns the named section of a config file, where
// non-default profiles are written as [profile NAME].
func LoadConfigProfile(path, name string) (*pkgtypes.AWSProfile, error) {
	return loadProfile(path, name, sourceConfig, true)
}

func loadProfile(path, name, source string, isConfigFile bool) (*pkgtypes.AWSProfile, error) {
	profiles, err := parseINIFile(path, source, isConfigFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	for i := range profiles {
		if profiles[i].Name == name {
			return &profiles[i], nil
		}
	}
	return nil, nil
}

// parseINIFile parses an AWS INI-style config file
func parseINIFile(path, source string, isConfigFile bool) ([]pkgtypes.AWSProfile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var profiles []pkgtypes.AWSProfile
	var currentProfile *pkgtypes.AWSProfile

	flush := func() {
		if currentProfile != nil {
			profiles = append(profiles, *currentProfile)
		}
		currentProfile = nil
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if matches := sectionRe.FindStringSubmatch(line); len(matches) == 2 {
			flush()
			if name, ok := profileName(strings.TrimSpace(matches[1]), isConfigFile); ok {
				currentProfile = &pkgtypes.AWSProfile{
					Name:   name,
					Source: source,
					Keys:   make(map[string]string),
				}
			}
			continue
		}

		// Keys outside a profile section (sso-session, services, ...) are ignored
		if currentProfile == nil {
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}
		currentProfile.Keys[key] = value
		if key == "region" {
			currentProfile.Region = value
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// profileName maps a section header to a profile name. Config files use
// [default] and [profile NAME]; credentials files use [NAME].
func profileName(section string, isConfigFile bool) (string, bool) {
	if !isConfigFile {
		return section, true
	}
	if section == DefaultProfile {
		return section, true
	}
	if matches := configSectionRe.FindStringSubmatch(section); len(matches) == 2 {
		return strings.TrimSpace(matches[1]), true
	}
	return "", false
}

// splitKeyValue splits on the first '=' or ':'. Keys are case-insensitive.
func splitKeyValue(line string) (string, string, bool) {
	idx := strings.IndexAny(line, "=:")
	if idx <= 0 {
		return "", "", false
	}
	key := strings.ToLower(strings.TrimSpace(line[:idx]))
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(line[idx+1:]), true
}

package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

func GetConfig() (*Options, error) {
	GetDefaultOptions()

	dataDir, err := checkDataDir(Opts.Data)
	if err != nil {
		fmt.Println("Error checking data directory: ", err)
		return nil, err
	}
	Opts.Data = dataDir

	return Opts, nil
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
		}
		if dataDir == defaultData {
			err := os.MkdirAll(dataDir, 0755)
			if err != nil {
				if errors.Is(err, os.ErrPermission) {
					// Permission denied, fall back to the user's home directory
					currentUser, err := user.Current()
					if err != nil {
						return "", errors.Wrap(err, "unable to get current user")
					}
					homeDir := currentUser.HomeDir
					if homeDir == "" {
						return "", errors.New("unable to get home directory")
					}

					fallback := filepath.Join(homeDir, ".storyworld")
					if _, err := os.Stat(fallback); err == nil {
						return fallback, nil
					}
					if err := os.MkdirAll(fallback, 0755); err != nil {
						return "", errors.Wrapf(err, "unable to create default data folder %s", fallback)
					}
					return fallback, nil
				}
				return "", errors.Wrapf(err, "unable to create default data folder %s", dataDir)
			}
		} else {
			if err := os.MkdirAll(dataDir, 0755); err != nil {
				return "", errors.Wrapf(err, "unable to create data folder %s", dataDir)
			}
		}
	}
	return dataDir, nil
}

func ParseFile(file string) (*Options, error) {
	// Check if file exists
	if _, err := os.Stat(file); err != nil {
		return nil, errors.Wrapf(err, "unable to access config file %s", file)
	}

	viper.SetConfigFile(file)
	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(Opts)
	if err != nil {
		return nil, err
	}
	return Opts, nil
}

// IsKnownGenre checks if the genre is one of the catalog genres
func IsKnownGenre(genre string) bool {
	for _, g := range Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// IsKnownAgeGroup checks if the age group is one of the catalog buckets
func IsKnownAgeGroup(ageGroup string) bool {
	for _, a := range AgeGroups {
		if a == ageGroup {
			return true
		}
	}
	return false
}

// Genres is the fixed genre enumeration of the catalog
var Genres = []string{
	"adventure",
	"fantasy",
	"animals",
	"bedtime",
	"educational",
	"fairy-tale",
}

// AgeGroups is the fixed set of reader age buckets
var AgeGroups = []string{
	"0-3",
	"4-6",
	"7-9",
	"10-12",
}

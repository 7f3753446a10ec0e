package state

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/fennmarsh/scribe/internal/config"
	"github.com/fennmarsh/scribe/internal/constants"
	"github.com/fennmarsh/scribe/internal/drafts"
)

// State is the application wiring handed to every command.
type State struct {
	Config *config.Config
	Store  *drafts.Store
	Home   string
}

func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}

	cfg, err := config.Load(home)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Flag/env override wins over the config file.
	if dir := viper.GetString("draftsdir"); dir != "" {
		cfg.DraftsDir = dir
	}

	store, err := drafts.NewStore(cfg.DraftsDir)
	if err != nil {
		return nil, err
	}

	return &State{
		Config: cfg,
		Store:  store,
		Home:   home,
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return home, nil
}

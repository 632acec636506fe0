package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/editor"
	homedir "github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# word-wrap prose at width (0 uses the standard 70-column fill)
width: 0
# skip the result cache
no-cache: false
# how long the external comment tool may run (0 defers to
# CODECOMB_VIM_TIMEOUT, which defaults to 30s)
timeout: 0s
`

// expandPath expands the tilde and all environment variables in path.
func expandPath(p string) string {
	s, err := homedir.Expand(p)
	if err == nil {
		return os.ExpandEnv(s)
	}
	return os.ExpandEnv(p)
}

func defaultConfigFile() string {
	scope := gap.NewScope(gap.User, "codecomb")
	path, _ := scope.ConfigPath("codecomb.yml")
	return path
}

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the codecomb config file",
	Long:    paragraph(fmt.Sprintf("\n%s the codecomb config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("codecomb config\ncodecomb config --config path/to/codecomb.yml"),
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("codecomb", configFile)
		if err != nil {
			return err
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return err
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = defaultConfigFile()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
			return fmt.Errorf("Could not write config file: %w", err)
		}
	} else {
		configFile = expandPath(configFile)
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported config type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return err
		}

		f, err := os.Create(configFile)
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck

		if _, err := f.WriteString(defaultConfig); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return nil
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "codecomb")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "codecomb")}, dirs...)
	}

	if c := os.Getenv("CODECOMB_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("codecomb")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("codecomb")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "codecomb.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}

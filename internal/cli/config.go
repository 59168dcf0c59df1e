package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/tessro/deck/internal/config"
	deckerrors "github.com/tessro/deck/internal/errors"
	"github.com/tessro/deck/internal/wizard"
)

var configInitDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing deck configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a new configuration file. On a terminal a short form asks for the
most common settings; otherwise, or with --defaults, default values are written.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  controls.skip_buttons    Show skip buttons (true/false)
  controls.skip_seconds    Skip interval in seconds
  thumbnail.width          Artwork box width in cells
  thumbnail.height         Artwork box height in cells
  style.title_color        Title color (#RRGGBB)
  style.title_bold         Bold title (true/false)
  style.author_color       Author color
  style.time_color         Time label color
  colors.active            Enabled control tint
  colors.inactive          Disabled control tint
  colors.active_button     Enabled button tint
  colors.inactive_button   Disabled button tint
  slider.minimum_track     Elapsed part of the scrub bar
  slider.maximum_track     Remaining part of the scrub bar
  slider.thumb             Scrub bar thumb
  locale.language          Language for digits (en, ar, fa, ...)
  tui.refresh_interval     Refresh interval in milliseconds
  log.level                Log level (debug/info/warn/error)
  log.file                 Log file path
  log.json                 JSON log lines (true/false)

Examples:
  deck config set controls.skip_buttons true
  deck config set slider.minimum_track "#E67E22"`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitDefaults, "defaults", false, "write defaults without prompting")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindBool
)

// configKeys lists the settable keys and their value types.
var configKeys = map[string]keyKind{
	"controls.skip_buttons":  kindBool,
	"controls.skip_seconds":  kindInt,
	"thumbnail.width":        kindInt,
	"thumbnail.height":       kindInt,
	"style.title_color":      kindString,
	"style.title_bold":       kindBool,
	"style.author_color":     kindString,
	"style.time_color":       kindString,
	"colors.active":          kindString,
	"colors.inactive":        kindString,
	"colors.active_button":   kindString,
	"colors.inactive_button": kindString,
	"slider.minimum_track":   kindString,
	"slider.maximum_track":   kindString,
	"slider.thumb":           kindString,
	"locale.language":        kindString,
	"tui.refresh_interval":   kindInt,
	"log.level":              kindString,
	"log.file":               kindString,
	"log.json":               kindBool,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, cfg)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(out)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath, err := existingConfigPath()
	if err != nil {
		return err
	}

	// Find editor
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		// Try common editors
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()
	out := cmd.OutOrStdout()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	newCfg := config.Default()
	if !configInitDefaults && !JSONOutput() {
		if _, err := wizard.NewInteractive().PromptConfig(newCfg); err != nil {
			return fmt.Errorf("config form: %w", err)
		}
	}
	if err := newCfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", deckerrors.ErrInvalidConfig, err)
	}

	if err := writeConfigFile(configPath, newCfg); err != nil {
		return err
	}

	if JSONOutput() {
		return writeJSON(out, map[string]string{
			"status": "created",
			"path":   configPath,
		})
	}
	fmt.Fprintf(out, "Created config file: %s\n", configPath)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Run 'deck playlist <file>' to check a playlist")
	fmt.Fprintln(out, "  2. Run 'deck ui <file>' to play it")
	return nil
}

// getConfigPath returns the file config commands operate on: the --config
// flag, then the first existing config file, then ~/.deckrc.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := config.FindConfigFile(); p != "" {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".deckrc"
	}
	return filepath.Join(home, ".deckrc")
}

func existingConfigPath() (string, error) {
	configPath := getConfigPath()
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return "", deckerrors.WithSuggestion(
			fmt.Errorf("%w at %s", deckerrors.ErrConfigNotFound, configPath),
			"Run 'deck config init' first",
		)
	}
	return configPath, nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	kind, ok := configKeys[key]
	if !ok {
		return deckerrors.WithSuggestion(
			fmt.Errorf("unknown config key %q", key),
			"Supported keys: "+strings.Join(configKeyNames(), ", "),
		)
	}
	typedValue, err := parseConfigValue(kind, value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	configPath, err := existingConfigPath()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	rawConfig := map[string]any{}
	if _, err := toml.Decode(string(data), &rawConfig); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	section, field, _ := strings.Cut(key, ".")
	sectionMap, ok := rawConfig[section].(map[string]any)
	if !ok {
		sectionMap = make(map[string]any)
		rawConfig[section] = sectionMap
	}
	sectionMap[field] = typedValue

	if err := checkRawConfig(rawConfig); err != nil {
		return err
	}
	if err := writeConfigFile(configPath, rawConfig); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	fmt.Fprintf(out, "Set %s = %s\n", key, value)
	return nil
}

func parseConfigValue(kind keyKind, value string) (any, error) {
	switch kind {
	case kindInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("value must be an integer")
		}
		return int64(i), nil
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("value must be true or false")
		}
		return b, nil
	default:
		return value, nil
	}
}

// checkRawConfig round-trips raw through the typed config so invalid values
// never reach disk.
func checkRawConfig(raw map[string]any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	var c config.Config
	if _, err := toml.Decode(buf.String(), &c); err != nil {
		return fmt.Errorf("%w: %w", deckerrors.ErrInvalidConfig, err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %w", deckerrors.ErrInvalidConfig, err)
	}
	return nil
}

func writeConfigFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := encodeConfig(f, v); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func encodeConfig(w io.Writer, v any) error {
	_, _ = fmt.Fprintln(w, "# Deck Configuration")
	_, _ = fmt.Fprintln(w, "")

	encoder := toml.NewEncoder(w)
	encoder.Indent = "  "
	return encoder.Encode(v)
}

// configKeyNames returns the settable keys in order.
func configKeyNames() []string {
	names := make([]string, 0, len(configKeys))
	for k := range configKeys {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/wordfix/internal/logger"
	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/config"
	"github.com/bastiangx/wordfix/pkg/fix"
	"github.com/bastiangx/wordfix/pkg/rules"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type commandContext struct {
	configFlag *string
	debugFlag  *bool

	config     *config.Config
	configPath string
}

func newCommandContext(configFlag *string, debugFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		debugFlag:  debugFlag,
	}
}

func (c *commandContext) setupLogging() {
	logger.SetDebug(c.debugFlag != nil && *c.debugFlag)
}

func (c *commandContext) ensureConfig() error {
	if c.config != nil {
		return nil
	}
	var path string
	if c.configFlag != nil {
		path = strings.TrimSpace(*c.configFlag)
	}
	cfg, loadedFrom, err := config.LoadConfigWithPriority(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(loadedFrom))
	c.config = cfg
	c.configPath = loadedFrom
	return nil
}

// settings are the config values with command flags applied on top.
type settings struct {
	mode      fix.Mode
	normalize func(string) string
	delimiter string
	field     int
}

// settings resolves the flags cmd declares against the loaded config.
// Commands declare only the flags that apply to them.
func (c *commandContext) settings(cmd *cobra.Command) (settings, error) {
	cfg := c.config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	modeName := cfg.Fix.Mode
	formName := cfg.Fix.Normalize
	s := settings{delimiter: cfg.Fix.Delimiter, field: cfg.Fix.Field}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		modeName, _ = flags.GetString("mode")
	}
	if flags.Changed("normalize") {
		formName, _ = flags.GetString("normalize")
	}
	if flags.Changed("delimiter") {
		s.delimiter, _ = flags.GetString("delimiter")
	}
	if flags.Changed("field") {
		s.field, _ = flags.GetInt("field")
	}

	mode, err := fix.ParseMode(modeName)
	if err != nil {
		return settings{}, err
	}
	normalize, err := utils.Normalizer(formName)
	if err != nil {
		return settings{}, err
	}
	s.mode = mode
	s.normalize = normalize
	return s, nil
}

// rulesPath picks the rule file from the first argument or the config.
func (c *commandContext) rulesPath(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if c.config != nil && c.config.Rules.Path != "" {
		return c.config.Rules.Path, nil
	}
	return "", errors.New("no rule file given and [rules] path is not configured")
}

func loadRules(path string, s settings) (*rules.Set, error) {
	return rules.Loader{Normalize: s.normalize}.Load(path)
}

// newFixer builds the fixer for s. Input is normalized the same way the
// rules were.
func newFixer(set *rules.Set, s settings) (fix.Fixer, error) {
	fixer, err := fix.New(s.mode, set)
	if err != nil {
		return nil, err
	}
	return fix.Normalized(fixer, s.normalize), nil
}

func addModeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", "", "Matching strategy: longest or window (default from config)")
	cmd.Flags().String("normalize", "", "Unicode normalization for rules and input: none, nfc, nfd, nfkc, nfkd")
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

package stamp

const (
	defaultPrefixConstant               = "ST6_"
	defaultProgressIntervalConstant     = 50
	prefixConfigurationSuffixConstant   = ".prefix"
	rootsConfigurationSuffixConstant    = ".roots"
	intervalConfigurationSuffixConstant = ".progress_interval"
	strictConfigurationSuffixConstant   = ".strict"
)

// CommandConfiguration captures the persisted configuration of the stamping commands.
type CommandConfiguration struct {
	Prefix           string   `mapstructure:"prefix"`
	Roots            []string `mapstructure:"roots"`
	ProgressInterval int      `mapstructure:"progress_interval"`
	Strict           bool     `mapstructure:"strict"`
}

// DefaultConfigurationValues returns configuration defaults scoped beneath the provided key.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	return map[string]any{
		configurationKey + prefixConfigurationSuffixConstant:   defaultPrefixConstant,
		configurationKey + rootsConfigurationSuffixConstant:    []string{},
		configurationKey + intervalConfigurationSuffixConstant: defaultProgressIntervalConstant,
		configurationKey + strictConfigurationSuffixConstant:   false,
	}
}

package configloader

import "github.com/Torykoon/Safeagent/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if override is non-nil
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.DefaultLanguage != "" {
		result.DefaultLanguage = override.DefaultLanguage
	}
	if override.DetectLanguage != nil {
		result.DetectLanguage = config.Bool(*override.DetectLanguage)
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.Extensions != nil {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Compact {
		result.Compact = true
	}

	return &result
}

// MergeAll merges configs left to right; later configs win.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, c := range configs {
		result = merge(result, c)
	}
	return result
}

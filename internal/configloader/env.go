package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/Torykoon/Safeagent/pkg/config"
)

// envVarPrefix is the prefix for all safeagent environment variables.
const envVarPrefix = "SAFEAGENT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FORMAT":           {field: "format", typ: envTypeString},
	"COLOR":            {field: "color", typ: envTypeString},
	"DEFAULT_LANGUAGE": {field: "default_language", typ: envTypeString},
	"DETECT_LANGUAGE":  {field: "detect_language", typ: envTypeBool},
	"WIDTH":            {field: "width", typ: envTypeInt},
	"JOBS":             {field: "jobs", typ: envTypeInt},
	"EXTENSIONS":       {field: "extensions", typ: envTypeSlice},
	"IGNORE":           {field: "ignore", typ: envTypeSlice},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SAFEAGENT_ (e.g., SAFEAGENT_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, envSuffix := range sortedEnvSuffixes() {
		mapping := envMappings[envSuffix]
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		setIntField(cfg, mapping.field, n)
	case envTypeSlice:
		setSliceField(cfg, mapping.field, splitList(value))
	}
	return nil
}

func setStringField(cfg *config.Config, field, value string) {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "color":
		cfg.Color = value
	case "default_language":
		cfg.DefaultLanguage = value
	}
}

func setBoolField(cfg *config.Config, field string, value bool) {
	if field == "detect_language" {
		cfg.DetectLanguage = config.Bool(value)
	}
}

func setIntField(cfg *config.Config, field string, value int) {
	switch field {
	case "width":
		cfg.Width = value
	case "jobs":
		cfg.Jobs = value
	}
}

func setSliceField(cfg *config.Config, field string, value []string) {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	}
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func sortedEnvSuffixes() []string {
	keys := make([]string, 0, len(envMappings))
	for k := range envMappings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ListEnvVars returns the supported environment variable names, sorted.
func ListEnvVars() []string {
	suffixes := sortedEnvSuffixes()
	vars := make([]string, len(suffixes))
	for i, s := range suffixes {
		vars[i] = envVarPrefix + s
	}
	return vars
}

package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/cinelink/cinelink/color"
	"github.com/cinelink/cinelink/constant"
	"github.com/cinelink/cinelink/key"
	"github.com/cinelink/cinelink/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored description of the field for "config info".
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Cinelink + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON includes both the current and the default value.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.TypeName(),
	})
}

// TypeName names the underlying value type of the field.
func (f *Field) TypeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds every registered configuration field by key.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.ProviderDefault, "vault", "Provider backend used to resolve titles.\nType \"cinelink config info -k provider.default\" to see it")
	register(key.ProviderBaseURL, "", "Base URL of the provider API, e.g. https://api.provider.tld\nResolution is refused while this is empty")
	register(key.ProviderTimeout, 30, "Timeout of a single provider call, in seconds")
	register(key.ProviderTLSFingerprint, false, "Talk to the provider with a browser TLS fingerprint.\nEnable when the provider sits behind an anti-bot proxy")
	register(key.ProviderSearchLimit, 20, "Maximum number of search hits requested from the provider")
	register(key.MetadataBaseURL, "https://v3-cinemeta.strem.io", "Catalog service used to turn external identifiers into titles")
	register(key.MetadataCacheLifetime, 48, "Hours a catalog title stays cached on disk")
	register(key.RelayEnable, false, "Rewrite stream URLs so they are fetched through the relay")
	register(key.RelayBaseURL, "http://localhost:7000/relay", "Public URL of the relay endpoint used when rewriting stream URLs")
	register(key.RelayAllowlist, []string{}, "Domains the relay may fetch from.\nSubdomains of an entry are allowed too")
	register(key.RelayMaxPayload, 10*1024*1024, "Largest upstream body the relay will buffer, in bytes")
	register(key.RelayTimeout, 30, "Timeout of a relay fetch including redirects, in seconds")
	register(key.RelayMaxRedirects, 5, "Redirect hops the relay follows before giving up")
	register(key.ServerAddress, ":7000", "Listen address of \"cinelink serve\"")
	register(key.SearchRememberQueries, true, "Remember resolved titles for \"cinelink queries\" suggestions")
	register(key.LogsWrite, false, "Write logs to a dated file instead of stderr")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, nerd, plain")
	register(key.CliColored, true, "Enable colored CLI output")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"blue":     style.Fg(color.Blue),
	"purple":   style.Fg(color.Purple),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))

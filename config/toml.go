package config

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/cometbft/cometbft/libs/os"
)

var configTemplate *template.Template

func init() {
	var err error
	tmpl := template.New("carbondConfigTemplate").Funcs(template.FuncMap{
		"StringsJoin": strings.Join,
	})
	if configTemplate, err = tmpl.Parse(defaultConfigTemplate); err != nil {
		panic(err)
	}
}

// WriteConfigFile renders the carbond app config and writes it to
// configFilePath. Called from init when seeding a fresh home directory.
func WriteConfigFile(configFilePath string, config *Config) {
	var buffer bytes.Buffer

	if err := configTemplate.Execute(&buffer, config); err != nil {
		panic(err)
	}

	os.MustWriteFile(configFilePath, buffer.Bytes(), 0o644)
}

// The template fields must stay in sync with the mapstructure tags
// on Config in config/config.go.
//
//go:embed config.toml.tpl
var defaultConfigTemplate string

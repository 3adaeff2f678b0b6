/*
Package config decodes an Options bundle from YAML bytes held entirely
in memory (A4).

Grounded on the teacher's config.LoadConfig/yaml.Unmarshal pattern, but
with the filesystem read stripped out: the teacher's LoadConfig opens a
file (and optionally decrypts it) before unmarshalling, where this
package's Load takes bytes the caller already has, since the core has
no notion of a configuration file to locate.
*/
package config

import (
	"gopkg.in/yaml.v3"

	"github.com/Saudadeeee/zk-snark-X-Steganography"
)

// Defaults returns the library's documented default Options.
func Defaults() *zkstego.Options {
	return zkstego.DefaultOptions()
}

// Load decodes yamlBytes into an Options, starting from Defaults() so
// an omitted field keeps its default rather than zeroing out.
func Load(yamlBytes []byte) (*zkstego.Options, error) {
	opts := Defaults()
	if err := yaml.Unmarshal(yamlBytes, opts); err != nil {
		return nil, err
	}
	return opts, nil
}

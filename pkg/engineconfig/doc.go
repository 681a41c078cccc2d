// Package engineconfig loads the settings a Database needs to locate
// a game's data directory and its masterlist/userlist files. It
// mirrors the teacher's config-file-plus-XDG-defaults pattern, minus
// the TOML/koanf layering that existed there to support pack-local
// override files: this module has no per-pack concept, just one
// engine per game install, so a single YAML document loaded via
// gopkg.in/yaml.v3 is enough.
package engineconfig

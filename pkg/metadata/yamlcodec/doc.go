// Package yamlcodec is the default types.Serialiser adapter: it reads
// and writes masterlist/userlist documents in a YAML-shaped text
// format, using gopkg.in/yaml.v3. The wire format is owned entirely by
// this package; pkg/metadata never imports an encoding library.
package yamlcodec

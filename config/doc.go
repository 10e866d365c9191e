// Package config loads board parameters from YAML (spec §3.7): internal
// and external flash base addresses, retained-register slot ids, and the
// force-recovery button-hold timing. It is grounded on the tinyrange-cc
// teacher-pack repo's use of gopkg.in/yaml.v3 for declarative
// configuration.
package config

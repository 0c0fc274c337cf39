package config

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yml
var defaultProfileYAML []byte

// Object is one SNMP object in the profile.
type Object struct {
	OID string `yaml:"oid" validate:"required,numeric_oid"`
}

// Objects names the OID of every attribute the collector reads. Scalar
// objects carry the full instance OID; table objects carry the column OID
// that is walked.
type Objects struct {
	SwitchType   Object `yaml:"switch_type"`
	Status       Object `yaml:"status"`
	PortDescr    Object `yaml:"port_descr"`
	Firmware     Object `yaml:"firmware"`
	CPU          Object `yaml:"cpu"`
	RAM          Object `yaml:"ram"`
	Temperature  Object `yaml:"temperature"`
	PhysicalName Object `yaml:"physical_name"`
	C3Discards   Object `yaml:"c3_discards"`
}

// Profile is the parsed form of an OID profile document.
type Profile struct {
	Name    string  `yaml:"name" validate:"required"`
	Objects Objects `yaml:"objects"`
}

// ParseProfile decodes and validates a YAML profile. Unknown keys are
// rejected so a typo cannot silently leave an attribute without an OID.
func ParseProfile(data []byte) (*Profile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Profile
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if err := Validate(&p); err != nil {
		return nil, fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return &p, nil
}

// DefaultProfile returns the built-in Brocade Fabric OS profile.
func DefaultProfile() *Profile {
	p, err := ParseProfile(defaultProfileYAML)
	if err != nil {
		panic(fmt.Sprintf("config: built-in profile is invalid: %v", err))
	}
	return p
}

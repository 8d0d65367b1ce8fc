package function

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ConfigType is the UI-facing type of a function config field.
type ConfigType string

const (
	ConfigTypeUnknown  ConfigType = "UNKNOWN"
	ConfigTypeDropdown ConfigType = "DROPDOWN"
	ConfigTypeString   ConfigType = "STRING"
	ConfigTypeInteger  ConfigType = "INTEGER"
	ConfigTypeBoolean  ConfigType = "BOOLEAN"
)

// Description describes a function a worker or controller can run.
type Description struct {
	// Friendly (human readable) name
	Name string `json:"name"`
	// Name of the package this function comes from
	PackageName string `json:"packageName"`
	Author      string `json:"author"`
	Version     string `json:"version"`
	// Controller version the function targets
	TargetVersion string `json:"targetVersion"`
	// Entry point of the function implementation
	Main string `json:"main"`
	// Config options of the function
	Config []ConfigField `json:"config"`
	// Video inputs
	Inputs []*VideoIO `json:"inputs"`
	// Video outputs
	Outputs []*VideoIO `json:"outputs"`
}

// ConfigField is one configurable option of a function.
type ConfigField struct {
	Name        string     `json:"name"`
	ID          string     `json:"id"`
	Type        ConfigType `json:"type"`
	Constraints Constraint `json:"constraints"`
}

// DescriptionMap maps function ID -> description.
type DescriptionMap map[string]*Description

// descriptionFieldNames is the exact key set a serialized description must
// carry to be accepted from a worker.
var descriptionFieldNames = []string{
	"name", "packageName", "author", "version", "targetVersion",
	"main", "config", "inputs", "outputs",
}

// DescriptionFieldNames returns the required JSON keys of a description.
func DescriptionFieldNames() []string {
	out := make([]string, len(descriptionFieldNames))
	copy(out, descriptionFieldNames)
	return out
}

// IDFromDescription derives the structural identity of a function:
// packageName:name:md5(canonical JSON). Any field change, including version,
// yields a new identity.
func IDFromDescription(d *Description) string {
	data, _ := json.Marshal(d)
	sum := md5.Sum(data)
	return fmt.Sprintf("%s:%s:%s", d.PackageName, d.Name, hex.EncodeToString(sum[:]))
}

// ConstraintsByField collects the constraint of every config field, keyed by
// field ID.
func (d *Description) ConstraintsByField() ConstraintMap {
	m := make(ConstraintMap, len(d.Config))
	for _, conf := range d.Config {
		m[conf.ID] = conf.Constraints
	}
	return m
}

// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package settings loads the JSON configuration that declares the
// user-extensible command vocabulary: a preamble string and a map from
// command word to parts setting (shape kind, defaults, positional
// inputs).
package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/animstream/parser/internal/cerrs"
)

// UseElem enumerates the recognized shape kinds a command can dispatch to.
type UseElem string

const (
	UseCamera UseElem = "camera"
	UseChart  UseElem = "chart"
	UseCircle UseElem = "circle"
	UseRect   UseElem = "rect"
	UsePath   UseElem = "path"
)

func (u UseElem) valid() bool {
	switch u {
	case UseCamera, UseChart, UseCircle, UseRect, UsePath:
		return true
	default:
		return false
	}
}

// PartsSetting_t is the outer-level dispatch record: a shape kind, a
// map of default parameter values applied before inputs, and an
// ordered list of parameter names each consuming one token from the
// stream (the name "points" is special, see internal/elements).
type PartsSetting_t struct {
	UseElem  UseElem
	Defaults map[string]string
	Inputs   []string
}

// Settings_t is the loaded, immutable configuration for a parse run.
type Settings_t struct {
	InitialText string
	Commands    map[string]PartsSetting_t
}

// rawSettings mirrors the on-disk JSON shape before validation.
type rawSettings struct {
	InitialText json.RawMessage            `json:"initialText"`
	Commands    map[string]rawPartsSetting `json:"commands"`
}

type rawPartsSetting struct {
	UseElem  string                     `json:"useElem"`
	Defaults map[string]json.RawMessage `json:"defaults"`
	Inputs   []string                   `json:"inputs"`
}

// Load reads and validates the settings document at path.
func Load(path string) (*Settings_t, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", cerrs.ErrReadSettings, path, err)
	}
	return Parse(buf)
}

// Parse decodes and validates a settings document already in memory.
func Parse(buf []byte) (*Settings_t, error) {
	var raw rawSettings
	if err := json.Unmarshal(buf, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", cerrs.ErrBadConfig, err)
	}

	initialText, err := decodeInitialText(raw.InitialText)
	if err != nil {
		return nil, err
	}

	commands := map[string]PartsSetting_t{}
	for word, rps := range raw.Commands {
		useElem := UseElem(rps.UseElem)
		if !useElem.valid() {
			return nil, fmt.Errorf("%w: command %q: useElem %q", cerrs.ErrUnknownUseElem, word, rps.UseElem)
		}
		defaults := map[string]string{}
		for name, v := range rps.Defaults {
			defaults[name] = stringifyDefault(v)
		}
		commands[word] = PartsSetting_t{
			UseElem:  useElem,
			Defaults: defaults,
			Inputs:   append([]string(nil), rps.Inputs...),
		}
	}

	return &Settings_t{
		InitialText: initialText,
		Commands:    commands,
	}, nil
}

// decodeInitialText accepts either a JSON string or a JSON array of
// strings (space-joined); anything else is bad-config. Absence is an
// empty string.
func decodeInitialText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var parts []string
	if err := json.Unmarshal(raw, &parts); err == nil {
		result := ""
		for i, p := range parts {
			if i > 0 {
				result += " "
			}
			result += p
		}
		return result, nil
	}
	return "", fmt.Errorf("%w", cerrs.ErrInitialTextShape)
}

// stringifyDefault renders a default value's raw JSON as the string the
// downstream parser consumes: strings pass through their unquoted
// contents; any other scalar is stringified via its JSON text form
// (e.g. 12 -> "12") so that every default value looks like an ordinary
// token regardless of how it was authored in the config file.
func stringifyDefault(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package schema

import (
	"reflect"
	"strings"
)

// Field describes one input of an admin form.
type Field struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Kind        string `json:"kind"`
	Required    bool   `json:"required"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Resource names accepted by ForResource.
const (
	ResourceAITools       = "ai-tools"
	ResourceMediaProfiles = "media-profiles"
	ResourcePrompts       = "prompts"
	ResourceWorkshops     = "workshops"
	ResourceSessions      = "sessions"
)

var resources = map[string]reflect.Type{
	ResourceAITools:       reflect.TypeOf(AIToolInput{}),
	ResourceMediaProfiles: reflect.TypeOf(MediaProfileInput{}),
	ResourcePrompts:       reflect.TypeOf(PromptInput{}),
	ResourceWorkshops:     reflect.TypeOf(WorkshopInput{}),
	ResourceSessions:      reflect.TypeOf(SessionInput{}),
}

// Resources returns the known resource names in display order.
func Resources() []string {
	return []string{
		ResourceAITools,
		ResourceMediaProfiles,
		ResourcePrompts,
		ResourceWorkshops,
		ResourceSessions,
	}
}

// ForResource returns the form descriptor for a resource name.
func ForResource(name string) ([]Field, bool) {
	t, ok := resources[name]
	if !ok {
		return nil, false
	}
	return describe(t), true
}

// Describe returns the form descriptor for an input struct value.
func Describe(v any) []Field {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return describe(t)
}

func describe(t reflect.Type) []Field {
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, ok := sf.Tag.Lookup("form")
		if !ok {
			continue
		}
		parts := strings.SplitN(tag, ";", 3)
		for len(parts) < 3 {
			parts = append(parts, "")
		}
		fields = append(fields, Field{
			Name:        jsonName(sf),
			Label:       parts[0],
			Kind:        parts[1],
			Required:    isRequired(sf.Tag.Get("validate")),
			Placeholder: parts[2],
		})
	}
	return fields
}

func isRequired(rules string) bool {
	for _, r := range strings.Split(rules, ",") {
		if r == "required" || r == notBlankTag {
			return true
		}
		if r == "dive" {
			break
		}
	}
	return false
}

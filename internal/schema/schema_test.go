// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTool() AIToolInput {
	return AIToolInput{
		Name:        "ChatGPT",
		Category:    "Conversational AI",
		Pricing:     "Free",
		Description: "Chat assistant",
		UseCases:    "Email drafting",
		Features:    []string{"Chat"},
		Link:        "https://chat.openai.com",
	}
}

func TestValidate_Valid(t *testing.T) {
	in := validTool()
	assert.NoError(t, Validate(&in))
}

func TestValidate_FirstFailingField(t *testing.T) {
	in := validTool()
	in.Category = "   "
	in.Link = ""

	err := Validate(&in)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "category", verr.Field)
	assert.Equal(t, "category is required", verr.Message)
}

func TestValidate_FeaturesRequired(t *testing.T) {
	in := validTool()
	in.Features = []string{"  ", ""}
	in.Normalize()

	err := Validate(&in)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "features", verr.Field)
}

func TestValidate_FeaturedOneOf(t *testing.T) {
	in := PromptInput{Title: "T", Content: "C", Category: "X", Featured: 2}
	err := Validate(&in)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "featured", verr.Field)
}

func TestValidatePartial_OnlySuppliedFields(t *testing.T) {
	// Only pricing is supplied; the blank name must not be reported.
	in := AIToolInput{Pricing: "Free"}
	assert.NoError(t, ValidatePartial(&in, []string{"pricing"}))

	in.Pricing = ""
	err := ValidatePartial(&in, []string{"pricing", "unknownField"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "pricing", verr.Field)

	assert.NoError(t, ValidatePartial(&in, nil))
}

func TestNormalize_TrimsLists(t *testing.T) {
	in := validTool()
	in.Strengths = []string{" fast ", "", "  "}
	in.Normalize()

	assert.Equal(t, []string{"fast"}, in.Strengths)
	assert.NotNil(t, in.Weaknesses)
	assert.Empty(t, in.Weaknesses)
}

func TestForResource(t *testing.T) {
	fields, ok := ForResource(ResourceAITools)
	require.True(t, ok)
	require.NotEmpty(t, fields)

	byName := map[string]Field{}
	for _, f := range fields {
		byName[f.Name] = f
	}

	assert.Equal(t, Field{Name: "name", Label: "Name", Kind: "text", Required: true, Placeholder: "e.g. ChatGPT"}, byName["name"])
	assert.True(t, byName["features"].Required)
	assert.Equal(t, "list", byName["features"].Kind)
	assert.False(t, byName["strengths"].Required)
	assert.False(t, byName["logo"].Required)

	_, ok = ForResource("users")
	assert.False(t, ok)
}

func TestForResource_AllResources(t *testing.T) {
	for _, name := range Resources() {
		fields, ok := ForResource(name)
		assert.True(t, ok, name)
		assert.NotEmpty(t, fields, name)
	}
}

func TestDescribe_Session(t *testing.T) {
	fields := Describe(&SessionInput{})
	require.NotEmpty(t, fields)
	assert.Equal(t, "workshopId", fields[0].Name)
	assert.Equal(t, "select-workshop", fields[0].Kind)
	assert.True(t, fields[0].Required)
}

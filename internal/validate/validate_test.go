package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `yaml:"full_name" validate:"required"`
	Count int      `yaml:"count" validate:"min=1,max=5"`
	Tags  []string `yaml:"tags" validate:"min=1"`
	Level string   `yaml:"level" validate:"oneof=debug info"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(sample{Name: "x", Count: 2, Tags: []string{"a"}, Level: "info"})
	assert.NoError(t, err)
}

func TestStruct_UsesYAMLNames(t *testing.T) {
	err := Struct(sample{Count: 9, Level: "loud"})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 4)

	fields := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}

	assert.Equal(t, "full_name is required", fields["full_name"])
	assert.Equal(t, "count must be at most 5", fields["count"])
	assert.Equal(t, "tags must have at least 1 entries", fields["tags"])
	assert.Equal(t, "level must be one of: debug info", fields["level"])
	assert.Contains(t, err.Error(), "validation failed: ")
}

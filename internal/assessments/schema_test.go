package assessments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePayload(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		body   string
		ok     bool
	}{
		{"diagnose minimal", SchemaDiagnose, `{"questions":[{"correctAnswerIndex":1,"section":"math"}],"answers":[1]}`, true},
		{"diagnose null answer", SchemaDiagnose, `{"questions":[{"correctAnswerIndex":1,"section":"math"}],"answers":[null],"confidenceLevels":[""]}`, true},
		{"diagnose missing answers", SchemaDiagnose, `{"questions":[]}`, false},
		{"diagnose string answer", SchemaDiagnose, `{"questions":[],"answers":["b"]}`, false},
		{"diagnose bad difficulty", SchemaDiagnose, `{"questions":[{"correctAnswerIndex":0,"section":"s","difficulty":"brutal"}],"answers":[0]}`, false},
		{"diagnose negative key", SchemaDiagnose, `{"questions":[{"correctAnswerIndex":-1,"section":"s"}],"answers":[0]}`, false},
		{"diagnose negative time", SchemaDiagnose, `{"questions":[],"answers":[],"timeUsedSeconds":-3}`, false},
		{"diagnose empty", SchemaDiagnose, `{"questions":[],"answers":[]}`, true},
		{"responses", SchemaResponses, `{"answers":[0,null,2],"confidenceLevels":["very","","slightly"],"timeUsedSeconds":120}`, true},
		{"responses null label", SchemaResponses, `{"answers":[0],"confidenceLevels":[null]}`, true},
		{"responses numeric label", SchemaResponses, `{"answers":[0],"confidenceLevels":[3]}`, false},
		{"responses fractional answer", SchemaResponses, `{"answers":[1.5]}`, false},
		{"batch", SchemaBatch, `{"items":[{"questions":[],"answers":[]}]}`, true},
		{"batch empty", SchemaBatch, `{"items":[]}`, false},
		{"batch bad item", SchemaBatch, `{"items":[{"questions":[]}]}`, false},
		{"import", SchemaImport, `{"title":"Diagnostic A","questions":[{"correctAnswerIndex":2,"section":"reading"}]}`, true},
		{"import no questions", SchemaImport, `{"title":"Diagnostic A","questions":[]}`, false},
		{"import no title", SchemaImport, `{"questions":[{"correctAnswerIndex":2,"section":"reading"}]}`, false},
		{"not json", SchemaDiagnose, `{"questions":`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayload(tt.schema, []byte(tt.body))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidRequest)
			}
		})
	}
}

func TestValidatePayloadUnknownSchema(t *testing.T) {
	err := ValidatePayload("nope", []byte(`{}`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidRequest)
}

package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodesAndExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		code string
		exit int
	}{
		{"validation", Validation("bad"), "VALIDATION_ERROR", 2},
		{"dry run", DryRun("POST", "/issues.json", nil), "DRY_RUN", 2},
		{"config", Config("missing"), "CONFIG_ERROR", 3},
		{"auth", Auth("denied"), "AUTH_ERROR", 3},
		{"not found", NotFound("Issue", "7", ""), "NOT_FOUND", 4},
		{"api", API(500, "boom"), "API_ERROR", 5},
		{"network", Network("timeout", nil), "NETWORK_ERROR", 5},
		{"io", IO("write", errors.New("disk full")), "IO_ERROR", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code())
			assert.Equal(t, tt.exit, tt.err.ExitCode())
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "Not found: Issue #42", NotFound("Issue", "42", "hint").Error())
	assert.Equal(t, "Configuration error: no url", Config("no url").Error())
	assert.Equal(t, "I/O error: save: disk full", IO("save", errors.New("disk full")).Error())
}

func TestDryRunCarriesRequest(t *testing.T) {
	err := DryRun("POST", "/issues.json", []byte(`{"issue":{}}`))
	assert.Contains(t, err.Error(), "POST /issues.json")
	assert.Contains(t, err.Error(), `{"issue":{}}`)
	assert.Equal(t, "/issues.json", err.Details["path"])
}

func TestFromWrapsForeignErrors(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", Auth("nope"))
	e := From(wrapped)
	require.NotNil(t, e)
	assert.Equal(t, KindAuth, e.Kind)

	e = From(errors.New(`unknown flag: --bogus`))
	assert.Equal(t, KindValidation, e.Kind)
	assert.Equal(t, 2, e.ExitCode())

	assert.Nil(t, From(nil))
	assert.True(t, Is(wrapped, KindAuth))
}

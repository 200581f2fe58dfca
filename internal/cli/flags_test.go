package cli

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
)

func TestIsValidOutputFormat(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidOutputFormat(OutputText))
	assert.True(t, IsValidOutputFormat(OutputJSON))
	assert.False(t, IsValidOutputFormat("yaml"))
	assert.False(t, IsValidOutputFormat(""))
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"generic error", stderrors.New("boom"), ExitError},
		{"invalid output format", rotaerrors.ErrInvalidOutputFormat, ExitInvalidInput},
		{"invalid argument", rotaerrors.Wrap(rotaerrors.ErrInvalidArgument, "bad kind"), ExitInvalidInput},
		{"invalid date", rotaerrors.Wrap(rotaerrors.ErrInvalidDate, "bad date"), ExitInvalidInput},
		{"cobra unknown flag", stderrors.New(`unknown flag: --bogus`), ExitInvalidInput},
		{"cobra unknown command", stderrors.New(`unknown command "frobnicate" for "rota"`), ExitInvalidInput},
		{"routine not found", rotaerrors.ErrRoutineNotFound, ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}

func TestFormatVersion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dev (commit: none, built: unknown)", formatVersion(BuildInfo{}))
	assert.Equal(t, "1.2.0 (commit: abc123, built: 2026-08-28)",
		formatVersion(BuildInfo{Version: "1.2.0", Commit: "abc123", Date: "2026-08-28"}))
}

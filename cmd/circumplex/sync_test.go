package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSyncCommand(t *testing.T) {
	cmd := newSyncCommand()

	assert.Equal(t, "sync <from> <to>", cmd.Use)
	assert.Equal(t, "false", cmd.Flags().Lookup("dry-run").DefValue)
	assert.Equal(t, "false", cmd.Flags().Lookup("update-existing").DefValue)
}

func TestNewSyncCommand_Args(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "same driver", args: []string{"file", "file"}, wantErr: "both file"},
		{name: "unknown driver", args: []string{"file", "s3"}, wantErr: `invalid argument "s3"`},
		{name: "one argument", args: []string{"file"}, wantErr: "accepts 2 arg(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, newSyncCommand(), tt.args...)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNewSyncCommand_InvalidConfig(t *testing.T) {
	setConfigFile(t, setupBrokenConfigFile(t))

	_, err := execute(t, newSyncCommand(), "file", "mysql")
	assert.ErrorContains(t, err, "configuration")
}

package init

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/sanity-cli/internal/config"
)

func TestNewCmdInit_Flags(t *testing.T) {
	cmd := NewCmdInit()

	assert.Equal(t, "init", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	projectFlag := cmd.Flags().Lookup("project")
	require.NotNil(t, projectFlag)
	assert.Equal(t, "", projectFlag.DefValue)

	datasetFlag := cmd.Flags().Lookup("dataset")
	require.NotNil(t, datasetFlag)
	assert.Equal(t, "", datasetFlag.DefValue)

	noVerifyFlag := cmd.Flags().Lookup("no-verify")
	require.NotNil(t, noVerifyFlag)
	assert.Equal(t, "false", noVerifyFlag.DefValue)
}

func TestRequireValue(t *testing.T) {
	validate := requireValue("dataset")

	assert.NoError(t, validate("production"))

	err := validate("")
	require.Error(t, err)
	assert.Equal(t, "dataset is required", err.Error())
}

func TestNewForm(t *testing.T) {
	cfg := &config.Config{ProjectID: "abc123", Dataset: "production"}
	form := newForm(cfg)
	require.NotNil(t, form)
}

package fieldlogic

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLogic_DecodeYAMLKeepsOrder(t *testing.T) {
	src := `
name: status
logic:
  zeta:
    modes: [edit]
  alpha:
    key: displayType
    modes: [list, detail]
    params:
      targetDisplay: none
`
	var f Field
	require.NoError(t, yaml.Unmarshal([]byte(src), &f))

	require.Len(t, f.Logic, 2)
	assert.Equal(t, "zeta", f.Logic[0].Key)
	assert.Equal(t, "displayType", f.Logic[1].Key)
	assert.Equal(t, []ViewMode{ModeList, ModeDetail}, f.Logic[1].Modes)
	assert.Equal(t, "none", f.Logic[1].Params["targetDisplay"])
}

func TestLogic_DecodeJSONKeepsOrder(t *testing.T) {
	src := `{"name":"status","logic":{"zeta":{"modes":["edit"]},"alpha":{"modes":["list"],"asyncProcess":true}}}`

	var f Field
	require.NoError(t, json.Unmarshal([]byte(src), &f))

	require.Len(t, f.Logic, 2)
	assert.Equal(t, "zeta", f.Logic[0].Key)
	assert.Equal(t, "alpha", f.Logic[1].Key)
	assert.True(t, f.Logic[1].AsyncProcess)

	out, err := json.Marshal(f.Logic)
	require.NoError(t, err)
	assert.Regexp(t, `^\{"zeta":.*"alpha":`, string(out))
}

func TestLogic_RejectsNonMapping(t *testing.T) {
	var f Field
	assert.Error(t, yaml.Unmarshal([]byte("logic: [a]"), &f))
	assert.Error(t, json.Unmarshal([]byte(`{"logic":["a"]}`), &f))
}

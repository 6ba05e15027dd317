package loader_test

import (
	"strings"
	"testing"

	"github.com/mxvane/statecraft/pkg/instance"
	"github.com/mxvane/statecraft/pkg/loader"
	"github.com/mxvane/statecraft/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linearYAML = `
name: Linear
states:
  - id: initial
    type: pseudo
    kind: initial
    transitions:
      - target: Working
  - id: Working
    type: state
    entry: onEnter
    transitions:
      - event: FINISH
        target: Done
  - id: Done
    type: final
`

func TestLoadLinear(t *testing.T) {
	var entered bool
	reg := loader.Registry{
		Actions: map[string]model.Action{
			"onEnter": func(msg *model.Message, inst model.Instance) error {
				entered = true
				return nil
			},
		},
	}

	sm, err := loader.Load(strings.NewReader(linearYAML), reg)
	require.NoError(t, err)
	assert.Equal(t, "Linear", sm.Name())

	inst := instance.New()
	require.NoError(t, model.Initialise(sm, inst, nil, false))
	assert.True(t, entered)

	consumed, err := model.Evaluate(sm, inst, model.NewMessage("FINISH"), nil, false)
	require.NoError(t, err)
	assert.True(t, consumed)
}

const guardedYAML = `
name: Guarded
states:
  - id: initial
    type: pseudo
    kind: initial
    transitions:
      - target: S1
  - id: S1
    type: state
    transitions:
      - event: CHECK
        target: S2
        guard: isMatch
  - id: S2
    type: state
`

func TestLoadGuardedTransition(t *testing.T) {
	reg := loader.Registry{
		Guards: map[string]model.Guard{
			"isMatch": func(msg *model.Message, inst model.Instance) bool {
				return msg.Data == "yes"
			},
		},
	}

	sm, err := loader.Load(strings.NewReader(guardedYAML), reg)
	require.NoError(t, err)

	inst := instance.New()
	require.NoError(t, model.Initialise(sm, inst, nil, false))

	consumed, err := model.Evaluate(sm, inst, model.NewMessageWithData("CHECK", "no"), nil, false)
	require.NoError(t, err)
	assert.False(t, consumed)

	consumed, err = model.Evaluate(sm, inst, model.NewMessageWithData("CHECK", "yes"), nil, false)
	require.NoError(t, err)
	assert.True(t, consumed)
}

func TestLoadRejectsUnknownGuard(t *testing.T) {
	_, err := loader.Load(strings.NewReader(guardedYAML), loader.Registry{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "isMatch")
}

func TestLoadRejectsMissingName(t *testing.T) {
	_, err := loader.Load(strings.NewReader("states: []\n"), loader.Registry{})
	require.Error(t, err)
}

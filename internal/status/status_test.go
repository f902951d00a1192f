package status

import (
	"testing"

	"github.com/srliao/critterduel/pkg/effect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsRegistered(t *testing.T) {
	keys := []string{"barrier", "burn", "poison", "rally", "regen", "silence", "stun", "taunt", "weaken"}
	for _, k := range keys {
		tmpl, err := effect.Template(k)
		require.NoError(t, err, k)
		assert.NoError(t, tmpl.Validate(), k)
		assert.Equal(t, k, tmpl.Key)
	}
}

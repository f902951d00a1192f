//Package status pulls in every built-in effect template
package status

import (
	_ "github.com/srliao/critterduel/internal/status/barrier"
	_ "github.com/srliao/critterduel/internal/status/burn"
	_ "github.com/srliao/critterduel/internal/status/poison"
	_ "github.com/srliao/critterduel/internal/status/rally"
	_ "github.com/srliao/critterduel/internal/status/regen"
	_ "github.com/srliao/critterduel/internal/status/silence"
	_ "github.com/srliao/critterduel/internal/status/stun"
	_ "github.com/srliao/critterduel/internal/status/taunt"
	_ "github.com/srliao/critterduel/internal/status/weaken"
)

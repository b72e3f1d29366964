// Package all registers every built-in pattern with the core registry.
// Blank-import it to make the full set available by name.
package all

import (
	_ "neurogrid/pkg/patterns/burst"
	_ "neurogrid/pkg/patterns/cascade"
	_ "neurogrid/pkg/patterns/cluster"
	_ "neurogrid/pkg/patterns/colonywave"
	_ "neurogrid/pkg/patterns/phased"
	_ "neurogrid/pkg/patterns/quantum"
)

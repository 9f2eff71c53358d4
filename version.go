package weave

import "fmt"

// Release of the ledger. Maj changes whenever the stored state or the
// message format breaks.
const (
	Maj = 0
	Min = 1
	Fix = 0
)

// GitCommit set by build flags
var GitCommit = ""

// Version is the string to be displayed
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d", Maj, Min, Fix)
	if GitCommit != "" {
		v += "-" + GitCommit
	}
	return v
}

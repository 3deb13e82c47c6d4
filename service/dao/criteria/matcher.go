package criteria

import (
	"github.com/viant/bidflow/service/dao"
)

// StatusParameter is the list parameter name used to filter by status.
const StatusParameter = "Status"

// FilterByStatus returns true if status satisfies all Status parameters.
// Parameters with other names are ignored.
func FilterByStatus(status string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != StatusParameter {
			continue
		}
		if !parameter.Match(status) {
			return false
		}
	}
	return true
}

package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/bidflow/service/dao"
)

func TestFilterByStatus(t *testing.T) {
	testCases := []struct {
		name       string
		status     string
		parameters []*dao.Parameter
		expect     bool
	}{
		{name: "no parameters", status: "pending", expect: true},
		{name: "single match", status: "pending", parameters: []*dao.Parameter{dao.NewParameter(StatusParameter, "pending")}, expect: true},
		{name: "single mismatch", status: "approved", parameters: []*dao.Parameter{dao.NewParameter(StatusParameter, "pending")}, expect: false},
		{name: "any of", status: "rejected", parameters: []*dao.Parameter{dao.NewParameter(StatusParameter, "approved", "rejected")}, expect: true},
		{name: "other parameter ignored", status: "approved", parameters: []*dao.Parameter{dao.NewParameter("Client", "x")}, expect: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, FilterByStatus(tc.status, tc.parameters))
		})
	}
}

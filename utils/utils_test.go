package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrisense/agroadvisor/utils"
)

func Test_CleanJSON(t *testing.T) {
	tcases := []struct {
		name string
		in   string
		exp  string
	}{
		{"plain", `{"crop":"maize"}`, `{"crop":"maize"}`},
		{"prefix", `Here you go: {"crop":"maize"}`, `{"crop":"maize"}`},
		{"postfix", `{"crop":"maize"} hope that helps`, `{"crop":"maize"}`},
		{"both", "Sure:\n{\"crop\":\"maize\"}\nanything else?", `{"crop":"maize"}`},
		{"array", `the list: [1, 2, 3] done`, `[1, 2, 3]`},
		{"no_json", `plain text`, `plain text`},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, string(utils.CleanJSON([]byte(tc.in))))
		})
	}
}

func Test_ToJSON(t *testing.T) {
	val := map[string]int{"days": 7}
	assert.Equal(t, `{"days":7}`, utils.ToJSON(val))
	assert.Equal(t, "{\n\t\"days\": 7\n}", utils.ToJSONIndent(val))
}

func Test_BackticksJSON(t *testing.T) {
	assert.Equal(t, "\n```json\n{}\n```\n", utils.BackticksJSON("{}"))
}

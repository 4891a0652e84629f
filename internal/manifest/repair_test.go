package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseWhitespace_PreservesQuotedRuns(t *testing.T) {
	in := "{\n  \"name\" : \"My  Mod\\t \",\n\t\"x\": [ 1, 2 ]\n}"
	assert.Equal(t, `{"name":"My  Mod\t ","x":[1,2]}`, collapseWhitespace(in))
}

func TestCollapseWhitespace_EscapedQuoteStaysInsideString(t *testing.T) {
	in := `{ "a" : "say \"hi there\"" }`
	assert.Equal(t, `{"a":"say \"hi there\""}`, collapseWhitespace(in))
}

func TestRemoveTrailingCommas(t *testing.T) {
	assert.Equal(t, `{"a":"b"}`, removeTrailingCommas(`{"a":"b",}`))
	assert.Equal(t, `{"a":true}`, removeTrailingCommas(`{"a":true,  }`))
	assert.Equal(t, `[{"a":1}]`, removeTrailingCommas(`[{"a":1,}]`))
}

func TestRemoveTrailingCommas_IgnoresStringContent(t *testing.T) {
	in := `{"a":",}"}`
	assert.Equal(t, in, removeTrailingCommas(in))
}

func TestInsertArraySiblingCommas(t *testing.T) {
	in := `{"updates":[{"a":1}]"libraries":[]}`
	assert.Equal(t, `{"updates":[{"a":1}],"libraries":[]}`, insertArraySiblingCommas(in))
}

func TestInsertArraySiblingCommas_WithWhitespace(t *testing.T) {
	in := "{\"updates\":[] \n \"hooks\" : []}"
	assert.Equal(t, "{\"updates\":[], \n \"hooks\" : []}", insertArraySiblingCommas(in))
}

func TestInsertArraySiblingCommas_LeavesArrayValuesAlone(t *testing.T) {
	// The string after the bracket is an array element, not a key.
	in := `[[1]"a"]`
	assert.Equal(t, in, insertArraySiblingCommas(in))

	valid := `{"a":[1],"b":2}`
	assert.Equal(t, valid, insertArraySiblingCommas(valid))
}

func TestRepair_ReportsAppliedRules(t *testing.T) {
	out, applied := Repair("{\n\"a\": [\"x\",]\n\"b\": \"y\",\n}")
	assert.Equal(t, `{"a":["x",],"b":"y"}`, out)
	assert.Equal(t, []string{"collapse-whitespace", "trailing-comma", "array-sibling-comma"}, applied)
}

func TestRepair_NoChanges(t *testing.T) {
	out, applied := Repair(`{"a":"b"}`)
	assert.Equal(t, `{"a":"b"}`, out)
	assert.Empty(t, applied)
}

func TestRepairRules_Order(t *testing.T) {
	names := make([]string, 0, len(RepairRules))
	for _, rule := range RepairRules {
		names = append(names, rule.Name)
	}
	assert.Equal(t, []string{"collapse-whitespace", "trailing-comma", "array-sibling-comma"}, names)
}

package jsonval

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString_AcceptsScalars(t *testing.T) {
	var doc struct {
		A String `json:"a"`
		B String `json:"b"`
		C String `json:"c"`
		D String `json:"d"`
	}
	err := json.Unmarshal([]byte(`{"a":"text","b":1000,"c":true,"d":null}`), &doc)
	require.NoError(t, err)
	assert.Equal(t, String("text"), doc.A)
	assert.Equal(t, String("1000"), doc.B)
	assert.Equal(t, String("true"), doc.C)
	assert.Equal(t, String(""), doc.D)
}

func TestString_RejectsContainers(t *testing.T) {
	var doc struct {
		A String `json:"a"`
	}
	err := json.Unmarshal([]byte(`{"a":{"nested":1}}`), &doc)
	require.Error(t, err)
	err = json.Unmarshal([]byte(`{"a":[1,2]}`), &doc)
	require.Error(t, err)
}

func TestString_MarshalsAsPlainString(t *testing.T) {
	data, err := json.Marshal(struct {
		A String `json:"a"`
	}{A: "12"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"12"}`, string(data))
}

func TestTime_Layouts(t *testing.T) {
	cases := map[string]time.Time{
		`"2017-03-04T05:06:07Z"`: time.Date(2017, 3, 4, 5, 6, 7, 0, time.UTC),
		`"2017-03-04 05:06:07"`:  time.Date(2017, 3, 4, 5, 6, 7, 0, time.UTC),
		`"2017-03-04"`:           time.Date(2017, 3, 4, 0, 0, 0, 0, time.UTC),
		`1488603967`:             time.Unix(1488603967, 0).UTC(),
		`"1488603967"`:           time.Unix(1488603967, 0).UTC(),
	}
	for input, want := range cases {
		var got Time
		require.NoError(t, json.Unmarshal([]byte(input), &got), input)
		assert.True(t, want.Equal(got.Time), "input %s: got %v", input, got.Time)
	}
}

func TestTime_UnknownFormatIsZero(t *testing.T) {
	var got Time
	require.NoError(t, json.Unmarshal([]byte(`"last tuesday"`), &got))
	assert.True(t, got.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`null`), &got))
	assert.True(t, got.IsZero())
}

func TestTime_Marshal(t *testing.T) {
	data, err := json.Marshal(Time{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	data, err = json.Marshal(Time{Time: time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2020-01-02T03:04:05Z"`, string(data))
}

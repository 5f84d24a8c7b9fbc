package iosource_test

import (
	"encoding/json"
	"testing"

	"github.com/gnames/gntaxa/internal/iosource"
	"github.com/stretchr/testify/assert"
)

type hit struct {
	name   string
	status string
}

func TestBest(t *testing.T) {
	nameOf := func(h hit) string { return h.name }
	accepted := func(h hit) bool { return h.status == "accepted" }

	tests := []struct {
		msg   string
		query string
		hits  []hit
		want  hit
		ok    bool
	}{
		{"no hits", "Apis", nil, hit{}, false},
		{"first hit", "Apis", []hit{{"Apis mellifera", ""}, {"Apis cerana", ""}},
			hit{"Apis mellifera", ""}, true},
		{"exact", "apis", []hit{{"Apidae", ""}, {"Apis", ""}},
			hit{"Apis", ""}, true},
		{"accepted exact", "Apis",
			[]hit{{"Apis", "synonym"}, {"Apis", "accepted"}},
			hit{"Apis", "accepted"}, true},
		{"unaccepted exact", "Apis",
			[]hit{{"Apidae", "accepted"}, {"Apis", "synonym"}},
			hit{"Apis", "synonym"}, true},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, ok := iosource.Best(v.query, v.hits, nameOf, accepted, nil)
			assert.Equal(t, v.ok, ok)
			assert.Equal(t, v.want, res)
		})
	}
}

func TestMatcher(t *testing.T) {
	assert := assert.New(t)
	var m iosource.Matcher
	assert.True(m.OrDefault()(" Apis ", "apis"))

	m = func(a, b string) bool { return false }
	assert.False(m.OrDefault()("Apis", "Apis"))
	assert.True(iosource.Blank("  "))
	assert.False(iosource.Blank("Apis"))
}

func TestFlexString(t *testing.T) {
	var rec struct {
		ID   iosource.FlexString `json:"id"`
		Num  iosource.FlexString `json:"num"`
		Rate iosource.FlexString `json:"rate"`
		Null iosource.FlexString `json:"null"`
	}
	err := json.Unmarshal(
		[]byte(`{"id":"abc","num":125295,"rate":2.5,"null":null}`), &rec,
	)
	assert.Nil(t, err)
	assert.Equal(t, "abc", rec.ID.String())
	assert.Equal(t, "125295", rec.Num.String())
	assert.Equal(t, "2.5", rec.Rate.String())
	assert.Equal(t, "", rec.Null.String())
}

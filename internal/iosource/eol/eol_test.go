package eol_test

import (
	"context"
	"testing"

	"github.com/gnames/gntaxa/internal/iosource/eol"
	"github.com/gnames/gntaxa/internal/iotesting"
	"github.com/gnames/gntaxa/pkg/config"
	"github.com/gnames/gntaxa/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exact = `{"totalResults":1,"results":[
 {"id":1045608,"title":"Apis mellifera","link":"https://eol.org/pages/1045608"}
]}`

const fuzzy = `{"totalResults":3,"results":[
 {"id":1045608,"title":"Apis mellifera Linnaeus 1758","link":""},
 {"id":2000,"title":"Apis mellifera carnica","link":""},
 {"id":3000,"title":"Apis cerana","link":""}
]}`

const page1 = `{"taxonConcept":{"identifier":1045608,"scientificName":"Apis mellifera",
"vernacularNames":[{"vernacularName":"Western honey bee","language":"en","eol_preferred":true},
{"vernacularName":"Abeille","language":"fr"}]}}`

const page2 = `{"taxonConcept":{"identifier":2000,"scientificName":"Apis mellifera carnica",
"vernacularNames":[{"vernacularName":"Carniolan honey bee","language":"en"}]}}`

const objects = `{"taxonConcept":{"identifier":1045608,"scientificName":"Apis mellifera",
"dataObjects":[{"identifier":"abc","dataObjectVersionID":29731913,
"dataType":"http://purl.org/dc/dcmitype/StillImage","vettedStatus":"Trusted",
"dataRating":2.5,"mimeType":"image/jpeg","title":"Honey bee on flower",
"license":"http://creativecommons.org/licenses/by/3.0/"}]}}`

func newServer(t *testing.T) *iotesting.Server {
	return iotesting.NewServer(t, map[string]iotesting.Route{
		"/search/1.0.json?exact=true&q=Apis+mellifera":  iotesting.JSON(exact),
		"/search/1.0.json?exact=false&q=Apis+mellifera": iotesting.JSON(fuzzy),
		"/search/1.0.json?exact=true&q=asdfsdf": iotesting.JSON(
			`{"totalResults":0,"results":[]}`,
		),
		"/pages/1.0/1045608.json":         iotesting.JSON(page1),
		"/pages/1.0/2000.json":            iotesting.JSON(page2),
		"/data_objects/1.0/29731913.json": iotesting.JSON(objects),
	})
}

func TestResolve(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	a := eol.New(newServer(t).Transport(taxon.EOL), nil)
	ctx := context.Background()

	id, err := a.Resolve(ctx, "Apis mellifera")
	require.Nil(err)
	require.NotNil(id)
	assert.Equal("1045608", id.Value)

	id, err = a.Resolve(ctx, "asdfsdf")
	assert.Nil(err)
	assert.Nil(id)
}

func TestResolveAll(t *testing.T) {
	assert := assert.New(t)
	a := eol.New(newServer(t).Transport(taxon.EOL), nil)

	ids, err := a.ResolveAll(context.Background(), "Apis mellifera")
	assert.Nil(err)
	assert.Equal(2, len(ids))
	assert.Equal("2000", ids[1].Value)
}

func TestCommonNames(t *testing.T) {
	assert := assert.New(t)
	a := eol.New(newServer(t).Transport(taxon.EOL), nil)

	res, err := a.CommonNames(context.Background(), taxon.NewID(taxon.EOL, "1045608"))
	assert.Nil(err)
	assert.Equal(2, len(res))
	assert.Equal("Western honey bee", res[0].Name)
	assert.Equal("English", res[0].Language)
	assert.Equal("fra", res[1].LangCode)
}

func TestDataObjects(t *testing.T) {
	assert := assert.New(t)
	a := eol.New(newServer(t).Transport(taxon.EOL), nil)

	res, err := a.DataObjects(context.Background(), taxon.NewID(taxon.EOL, "29731913"))
	assert.Nil(err)
	assert.Equal(1, len(res))
	assert.Equal("29731913", res[0].ObjectID)
	assert.Equal("1045608", res[0].PageID)
	assert.Equal("2.5", res[0].DataRating)
	assert.Equal("Honey bee on flower", res[0].Title)
}

func TestAPIKey(t *testing.T) {
	assert := assert.New(t)
	srv := newServer(t)
	a := eol.New(srv.Transport(taxon.EOL, config.OptSourceAPIKey(taxon.EOL, "k1")), nil)

	_, err := a.CommonNames(context.Background(), taxon.NewID(taxon.EOL, "1045608"))
	assert.Nil(err)
	hits := srv.Hits()
	assert.Equal(1, len(hits))
	assert.Contains(hits[0], "key=k1")
}

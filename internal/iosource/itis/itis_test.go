package itis_test

import (
	"context"
	"testing"

	"github.com/gnames/gntaxa/internal/iosource/itis"
	"github.com/gnames/gntaxa/internal/iotesting"
	"github.com/gnames/gntaxa/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const search = `{"scientificNames":[
 {"author":"Linnaeus, 1758","combinedName":"Apis mellifera carnica","kingdom":"Animalia","tsn":"1"},
 {"author":"Linnaeus, 1758","combinedName":"Apis mellifera","kingdom":"Animalia","tsn":"154396"}
]}`

const commonNames = `{"commonNames":[
 {"commonName":"honey bee","language":"English","tsn":"154396"},
 {"commonName":"abeille domestique","language":"French","tsn":"154396"}
],"tsn":"154396"}`

const hierarchy = `{"hierarchyList":[
 {"author":"","parentName":"","parentTsn":"","rankName":"Kingdom","taxonName":"Animalia","tsn":"202423"},
 {"author":"Linnaeus, 1758","parentName":"Apidae","parentTsn":"154348","rankName":"Genus","taxonName":"Apis","tsn":"154395"},
 {"author":"Linnaeus, 1758","parentName":"Apis","parentTsn":"154395","rankName":"Species","taxonName":"Apis mellifera","tsn":"154396"},
 {"author":"Pollmann, 1879","parentName":"Apis mellifera","parentTsn":"154396","rankName":"Subspecies","taxonName":"Apis mellifera carnica","tsn":"1"}
]}`

const down = `{"hierarchyList":[
 {"author":"Linnaeus, 1758","parentName":"Apis","parentTsn":"154395","rankName":"Species","taxonName":"Apis mellifera","tsn":"154396"},
 {"author":"Fabricius, 1793","parentName":"Apis","parentTsn":"154395","rankName":"Species","taxonName":"Apis dorsata","tsn":"154397"}
]}`

func newAdapter(t *testing.T) (*itis.Adapter, *iotesting.Server) {
	srv := iotesting.NewServer(t, map[string]iotesting.Route{
		"/searchByScientificName?srchKey=Apis+mellifera": iotesting.JSON(search),
		"/searchByScientificName?srchKey=asdfsdf": iotesting.JSON(
			`{"scientificNames":[null]}`,
		),
		"/getCommonNamesFromTSN?tsn=154396":   iotesting.JSON(commonNames),
		"/getCommonNamesFromTSN?tsn=1":        iotesting.JSON(`{"commonNames":[null]}`),
		"/getFullHierarchyFromTSN?tsn=154396": iotesting.JSON(hierarchy),
		"/getHierarchyDownFromTSN?tsn=154395": iotesting.JSON(down),
	})
	return itis.New(srv.Transport(taxon.ITIS), nil), srv
}

func TestResolve(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	a, _ := newAdapter(t)
	ctx := context.Background()
	assert.Equal(taxon.ITIS, a.Source())

	id, err := a.Resolve(ctx, "Apis mellifera")
	require.Nil(err)
	require.NotNil(id)
	assert.Equal("154396", id.Value)
	assert.Equal(taxon.ITIS, id.Source)
	assert.Equal("Apis mellifera", id.Name)

	id, err = a.Resolve(ctx, "asdfsdf")
	assert.Nil(err)
	assert.Nil(id)
}

func TestBlankNoRequest(t *testing.T) {
	assert := assert.New(t)
	a, srv := newAdapter(t)
	ctx := context.Background()

	id, err := a.Resolve(ctx, "  ")
	assert.Nil(err)
	assert.Nil(id)

	cn, err := a.CommonNames(ctx, taxon.ID{Source: taxon.ITIS})
	assert.Nil(err)
	assert.Nil(cn)
	assert.Empty(srv.Hits())
}

func TestCommonNames(t *testing.T) {
	assert := assert.New(t)
	a, _ := newAdapter(t)
	ctx := context.Background()

	res, err := a.CommonNames(ctx, taxon.NewID(taxon.ITIS, "154396"))
	assert.Nil(err)
	assert.Equal(2, len(res))
	assert.Equal("honey bee", res[0].Name)
	assert.Equal("English", res[0].Language)
	assert.Equal("eng", res[0].LangCode)
	assert.Equal("itis", res[0].Source)

	res, err = a.CommonNames(ctx, taxon.NewID(taxon.ITIS, "1"))
	assert.Nil(err)
	assert.Empty(res)
}

func TestClassification(t *testing.T) {
	assert := assert.New(t)
	a, _ := newAdapter(t)

	res, err := a.Classification(
		context.Background(),
		taxon.NewID(taxon.ITIS, "154396"),
	)
	assert.Nil(err)
	assert.Equal(3, len(res))
	assert.Equal("Animalia", res[0].Name)
	assert.Equal("Apis mellifera", res[2].Name)
	assert.Equal("Species", res[2].Rank)
	assert.Equal("Apis", res[2].ParentName)
}

func TestChildren(t *testing.T) {
	assert := assert.New(t)
	a, _ := newAdapter(t)
	ctx := context.Background()

	res, err := a.Children(ctx, taxon.NewID(taxon.ITIS, "154395"))
	assert.Nil(err)
	assert.Equal(2, len(res))
	assert.Equal("Apis dorsata", res[1].Name)

	res, err = a.Children(ctx, taxon.NewID(taxon.ITIS, "999"))
	assert.Nil(err)
	assert.Empty(res)
}

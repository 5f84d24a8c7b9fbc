package ncbi_test

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gntaxa/internal/iosource/ncbi"
	"github.com/gnames/gntaxa/internal/iotesting"
	"github.com/gnames/gntaxa/pkg/config"
	"github.com/gnames/gntaxa/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchApis = `<?xml version="1.0" encoding="UTF-8" ?>
<eSearchResult><Count>1</Count><RetMax>1</RetMax><RetStart>0</RetStart>
<IdList><Id>7460</Id></IdList></eSearchResult>`

const searchNone = `<?xml version="1.0" encoding="UTF-8" ?>
<eSearchResult><Count>0</Count><RetMax>0</RetMax><RetStart>0</RetStart>
<IdList></IdList><ErrorList><PhraseNotFound>asdfsdf</PhraseNotFound></ErrorList>
</eSearchResult>`

const searchChildren = `<?xml version="1.0" encoding="UTF-8" ?>
<eSearchResult><Count>2</Count><IdList><Id>7460</Id><Id>7461</Id></IdList>
</eSearchResult>`

const fetchApis = `<?xml version="1.0" ?>
<TaxaSet><Taxon>
  <TaxId>7460</TaxId>
  <ScientificName>Apis mellifera</ScientificName>
  <OtherNames>
    <GenbankCommonName>honey bee</GenbankCommonName>
    <CommonName>honeybee</CommonName>
    <CommonName>honey bee</CommonName>
    <Authority>Apis mellifera Linnaeus, 1758</Authority>
  </OtherNames>
  <ParentTaxId>7459</ParentTaxId>
  <Rank>species</Rank>
  <LineageEx>
    <Taxon><TaxId>131567</TaxId><ScientificName>cellular organisms</ScientificName><Rank>no rank</Rank></Taxon>
    <Taxon><TaxId>2759</TaxId><ScientificName>Eukaryota</ScientificName><Rank>superkingdom</Rank></Taxon>
    <Taxon><TaxId>7459</TaxId><ScientificName>Apis</ScientificName><Rank>genus</Rank></Taxon>
  </LineageEx>
</Taxon></TaxaSet>`

const fetchChildren = `<?xml version="1.0" ?>
<TaxaSet>
<Taxon><TaxId>7460</TaxId><ScientificName>Apis mellifera</ScientificName><ParentTaxId>7459</ParentTaxId><Rank>species</Rank></Taxon>
<Taxon><TaxId>7461</TaxId><ScientificName>Apis cerana</ScientificName><ParentTaxId>7459</ParentTaxId><Rank>species</Rank></Taxon>
</TaxaSet>`

func newServer(t *testing.T) *iotesting.Server {
	return iotesting.NewServer(t, map[string]iotesting.Route{
		"/esearch.fcgi?db=taxonomy&retmax=1&term=Apis+mellifera":          iotesting.JSON(searchApis),
		"/esearch.fcgi?db=taxonomy&retmax=1&term=asdfsdf":                 iotesting.JSON(searchNone),
		"/esearch.fcgi?db=taxonomy&retmax=1&term=apis+mellifera+L.":       iotesting.JSON(searchApis),
		"/efetch.fcgi?api_key=secret&db=taxonomy&id=7460":                 iotesting.JSON(fetchApis),
		"/esearch.fcgi?db=taxonomy&retmax=5000&term=Apis%5BNext+Level%5D": iotesting.JSON(searchChildren),
		"/efetch.fcgi?db=taxonomy&id=7460":                                iotesting.JSON(fetchApis),
		"/efetch.fcgi?db=taxonomy&id=7460%2C7461":                         iotesting.JSON(fetchChildren),
	})
}

func TestResolve(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	a := ncbi.New(newServer(t).Transport(taxon.NCBI))
	ctx := context.Background()

	id, err := a.Resolve(ctx, "Apis mellifera")
	require.Nil(err)
	require.NotNil(id)
	assert.Equal("7460", id.Value)
	assert.Equal(taxon.NCBI, id.Source)
	assert.Equal("Apis mellifera", id.Name)
	assert.Equal("species", id.Rank)

	id, err = a.Resolve(ctx, "apis mellifera L.")
	require.Nil(err)
	require.NotNil(id)
	assert.Equal("Apis mellifera", id.Name, "name comes from the record")

	id, err = a.Resolve(ctx, "asdfsdf")
	assert.Nil(err)
	assert.Nil(id)
}

func TestCommonNames(t *testing.T) {
	assert := assert.New(t)
	a := ncbi.New(newServer(t).Transport(taxon.NCBI))

	res, err := a.CommonNames(context.Background(), taxon.NewID(taxon.NCBI, "7460"))
	assert.Nil(err)
	assert.Equal(2, len(res))
	assert.Equal("honey bee", res[0].Name)
	assert.Equal("honeybee", res[1].Name)
	assert.Equal("eng", res[0].LangCode)
}

func TestClassification(t *testing.T) {
	assert := assert.New(t)
	a := ncbi.New(newServer(t).Transport(taxon.NCBI))

	res, err := a.Classification(context.Background(), taxon.NewID(taxon.NCBI, "7460"))
	assert.Nil(err)
	assert.Equal(4, len(res))
	assert.Equal("cellular organisms", res[0].Name)
	assert.Equal("Eukaryota", res[1].Name)
	assert.Equal("131567", res[1].ParentID)
	last := res[3]
	assert.Equal("Apis mellifera", last.Name)
	assert.Equal("species", last.Rank)
	assert.Equal("Apis", last.ParentName)
	assert.Equal("Apis mellifera Linnaeus, 1758", last.Authorship)
}

func TestChildren(t *testing.T) {
	assert := assert.New(t)
	a := ncbi.New(newServer(t).Transport(taxon.NCBI))

	id := taxon.NewID(taxon.NCBI, "7459")
	id.Name = "Apis"
	res, err := a.Children(context.Background(), id)
	assert.Nil(err)
	assert.Equal(2, len(res))
	assert.Equal("Apis cerana", res[1].Name)
	assert.Equal("Apis", res[1].ParentName)
}

func TestMinInterval(t *testing.T) {
	assert := assert.New(t)
	srv := newServer(t)
	a := ncbi.New(srv.Transport(taxon.NCBI, config.OptSourceMinInterval(taxon.NCBI, 333)))
	ctx := context.Background()
	id := taxon.NewID(taxon.NCBI, "7460")

	start := time.Now()
	_, err := a.CommonNames(ctx, id)
	assert.Nil(err)
	_, err = a.CommonNames(ctx, id)
	assert.Nil(err)
	assert.GreaterOrEqual(time.Since(start), 330*time.Millisecond)
	assert.Equal(2, len(srv.Hits()))
}

func TestMinIntervalAPIKey(t *testing.T) {
	assert := assert.New(t)
	srv := newServer(t)
	a := ncbi.New(srv.Transport(taxon.NCBI,
		config.OptSourceMinInterval(taxon.NCBI, 333),
		config.OptSourceAPIKey(taxon.NCBI, "secret"),
	))
	ctx := context.Background()
	id := taxon.NewID(taxon.NCBI, "7460")

	start := time.Now()
	res, err := a.CommonNames(ctx, id)
	assert.Nil(err)
	assert.Equal(2, len(res))
	_, err = a.CommonNames(ctx, id)
	assert.Nil(err)
	assert.GreaterOrEqual(time.Since(start), 330*time.Millisecond)
}

func TestChildrenChunks(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ids := make([]string, 250)
	for i := range ids {
		ids[i] = fmt.Sprintf("<Id>%d</Id>", 50000+i)
	}
	search := "<eSearchResult><Count>250</Count><IdList>" +
		strings.Join(ids, "") + "</IdList></eSearchResult>"
	srv := iotesting.NewServer(t, map[string]iotesting.Route{
		"/esearch.fcgi?db=taxonomy&retmax=5000&term=Insecta%5BNext+Level%5D": iotesting.JSON(search),
		"/efetch.fcgi": iotesting.JSON(fetchChildren),
	})
	a := ncbi.New(srv.Transport(taxon.NCBI))

	id := taxon.NewID(taxon.NCBI, "50557")
	id.Name = "Insecta"
	res, err := a.Children(context.Background(), id)
	require.Nil(err)
	assert.Equal(4, len(res), "records of both chunks")

	var sizes []int
	for _, v := range srv.Hits() {
		if !strings.HasPrefix(v, "/efetch.fcgi?") {
			continue
		}
		q, err := url.ParseQuery(strings.TrimPrefix(v, "/efetch.fcgi?"))
		require.Nil(err)
		sizes = append(sizes, len(strings.Split(q.Get("id"), ",")))
	}
	assert.Equal([]int{200, 50}, sizes)
}

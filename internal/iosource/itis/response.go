package itis

import "github.com/gnames/gntaxa/pkg/taxon"

type searchResponse struct {
	ScientificNames []*scientificName `json:"scientificNames"`
}

type scientificName struct {
	TSN          string `json:"tsn"`
	CombinedName string `json:"combinedName"`
	Author       string `json:"author"`
	Kingdom      string `json:"kingdom"`
}

type commonNamesResponse struct {
	CommonNames []*commonName `json:"commonNames"`
}

type commonName struct {
	CommonName string `json:"commonName"`
	Language   string `json:"language"`
	TSN        string `json:"tsn"`
}

type hierarchyResponse struct {
	HierarchyList []*hierarchyRecord `json:"hierarchyList"`
}

type hierarchyRecord struct {
	TSN        string `json:"tsn"`
	TaxonName  string `json:"taxonName"`
	RankName   string `json:"rankName"`
	Author     string `json:"author"`
	ParentTSN  string `json:"parentTsn"`
	ParentName string `json:"parentName"`
}

func (h *hierarchyRecord) taxon() taxon.Taxon {
	return taxon.Taxon{
		ID:         h.TSN,
		Name:       h.TaxonName,
		Rank:       h.RankName,
		Authorship: h.Author,
		ParentID:   h.ParentTSN,
		ParentName: h.ParentName,
	}
}

package worms

import (
	"strconv"

	"github.com/gnames/gntaxa/pkg/taxon"
)

type aphiaRecord struct {
	AphiaID           int    `json:"AphiaID"`
	ScientificName    string `json:"scientificname"`
	Authority         string `json:"authority"`
	Status            string `json:"status"`
	Rank              string `json:"rank"`
	ValidAphiaID      int    `json:"valid_AphiaID"`
	ValidName         string `json:"valid_name"`
	ParentNameUsageID int    `json:"parentNameUsageID"`
}

func (r aphiaRecord) taxon() taxon.Taxon {
	res := taxon.Taxon{
		ID:         strconv.Itoa(r.AphiaID),
		Name:       r.ScientificName,
		Rank:       r.Rank,
		Authorship: r.Authority,
		Status:     r.Status,
	}
	if r.ParentNameUsageID > 0 {
		res.ParentID = strconv.Itoa(r.ParentNameUsageID)
	}
	return res
}

type vernacular struct {
	Vernacular   string `json:"vernacular"`
	LanguageCode string `json:"language_code"`
	Language     string `json:"language"`
}

type classification struct {
	AphiaID        int             `json:"AphiaID"`
	Rank           string          `json:"rank"`
	ScientificName string          `json:"scientificname"`
	Child          *classification `json:"child"`
}

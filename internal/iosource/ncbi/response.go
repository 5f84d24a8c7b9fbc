package ncbi

import "encoding/xml"

type searchResult struct {
	XMLName xml.Name `xml:"eSearchResult"`
	Count   int      `xml:"Count"`
	IDs     []string `xml:"IdList>Id"`
	Errors  []string `xml:"ErrorList>PhraseNotFound"`
}

type taxaSet struct {
	XMLName xml.Name    `xml:"TaxaSet"`
	Taxa    []taxonNode `xml:"Taxon"`
}

type taxonNode struct {
	TaxID          string      `xml:"TaxId"`
	ScientificName string      `xml:"ScientificName"`
	ParentTaxID    string      `xml:"ParentTaxId"`
	Rank           string      `xml:"Rank"`
	Division       string      `xml:"Division"`
	OtherNames     otherNames  `xml:"OtherNames"`
	Lineage        []lineageEx `xml:"LineageEx>Taxon"`
}

type otherNames struct {
	GenbankCommonName string   `xml:"GenbankCommonName"`
	CommonNames       []string `xml:"CommonName"`
	Authority         []string `xml:"Authority"`
}

type lineageEx struct {
	TaxID          string `xml:"TaxId"`
	ScientificName string `xml:"ScientificName"`
	Rank           string `xml:"Rank"`
}

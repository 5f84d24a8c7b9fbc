package eol

import "github.com/gnames/gntaxa/internal/iosource"

type searchResponse struct {
	TotalResults int         `json:"totalResults"`
	Results      []searchHit `json:"results"`
}

type searchHit struct {
	ID    iosource.FlexString `json:"id"`
	Title string              `json:"title"`
	Link  string              `json:"link"`
}

type pageResponse struct {
	TaxonConcept pageConcept `json:"taxonConcept"`
}

type pageConcept struct {
	Identifier      iosource.FlexString `json:"identifier"`
	ScientificName  string              `json:"scientificName"`
	VernacularNames []vernacularName    `json:"vernacularNames"`
}

type vernacularName struct {
	VernacularName string `json:"vernacularName"`
	Language       string `json:"language"`
	EOLPreferred   bool   `json:"eol_preferred"`
}

type dataObjectsResponse struct {
	TaxonConcept struct {
		Identifier     iosource.FlexString `json:"identifier"`
		ScientificName string              `json:"scientificName"`
		DataObjects    []dataObject        `json:"dataObjects"`
	} `json:"taxonConcept"`
}

type dataObject struct {
	Identifier          iosource.FlexString `json:"identifier"`
	DataObjectVersionID iosource.FlexString `json:"dataObjectVersionID"`
	DataType            string              `json:"dataType"`
	DataSubtype         string              `json:"dataSubtype"`
	VettedStatus        string              `json:"vettedStatus"`
	DataRating          iosource.FlexString `json:"dataRating"`
	Subject             string              `json:"subject"`
	MimeType            string              `json:"mimeType"`
	Title               string              `json:"title"`
	Language            string              `json:"language"`
	License             string              `json:"license"`
	Rights              string              `json:"rights"`
	RightsHolder        string              `json:"rightsHolder"`
	Source              string              `json:"source"`
	Description         string              `json:"description"`
}

package taxon

import "strings"

// Record is a normalized row extracted from a source response.
// Values must follow the order of the record's column set.
type Record interface {
	Values() []string
}

// CommonNameColumns is the column set of common name tables.
var CommonNameColumns = []string{"name", "language", "lang_code", "source"}

// CommonName is a vernacular name of a taxon.
type CommonName struct {
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
	LangCode string `json:"langCode,omitempty"`
	Source   string `json:"source,omitempty"`
}

// Values implements Record.
func (c CommonName) Values() []string {
	return []string{c.Name, c.Language, c.LangCode, c.Source}
}

// TaxonColumns is the column set of classification, children
// and downstream tables.
var TaxonColumns = []string{
	"id", "name", "rank", "authorship", "status", "parent_id", "parent_name",
}

// Taxon is a taxonomic concept returned by classification and
// child-listing queries.
type Taxon struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Rank       string `json:"rank,omitempty"`
	Authorship string `json:"authorship,omitempty"`
	Status     string `json:"status,omitempty"`
	ParentID   string `json:"parentId,omitempty"`
	ParentName string `json:"parentName,omitempty"`
}

// Values implements Record.
func (t Taxon) Values() []string {
	return []string{
		t.ID, t.Name, strings.ToLower(t.Rank), t.Authorship, t.Status,
		t.ParentID, t.ParentName,
	}
}

// BoldColumns is the column set of BOLD taxon search tables.
var BoldColumns = []string{
	"input", "taxid", "taxon", "tax_rank", "tax_division",
	"parentid", "parentname", "taxonrep",
}

// BoldTaxon is a record of BOLD taxon search.
type BoldTaxon struct {
	Input       string `json:"input"`
	TaxID       string `json:"taxid,omitempty"`
	Taxon       string `json:"taxon,omitempty"`
	TaxRank     string `json:"tax_rank,omitempty"`
	TaxDivision string `json:"tax_division,omitempty"`
	ParentID    string `json:"parentid,omitempty"`
	ParentName  string `json:"parentname,omitempty"`
	TaxonRep    string `json:"taxonrep,omitempty"`
}

// Values implements Record.
func (b BoldTaxon) Values() []string {
	return []string{
		b.Input, b.TaxID, b.Taxon, b.TaxRank, b.TaxDivision,
		b.ParentID, b.ParentName, b.TaxonRep,
	}
}

// DataObjectColumns is the column set of EOL data object tables.
var DataObjectColumns = []string{
	"page_id", "scientific_name", "object_id", "data_type", "data_subtype",
	"vetted_status", "data_rating", "subject", "mime_type", "title",
	"language", "license", "rights", "rights_holder", "source",
	"description",
}

// DataObject is metadata of an EOL data object (text, image, video...).
type DataObject struct {
	PageID         string `json:"pageId,omitempty"`
	ScientificName string `json:"scientificName,omitempty"`
	ObjectID       string `json:"objectId"`
	DataType       string `json:"dataType,omitempty"`
	DataSubtype    string `json:"dataSubtype,omitempty"`
	VettedStatus   string `json:"vettedStatus,omitempty"`
	DataRating     string `json:"dataRating,omitempty"`
	Subject        string `json:"subject,omitempty"`
	MimeType       string `json:"mimeType,omitempty"`
	Title          string `json:"title,omitempty"`
	Language       string `json:"language,omitempty"`
	License        string `json:"license,omitempty"`
	Rights         string `json:"rights,omitempty"`
	RightsHolder   string `json:"rightsHolder,omitempty"`
	Source         string `json:"source,omitempty"`
	Description    string `json:"description,omitempty"`
}

// Values implements Record.
func (d DataObject) Values() []string {
	return []string{
		d.PageID, d.ScientificName, d.ObjectID, d.DataType, d.DataSubtype,
		d.VettedStatus, d.DataRating, d.Subject, d.MimeType, d.Title,
		d.Language, d.License, d.Rights, d.RightsHolder, d.Source,
		d.Description,
	}
}

// IDColumns is the column set of identifier resolution tables.
var IDColumns = []string{"source", "id", "name", "rank", "status"}

// Values implements Record.
func (id ID) Values() []string {
	return []string{
		id.Source.String(), id.Value, id.Name, strings.ToLower(id.Rank),
		id.Status,
	}
}

package bold

import (
	"bytes"
	"encoding/json"

	"github.com/gnames/gntaxa/internal/iosource"
)

type searchResponse struct {
	TopMatchedNames   []matchedName `json:"top_matched_names"`
	TotalMatchedNames int           `json:"total_matched_names"`
}

// UnmarshalJSON accepts an empty array BOLD sends when nothing matched.
func (s *searchResponse) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		*s = searchResponse{}
		return nil
	}
	type alias searchResponse
	var res alias
	if err := json.Unmarshal(b, &res); err != nil {
		return err
	}
	*s = searchResponse(res)
	return nil
}

type matchedName struct {
	TaxID       iosource.FlexString `json:"taxid"`
	Taxon       string              `json:"taxon"`
	TaxRank     string              `json:"tax_rank"`
	TaxDivision string              `json:"tax_division"`
	ParentID    iosource.FlexString `json:"parentid"`
	ParentName  string              `json:"parentname"`
	TaxonRep    string              `json:"taxonrep"`
}

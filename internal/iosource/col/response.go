package col

import "github.com/gnames/gntaxa/pkg/taxon"

type searchResponse struct {
	Total  int           `json:"total"`
	Result []searchEntry `json:"result"`
}

type searchEntry struct {
	ID    string `json:"id"`
	Usage usage  `json:"usage"`
}

type usage struct {
	ID       string `json:"id"`
	Name     name   `json:"name"`
	Status   string `json:"status"`
	ParentID string `json:"parentId"`
}

type name struct {
	ScientificName string `json:"scientificName"`
	Authorship     string `json:"authorship"`
	Rank           string `json:"rank"`
}

func (u usage) taxon() taxon.Taxon {
	return taxon.Taxon{
		ID:         u.ID,
		Name:       u.Name.ScientificName,
		Rank:       u.Name.Rank,
		Authorship: u.Name.Authorship,
		Status:     u.Status,
		ParentID:   u.ParentID,
	}
}

type simpleName struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Authorship string `json:"authorship"`
	Rank       string `json:"rank"`
	Status     string `json:"status"`
	ParentID   string `json:"parentId"`
}

func (s simpleName) taxon() taxon.Taxon {
	return taxon.Taxon{
		ID:         s.ID,
		Name:       s.Name,
		Rank:       s.Rank,
		Authorship: s.Authorship,
		Status:     s.Status,
		ParentID:   s.ParentID,
	}
}

type childrenResponse struct {
	Result []simpleName `json:"result"`
	Last   bool         `json:"last"`
}

type vernacular struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}

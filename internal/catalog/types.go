package catalog

// SearchResponse is the payload returned by the catalog search endpoint.
type SearchResponse struct {
	Query      string       `json:"query"`
	Results    []IconRecord `json:"results"`
	Pagination Pagination   `json:"pagination"`
}

// Pagination describes the result window of a search response.
type Pagination struct {
	Total      int  `json:"total"`
	HasMore    bool `json:"hasMore"`
	Offset     int  `json:"offset"`
	NextOffset int  `json:"nextOffset"`
}

// IconRecord is the raw catalog representation of a single search hit.
type IconRecord struct {
	Hash            string `json:"hash"`
	Name            string `json:"name"`
	ImagePreviewURL string `json:"imagePreviewUrl"`
	IsFree          bool   `json:"isFree"`
	FamilySlug      string `json:"familySlug"`
	FamilyName      string `json:"familyName"`
	CategorySlug    string `json:"categorySlug"`
	CategoryName    string `json:"categoryName"`
	SubcategorySlug string `json:"subcategorySlug"`
	SubcategoryName string `json:"subcategoryName"`
}

// Icon is the immutable view of a search hit consumed by the UI and the
// one-shot commands. Icons are rebuilt wholesale on every search.
type Icon struct {
	Hash     string
	Name     string
	Family   string
	Category string
	SVGURL   string
	Tags     []string
}

// Icon converts a wire record into the UI representation. Tags are derived
// from the non-empty family/category/subcategory slugs, in that order.
func (r IconRecord) Icon() Icon {
	var tags []string
	for _, t := range []string{r.FamilySlug, r.CategorySlug, r.SubcategorySlug} {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return Icon{
		Hash:     r.Hash,
		Name:     r.Name,
		Family:   r.FamilyName,
		Category: r.CategoryName,
		SVGURL:   r.ImagePreviewURL,
		Tags:     tags,
	}
}

// Icons converts all records of a response.
func (sr *SearchResponse) Icons() []Icon {
	icons := make([]Icon, len(sr.Results))
	for i, r := range sr.Results {
		icons[i] = r.Icon()
	}
	return icons
}

package filters

type Filters struct {
	Page     int `schema:"page" validate:"gte=1"`
	PageSize int `schema:"page_size" validate:"gte=1,lte=100"`
}

func (f *Filters) Limit() int {
	return f.PageSize
}

func (f *Filters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// SetDefaults fills zero values left by query decoding.
func (f *Filters) SetDefaults() {
	if f.Page == 0 {
		f.Page = 1
	}
	if f.PageSize == 0 {
		f.PageSize = 20
	}
}

// TitleFilter narrows title listings. Category and genre match by slug
// substring, name by substring, year exactly. Zero values mean "any".
type TitleFilter struct {
	Category string `schema:"category"`
	Genre    string `schema:"genre"`
	Name     string `schema:"name"`
	Year     int32  `schema:"year"`
	Filters
}

type Metadata struct {
	CurrentPage  int `json:"current_page"`
	PageSize     int `json:"page_size"`
	LastPage     int `json:"last_page"`
	TotalRecords int `json:"total_records"`
}

func CalculateMetadata(totalRecords, page, pageSize int) Metadata {
	if totalRecords == 0 {
		return Metadata{}
	}
	return Metadata{
		CurrentPage:  page,
		PageSize:     pageSize,
		LastPage:     (totalRecords + pageSize - 1) / pageSize,
		TotalRecords: totalRecords,
	}
}

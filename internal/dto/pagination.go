package dto

// ListResponse is the pagination envelope shared by every list endpoint.
type ListResponse struct {
	Count       int64 `json:"count"`
	Current     int   `json:"current"`
	TotalPage   int   `json:"totalPage"`
	HasNextPage bool  `json:"hasNextPage"`
	Results     any   `json:"results"`
}

// NewListResponse computes the envelope for a page slice. length is the number
// of results on this page; totalPage = ceil(count/limit); hasNextPage is true
// when records remain past offset+length.
func NewListResponse(results any, length int, count int64, page, limit int) ListResponse {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	totalPage := int((count + int64(limit) - 1) / int64(limit))
	offset := (page - 1) * limit
	return ListResponse{
		Count:       count,
		Current:     page,
		TotalPage:   totalPage,
		HasNextPage: int64(offset+length) < count,
		Results:     results,
	}
}

package transport

type CreateGameRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Developer   string  `json:"developer"`
	Publisher   string  `json:"publisher"`
	ReleaseDate string  `json:"release_date"`
}

type UpdateGameRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Developer   string `json:"developer"`
	Publisher   string `json:"publisher"`
}

type UpdatePriceRequest struct {
	NewPrice float64 `json:"new_price"`
}

type ChangeCategoryRequest struct {
	Category string `json:"category"`
}

type UpdateRatingRequest struct {
	Rating float64 `json:"rating"`
}

type IncrementSalesRequest struct {
	Quantity int `json:"quantity"`
}

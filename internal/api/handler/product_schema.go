package handler

// Transport types are separate from the domain model so the JSON contract is
// not coupled to internal changes.

type createProductRequest struct {
	ID          int     `json:"id" validate:"required"`
	Description string  `json:"descricao"`
	Price       float64 `json:"valor"`
	Brand       string  `json:"marca"`
}

// updateProductRequest uses pointers: PUT replaces all three columns
// unconditionally and absent fields are written as NULL.
type updateProductRequest struct {
	Description *string  `json:"descricao"`
	Price       *float64 `json:"valor"`
	Brand       *string  `json:"marca"`
}

type productResponse struct {
	ID          int     `json:"id"`
	Description string  `json:"descricao"`
	Price       float64 `json:"valor"`
	Brand       string  `json:"marca"`
}

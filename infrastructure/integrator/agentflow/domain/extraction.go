package domain

// ExtractProductDataParams são os parâmetros da extração de dados de uma
// página de produto.
type ExtractProductDataParams struct {
	SellerID string `json:"seller_id"`
	PageURL  string `json:"url"`
}

// ExtractProductDataResponse é o payload devolvido pelo webhook de extração.
type ExtractProductDataResponse struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	PageURL     string  `json:"page_url"`
}
